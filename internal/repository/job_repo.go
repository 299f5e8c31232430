package repository

import (
	"errors"
	"time"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(id uint) error
	GetByID(id uint) (*models.Job, error)
	// GetBetween returns jobs with from <= created_at < to, oldest first.
	GetBetween(from, to time.Time) ([]models.Job, error)
	GetRecent(limit int) ([]models.Job, error)
}

type GormJobRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormJobRepository(db *gorm.DB, logger *logrus.Logger) (*GormJobRepository, error) {
	logger = newRepoLogger(logger)

	if err := db.AutoMigrate(&models.Job{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate jobs table")
		return nil, err
	}

	logger.Debug("Job repository initialized")
	return &GormJobRepository{db: db, logger: logger}, nil
}

func (r *GormJobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create job")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":  job.ID,
		"wip": job.WIPNumber,
		"aw":  job.AW,
	}).Info("Job created")
	return nil
}

func (r *GormJobRepository) Update(job *models.Job) error {
	job.CreatedAt = job.CreatedAt.UTC().Truncate(time.Second)
	result := r.db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]any{
		"wip_number":  job.WIPNumber,
		"vehicle_reg": job.VehicleReg,
		"aw":          job.AW,
		"vhc_status":  job.VHCStatus,
		"notes":       job.Notes,
		"created_at":  job.CreatedAt,
	})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update job")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithField("id", job.ID).Info("Job updated")
	return nil
}

func (r *GormJobRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Job{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete job")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Job not found for deletion")
		return ErrNotFound
	}

	r.logger.WithField("id", id).Info("Job deleted")
	return nil
}

func (r *GormJobRepository) GetByID(id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to get job by ID")
		return nil, err
	}
	return &job, nil
}

func (r *GormJobRepository) GetBetween(from, to time.Time) ([]models.Job, error) {
	return jobsBetween(r.db, from, to)
}

func jobsBetween(db *gorm.DB, from, to time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at ASC, id ASC").
		Find(&jobs).Error
	return jobs, err
}

func (r *GormJobRepository) GetRecent(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&jobs).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get recent jobs")
	}
	return jobs, err
}
