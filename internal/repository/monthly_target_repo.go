package repository

import (
	"errors"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonthlyTargetRepository interface {
	// GetByMonth returns nil when the month has no override.
	GetByMonth(month string) (*models.MonthlyTarget, error)
	Upsert(target *models.MonthlyTarget) error
	Delete(month string) error
	GetAll() ([]models.MonthlyTarget, error)
}

type GormMonthlyTargetRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormMonthlyTargetRepository(db *gorm.DB, logger *logrus.Logger) (*GormMonthlyTargetRepository, error) {
	logger = newRepoLogger(logger)

	if err := db.AutoMigrate(&models.MonthlyTarget{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate monthly_targets table")
		return nil, err
	}
	return &GormMonthlyTargetRepository{db: db, logger: logger}, nil
}

func (r *GormMonthlyTargetRepository) GetByMonth(month string) (*models.MonthlyTarget, error) {
	return loadMonthlyTarget(r.db, month)
}

func loadMonthlyTarget(db *gorm.DB, month string) (*models.MonthlyTarget, error) {
	var target models.MonthlyTarget
	err := db.Where("month = ?", month).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *GormMonthlyTargetRepository) Upsert(target *models.MonthlyTarget) error {
	if !target.IsValid() {
		return errors.New("invalid monthly target")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_hours", "updated_at"}),
	}).Create(target).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to save monthly target")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"month": target.Month,
		"hours": target.TargetHours,
	}).Info("Monthly target saved")
	return nil
}

func (r *GormMonthlyTargetRepository) Delete(month string) error {
	result := r.db.Where("month = ?", month).Delete(&models.MonthlyTarget{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormMonthlyTargetRepository) GetAll() ([]models.MonthlyTarget, error) {
	var targets []models.MonthlyTarget
	err := r.db.Order("month ASC").Find(&targets).Error
	return targets, err
}
