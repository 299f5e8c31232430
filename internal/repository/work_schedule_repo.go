package repository

import (
	"errors"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WorkScheduleRepository stores the single schedule row.
type WorkScheduleRepository interface {
	// Get returns nil when no schedule has been saved yet.
	Get() (*models.WorkSchedule, error)
	Save(schedule *models.WorkSchedule) error
	Reset() error
}

type GormWorkScheduleRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWorkScheduleRepository(db *gorm.DB, logger *logrus.Logger) (*GormWorkScheduleRepository, error) {
	logger = newRepoLogger(logger)

	if err := db.AutoMigrate(&models.WorkSchedule{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_schedules table")
		return nil, err
	}

	logger.Debug("Work schedule repository initialized")
	return &GormWorkScheduleRepository{db: db, logger: logger}, nil
}

func (r *GormWorkScheduleRepository) Get() (*models.WorkSchedule, error) {
	return loadWorkSchedule(r.db)
}

func loadWorkSchedule(db *gorm.DB) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := db.First(&schedule, models.WorkScheduleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormWorkScheduleRepository) Save(schedule *models.WorkSchedule) error {
	if !schedule.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"weekdays": schedule.WorkingWeekdays,
			"policy":   schedule.SaturdayPolicy,
		}).Warn("Invalid work schedule data")
		return errors.New("invalid work schedule")
	}

	schedule.ID = models.WorkScheduleID
	if err := r.db.Save(schedule).Error; err != nil {
		r.logger.WithError(err).Error("Failed to save work schedule")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"daily_hours": schedule.DailyWorkingHours,
		"weekdays":    schedule.WorkingWeekdays,
		"policy":      schedule.SaturdayPolicy,
	}).Info("Work schedule saved")
	return nil
}

func (r *GormWorkScheduleRepository) Reset() error {
	if err := r.db.Delete(&models.WorkSchedule{}, models.WorkScheduleID).Error; err != nil {
		r.logger.WithError(err).Error("Failed to reset work schedule")
		return err
	}
	r.logger.Info("Work schedule reset to defaults")
	return nil
}
