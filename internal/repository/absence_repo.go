package repository

import (
	"errors"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AbsenceRepository interface {
	Create(absence *models.Absence) error
	DeleteByDate(date string) error
	GetByDate(date string) (*models.Absence, error)
	// Replace deletes the record on date and creates absence in one transaction.
	Replace(date string, absence *models.Absence) error
	// GetByMonth returns the absences of a YYYY-MM month ordered by date.
	GetByMonth(month string) ([]models.Absence, error)
}

type GormAbsenceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAbsenceRepository(db *gorm.DB, logger *logrus.Logger) (*GormAbsenceRepository, error) {
	logger = newRepoLogger(logger)

	if err := db.AutoMigrate(&models.Absence{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate absences table")
		return nil, err
	}
	// Rows written before the month column existed.
	if err := db.Model(&models.Absence{}).Where("month = ?", "").
		Update("month", gorm.Expr("substr(date, 1, 7)")).Error; err != nil {
		logger.WithError(err).Error("Failed to backfill absence months")
		return nil, err
	}
	return &GormAbsenceRepository{db: db, logger: logger}, nil
}

func (r *GormAbsenceRepository) Create(absence *models.Absence) error {
	if err := r.db.Create(absence).Error; err != nil {
		r.logger.WithError(err).WithField("date", absence.Date).Error("Failed to create absence")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"date":      absence.Date,
		"type":      absence.Type,
		"deduction": absence.DeductionType,
	}).Info("Absence created")
	return nil
}

func (r *GormAbsenceRepository) DeleteByDate(date string) error {
	result := r.db.Where("date = ?", date).Delete(&models.Absence{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete absence")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithField("date", date).Info("Absence deleted")
	return nil
}

func (r *GormAbsenceRepository) Replace(date string, absence *models.Absence) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("date = ?", date).Delete(&models.Absence{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(absence).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("date", date).Error("Failed to replace absence")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"from": date,
		"to":   absence.Date,
		"type": absence.Type,
	}).Info("Absence replaced")
	return nil
}

func (r *GormAbsenceRepository) GetByMonth(month string) ([]models.Absence, error) {
	var absences []models.Absence
	err := r.db.Where("month = ?", month).Order("date ASC").Find(&absences).Error
	return absences, err
}

func (r *GormAbsenceRepository) GetByDate(date string) (*models.Absence, error) {
	var absence models.Absence
	err := r.db.Where("date = ?", date).First(&absence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

// absencesBetween returns absences with from <= date <= to, both YYYY-MM-DD.
func absencesBetween(db *gorm.DB, from, to string) ([]models.Absence, error) {
	var absences []models.Absence
	err := db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, id ASC").
		Find(&absences).Error
	return absences, err
}
