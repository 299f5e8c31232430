package repository

import (
	"errors"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FormulaSettingRepository interface {
	// Get returns nil when the settings were never saved.
	Get() (*models.FormulaSetting, error)
	Save(setting *models.FormulaSetting) error
}

type GormFormulaSettingRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormFormulaSettingRepository(db *gorm.DB, logger *logrus.Logger) (*GormFormulaSettingRepository, error) {
	logger = newRepoLogger(logger)

	if err := db.AutoMigrate(&models.FormulaSetting{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate formula_settings table")
		return nil, err
	}
	return &GormFormulaSettingRepository{db: db, logger: logger}, nil
}

func (r *GormFormulaSettingRepository) Get() (*models.FormulaSetting, error) {
	return loadFormulaSetting(r.db)
}

func loadFormulaSetting(db *gorm.DB) (*models.FormulaSetting, error) {
	var setting models.FormulaSetting
	err := db.First(&setting, models.FormulaSettingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *GormFormulaSettingRepository) Save(setting *models.FormulaSetting) error {
	if err := setting.ToEngine().Validate(); err != nil {
		r.logger.WithError(err).Warn("Invalid formula settings")
		return err
	}

	setting.ID = models.FormulaSettingID
	if err := r.db.Save(setting).Error; err != nil {
		r.logger.WithError(err).Error("Failed to save formula settings")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"minutes_per_aw": setting.MinutesPerAW,
		"excellent":      setting.ExcellentThreshold,
		"good":           setting.GoodThreshold,
	}).Info("Formula settings saved")
	return nil
}
