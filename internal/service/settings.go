package service

import (
	"errors"
	"fmt"
	"strings"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// Setting keys accepted by SettingsService.Set.
const (
	SettingMinutesPerAW = "minutes_per_aw"
	SettingExcellent    = "excellent"
	SettingGood         = "good"
	SettingTarget       = "target"
	SettingDailyHours   = "daily_hours"
	SettingLunchBreak   = "lunch_break"
)

var SettingKeys = []string{
	SettingMinutesPerAW, SettingExcellent, SettingGood, SettingTarget, SettingDailyHours, SettingLunchBreak,
}

type SettingsService struct {
	repo     repository.FormulaSettingRepository
	targets  repository.MonthlyTargetRepository
	defaults performance.FormulaSettings
	logger   *logrus.Logger
}

func NewSettingsService(
	repo repository.FormulaSettingRepository,
	targets repository.MonthlyTargetRepository,
	defaults performance.FormulaSettings,
	logger *logrus.Logger,
) *SettingsService {
	return &SettingsService{
		repo:     repo,
		targets:  targets,
		defaults: defaults,
		logger:   newServiceLogger(logger),
	}
}

func (s *SettingsService) Defaults() performance.FormulaSettings {
	return s.defaults
}

// Get returns the stored settings, or the configured defaults when none were saved.
func (s *SettingsService) Get() (performance.FormulaSettings, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return performance.FormulaSettings{}, err
	}
	return s.Resolve(stored), nil
}

func (s *SettingsService) Resolve(stored *models.FormulaSetting) performance.FormulaSettings {
	if stored == nil {
		return s.defaults
	}
	return stored.ToEngine()
}

func (s *SettingsService) Set(key string, value float64) (performance.FormulaSettings, error) {
	current, err := s.Get()
	if err != nil {
		return performance.FormulaSettings{}, err
	}

	switch strings.ToLower(key) {
	case SettingMinutesPerAW:
		current.MinutesPerAW = value
	case SettingExcellent:
		current.ExcellentThreshold = value
	case SettingGood:
		current.GoodThreshold = value
	case SettingTarget:
		current.DefaultTargetHours = value
	case SettingDailyHours:
		current.DefaultDailyHours = value
	case SettingLunchBreak:
		current.LunchBreakMinutes = value
	default:
		return performance.FormulaSettings{}, fmt.Errorf("unknown setting %q, use one of: %s", key, strings.Join(SettingKeys, ", "))
	}

	if err := current.Validate(); err != nil {
		return performance.FormulaSettings{}, err
	}
	if err := s.repo.Save(models.FormulaSettingFromEngine(current)); err != nil {
		return performance.FormulaSettings{}, err
	}

	s.logger.WithFields(logrus.Fields{"key": key, "value": value}).Info("Formula setting updated")
	return current, nil
}

func (s *SettingsService) Reset() error {
	return s.repo.Save(models.FormulaSettingFromEngine(s.defaults))
}

func (s *SettingsService) SetTarget(month performance.Month, hours float64) error {
	return s.targets.Upsert(&models.MonthlyTarget{Month: month.String(), TargetHours: hours})
}

func (s *SettingsService) ClearTarget(month performance.Month) error {
	err := s.targets.Delete(month.String())
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// TargetFor returns the month's target and whether it is an explicit override.
func (s *SettingsService) TargetFor(month performance.Month) (float64, bool, error) {
	settings, err := s.Get()
	if err != nil {
		return 0, false, err
	}
	target, err := s.targets.GetByMonth(month.String())
	if err != nil {
		return 0, false, err
	}
	return ResolveTarget(settings, target), target != nil, nil
}

func (s *SettingsService) ListTargets() ([]models.MonthlyTarget, error) {
	return s.targets.GetAll()
}

// ResolveTarget falls back to the default target when the month has no override.
func ResolveTarget(settings performance.FormulaSettings, target *models.MonthlyTarget) float64 {
	if target == nil {
		return settings.DefaultTargetHours
	}
	return target.TargetHours
}

func FormatSettings(f performance.FormulaSettings) string {
	return fmt.Sprintf(
		`⚙️ Formula settings

⏱ Minutes per AW: %g
🟢 Excellent from: %g%%
🟠 Good from: %g%%
🎯 Default target: %gh
📅 Default daily hours: %gh
🥪 Lunch break: %g min

Change with /settings <key> <value>
Keys: %s`,
		f.MinutesPerAW,
		f.ExcellentThreshold,
		f.GoodThreshold,
		f.DefaultTargetHours,
		f.DefaultDailyHours,
		f.LunchBreakMinutes,
		strings.Join(SettingKeys, ", "),
	)
}
