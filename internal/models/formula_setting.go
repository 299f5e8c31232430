package models

import (
	"time"

	"aw-tracker-bot/internal/performance"
)

// FormulaSetting is the single row of tunable formula constants (ID 1).
type FormulaSetting struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	MinutesPerAW       float64   `gorm:"column:minutes_per_aw;not null;default:5" json:"minutes_per_aw"`
	ExcellentThreshold float64   `gorm:"not null;default:65" json:"excellent_threshold"`
	GoodThreshold      float64   `gorm:"not null;default:31" json:"good_threshold"`
	DefaultTargetHours float64   `gorm:"not null;default:180" json:"default_target_hours"`
	DefaultDailyHours  float64   `gorm:"not null;default:8.5" json:"default_daily_hours"`
	LunchBreakMinutes  float64   `gorm:"not null;default:30" json:"lunch_break_minutes"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const FormulaSettingID = 1

func (FormulaSetting) TableName() string {
	return "formula_settings"
}

func FormulaSettingFromEngine(f performance.FormulaSettings) *FormulaSetting {
	return &FormulaSetting{
		ID:                 FormulaSettingID,
		MinutesPerAW:       f.MinutesPerAW,
		ExcellentThreshold: f.ExcellentThreshold,
		GoodThreshold:      f.GoodThreshold,
		DefaultTargetHours: f.DefaultTargetHours,
		DefaultDailyHours:  f.DefaultDailyHours,
		LunchBreakMinutes:  f.LunchBreakMinutes,
	}
}

func (f *FormulaSetting) ToEngine() performance.FormulaSettings {
	return performance.FormulaSettings{
		MinutesPerAW:       f.MinutesPerAW,
		ExcellentThreshold: f.ExcellentThreshold,
		GoodThreshold:      f.GoodThreshold,
		DefaultTargetHours: f.DefaultTargetHours,
		DefaultDailyHours:  f.DefaultDailyHours,
		LunchBreakMinutes:  f.LunchBreakMinutes,
	}
}

func (f *FormulaSetting) IsValid() bool {
	return f.ToEngine().Validate() == nil
}
