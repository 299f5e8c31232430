package models

import (
	"math"
	"time"

	"aw-tracker-bot/internal/performance"
)

// MonthlyTarget overrides the default target for one YYYY-MM month.
type MonthlyTarget struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Month       string    `gorm:"type:varchar(7);not null;uniqueIndex" json:"month"`
	TargetHours float64   `gorm:"not null" json:"target_hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MonthlyTarget) TableName() string {
	return "monthly_targets"
}

func (t *MonthlyTarget) IsValid() bool {
	if _, err := performance.ParseMonth(t.Month); err != nil {
		return false
	}
	return !math.IsNaN(t.TargetHours) && !math.IsInf(t.TargetHours, 0) && t.TargetHours >= 0
}
