package models

import (
	"time"

	"aw-tracker-bot/internal/performance"

	"gorm.io/gorm"
)

// Absence is one absence record. Date is a local calendar date in YYYY-MM-DD form
// and is unique: the bot keeps at most one record per date.
type Absence struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"`
	Month         string    `gorm:"type:varchar(7);not null;default:'';index" json:"month"`
	Type          string    `gorm:"type:varchar(20);not null" json:"type"`
	DaysCount     *float64  `json:"days_count"`
	IsHalfDay     bool      `gorm:"not null;default:false" json:"is_half_day"`
	CustomHours   *float64  `json:"custom_hours"`
	DeductionType string    `gorm:"type:varchar(20);not null;default:'AVAILABLE_HOURS'" json:"deduction_type"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Absence) TableName() string {
	return "absences"
}

// BeforeCreate fills Month from Date.
func (a *Absence) BeforeCreate(tx *gorm.DB) error {
	a.Month = MonthOf(a.Date)
	return nil
}

// MonthOf returns the YYYY-MM prefix of a YYYY-MM-DD date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

func (a *Absence) ToEngine() performance.Absence {
	return performance.Absence{
		Date:        a.Date,
		Type:        performance.AbsenceType(a.Type),
		DaysCount:   a.DaysCount,
		IsHalfDay:   a.IsHalfDay,
		CustomHours: a.CustomHours,
		Deduction:   performance.DeductionType(a.DeductionType),
		Note:        a.Note,
	}
}

func (a *Absence) IsValid() bool {
	return a.ToEngine().Validate() == nil
}

func AbsencesToEngine(absences []Absence) []performance.Absence {
	out := make([]performance.Absence, 0, len(absences))
	for i := range absences {
		out = append(out, absences[i].ToEngine())
	}
	return out
}
