package models

import (
	"strings"
	"time"

	"aw-tracker-bot/internal/performance"

	"gorm.io/gorm"
)

type Job struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WIPNumber  string    `gorm:"column:wip_number;type:varchar(32);not null;index" json:"wip_number"`
	VehicleReg string    `gorm:"column:vehicle_reg;type:varchar(16);not null" json:"vehicle_reg"`
	AW         float64   `gorm:"column:aw;not null;default:0" json:"aw"`
	VHCStatus  string    `gorm:"column:vhc_status;type:varchar(8);not null;default:'NONE'" json:"vhc_status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate stores CreatedAt in UTC with second precision so that range
// queries compare consistently.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.CreatedAt = j.CreatedAt.UTC().Truncate(time.Second)
	return nil
}

func (j *Job) IsValid() bool {
	if strings.TrimSpace(j.WIPNumber) == "" || strings.TrimSpace(j.VehicleReg) == "" {
		return false
	}
	if _, err := performance.ParseVHC(j.VHCStatus); err != nil {
		return false
	}
	return j.ToEngine(time.UTC).Validate() == nil
}

// ToEngine converts the row, reading CreatedAt in loc so jobs land on the
// technician's local calendar day.
func (j *Job) ToEngine(loc *time.Location) performance.Job {
	vhc, err := performance.ParseVHC(j.VHCStatus)
	if err != nil {
		vhc = performance.VHCNone
	}
	return performance.Job{
		ID:         j.ID,
		WIPNumber:  j.WIPNumber,
		VehicleReg: j.VehicleReg,
		AW:         j.AW,
		Notes:      j.Notes,
		VHC:        vhc,
		CreatedAt:  j.CreatedAt.In(loc),
	}
}

func JobsToEngine(jobs []Job, loc *time.Location) []performance.Job {
	out := make([]performance.Job, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobs[i].ToEngine(loc))
	}
	return out
}
