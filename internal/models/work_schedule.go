package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"aw-tracker-bot/internal/performance"
)

// WorkSchedule is the single schedule row (ID 1). Weekdays and custom
// Saturdays are stored as comma-separated lists.
type WorkSchedule struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	DailyWorkingHours   float64   `gorm:"not null;default:8.5" json:"daily_working_hours"`
	WorkingWeekdays     string    `gorm:"type:varchar(20);not null;default:'1,2,3,4,5'" json:"working_weekdays"`
	SaturdayPolicy      string    `gorm:"type:varchar(16);not null;default:''" json:"saturday_policy"`
	NextWorkingSaturday string    `gorm:"type:varchar(10)" json:"next_working_saturday"`
	CustomSaturdays     string    `json:"custom_saturdays"`
	SaturdayHours       *float64  `json:"saturday_hours"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const WorkScheduleID = 1

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// DefaultWorkSchedule is used until the technician saves a schedule.
func DefaultWorkSchedule(dailyHours float64) *WorkSchedule {
	s := performance.DefaultSchedule()
	if dailyHours > 0 {
		s.DailyWorkingHours = dailyHours
	}
	return WorkScheduleFromEngine(s)
}

func WorkScheduleFromEngine(s performance.Schedule) *WorkSchedule {
	days := make([]string, 0, len(s.WorkingWeekdays))
	for _, wd := range s.WorkingWeekdays {
		days = append(days, strconv.Itoa(int(wd)))
	}
	return &WorkSchedule{
		ID:                  WorkScheduleID,
		DailyWorkingHours:   s.DailyWorkingHours,
		WorkingWeekdays:     strings.Join(days, ","),
		SaturdayPolicy:      string(s.SaturdayPolicy),
		NextWorkingSaturday: s.NextWorkingSaturday,
		CustomSaturdays:     strings.Join(s.CustomSaturdays, ","),
		SaturdayHours:       s.SaturdayHours,
	}
}

func (ws *WorkSchedule) ToEngine() (performance.Schedule, error) {
	weekdays, err := parseWeekdays(ws.WorkingWeekdays)
	if err != nil {
		return performance.Schedule{}, err
	}
	s := performance.Schedule{
		DailyWorkingHours:   ws.DailyWorkingHours,
		WorkingWeekdays:     weekdays,
		SaturdayPolicy:      performance.SaturdayPolicy(ws.SaturdayPolicy),
		NextWorkingSaturday: ws.NextWorkingSaturday,
		CustomSaturdays:     splitList(ws.CustomSaturdays),
		SaturdayHours:       ws.SaturdayHours,
	}
	return s, s.Validate()
}

func (ws *WorkSchedule) IsValid() bool {
	_, err := ws.ToEngine()
	return err == nil
}

func parseWeekdays(csv string) ([]time.Weekday, error) {
	parts := splitList(csv)
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("weekday %q: %w", p, err)
		}
		out = append(out, time.Weekday(n))
	}
	return out, nil
}

func splitList(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
