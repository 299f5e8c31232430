package performance

import (
	"fmt"
	"math"
	"time"
)

// The assemblers below only reshape a PerformanceReport and aggregator output
// for a particular screen. Any number the calculator already produced is copied.

func FormatEfficiency(efficiency *int) string {
	if efficiency == nil {
		return string(LabelNA)
	}
	return fmt.Sprintf("%d%%", *efficiency)
}

// PercentComplete is sold / adjusted target × 100, unclamped. It is nil when
// the adjusted target is zero.
func PercentComplete(r PerformanceReport) *float64 {
	if r.AdjustedTargetHours <= 0 {
		return nil
	}
	v := Round2(r.SoldHours / r.AdjustedTargetHours * 100)
	return &v
}

// ProgressPercent clamps PercentComplete to [0, 100] for progress bars. A zero
// adjusted target counts as met.
func ProgressPercent(r PerformanceReport) float64 {
	p := PercentComplete(r)
	if p == nil {
		return 100
	}
	return math.Min(math.Max(*p, 0), 100)
}

type DayRow struct {
	Date   string
	Totals Totals
}

type WeekRow struct {
	Week   int
	Totals Totals
}

func DayRows(byDay map[string]Totals) []DayRow {
	rows := make([]DayRow, 0, len(byDay))
	for _, d := range SortedDays(byDay) {
		rows = append(rows, DayRow{Date: d, Totals: byDay[d].Rounded()})
	}
	return rows
}

func WeekRows(byWeek map[int]Totals) []WeekRow {
	rows := make([]WeekRow, 0, len(byWeek))
	for _, w := range SortedWeeks(byWeek) {
		rows = append(rows, WeekRow{Week: w, Totals: byWeek[w].Rounded()})
	}
	return rows
}

type DashboardSummary struct {
	Period                  string
	SoldHours               float64
	EffectiveAvailableHours float64
	AdjustedTargetHours     float64
	RemainingHours          float64
	// RemainingDisplay never goes below zero; ExceededBy holds the overshoot.
	RemainingDisplay float64
	ExceededBy       float64
	EfficiencyText   string
	EfficiencyLabel  EfficiencyLabel
	EfficiencyColor  Color
	JobCount         int
	TotalAW          float64
	ProgressPercent  float64
}

func AssembleDashboard(r PerformanceReport) DashboardSummary {
	remaining, exceeded := splitRemaining(r.RemainingHours)
	return DashboardSummary{
		Period:                  r.Period,
		SoldHours:               r.SoldHours,
		EffectiveAvailableHours: r.EffectiveAvailableHours,
		AdjustedTargetHours:     r.AdjustedTargetHours,
		RemainingHours:          r.RemainingHours,
		RemainingDisplay:        remaining,
		ExceededBy:              exceeded,
		EfficiencyText:          FormatEfficiency(r.EfficiencyPercent),
		EfficiencyLabel:         r.EfficiencyLabel,
		EfficiencyColor:         r.EfficiencyColor,
		JobCount:                r.Jobs.Count,
		TotalAW:                 r.Jobs.TotalAW,
		ProgressPercent:         ProgressPercent(r),
	}
}

type TargetDetails struct {
	Period                 string
	TargetHours            float64
	AbsenceHoursFromTarget float64
	AdjustedTargetHours    float64
	SoldHours              float64
	RemainingHours         float64
	RemainingDisplay       float64
	ExceededBy             float64
	PercentComplete        *float64
	ProgressPercent        float64
	RemainingWorkingDays   int
	RequiredHoursPerDay    *float64
	RequiredAWPerDay       *float64
}

func AssembleTargetDetails(r PerformanceReport) TargetDetails {
	remaining, exceeded := splitRemaining(r.RemainingHours)
	return TargetDetails{
		Period:                 r.Period,
		TargetHours:            r.TargetHours,
		AbsenceHoursFromTarget: r.AbsenceHoursFromTarget,
		AdjustedTargetHours:    r.AdjustedTargetHours,
		SoldHours:              r.SoldHours,
		RemainingHours:         r.RemainingHours,
		RemainingDisplay:       remaining,
		ExceededBy:             exceeded,
		PercentComplete:        PercentComplete(r),
		ProgressPercent:        ProgressPercent(r),
		RemainingWorkingDays:   r.RemainingWorkingDays,
		RequiredHoursPerDay:    r.RequiredHoursPerDay,
		RequiredAWPerDay:       r.RequiredAWPerDay,
	}
}

type EfficiencyDetails struct {
	Period                    string
	EfficiencyPercent         *int
	EfficiencyText            string
	EfficiencyLabel           EfficiencyLabel
	EfficiencyColor           Color
	SoldHours                 float64
	AvailableHours            float64
	AbsenceHoursFromAvailable float64
	EffectiveAvailableHours   float64
	WorkingDays               int
	Weeks                     []WeekRow
}

func AssembleEfficiencyDetails(r PerformanceReport, byWeek map[int]Totals) EfficiencyDetails {
	return EfficiencyDetails{
		Period:                    r.Period,
		EfficiencyPercent:         r.EfficiencyPercent,
		EfficiencyText:            FormatEfficiency(r.EfficiencyPercent),
		EfficiencyLabel:           r.EfficiencyLabel,
		EfficiencyColor:           r.EfficiencyColor,
		SoldHours:                 r.SoldHours,
		AvailableHours:            r.AvailableHours,
		AbsenceHoursFromAvailable: r.AbsenceHoursFromAvailable,
		EffectiveAvailableHours:   r.EffectiveAvailableHours,
		WorkingDays:               r.WorkingDays,
		Weeks:                     WeekRows(byWeek),
	}
}

type TimeLoggedDetails struct {
	Period       string
	TotalAW      float64
	TotalMinutes float64
	TotalHours   float64
	Days         []DayRow
}

func AssembleTimeLogged(r PerformanceReport, byDay map[string]Totals) TimeLoggedDetails {
	return TimeLoggedDetails{
		Period:       r.Period,
		TotalAW:      r.Jobs.TotalAW,
		TotalMinutes: r.Jobs.TotalMinutes,
		TotalHours:   r.SoldHours,
		Days:         DayRows(byDay),
	}
}

type JobsDoneDetails struct {
	Period     string
	Count      int
	TotalAW    float64
	TotalHours float64
	VHC        map[VHCStatus]int
	Days       []DayRow
}

func AssembleJobsDone(r PerformanceReport, byDay map[string]Totals, vhc map[VHCStatus]int) JobsDoneDetails {
	return JobsDoneDetails{
		Period:     r.Period,
		Count:      r.Jobs.Count,
		TotalAW:    r.Jobs.TotalAW,
		TotalHours: r.SoldHours,
		VHC:        vhc,
		Days:       DayRows(byDay),
	}
}

// PeriodDetails backs the week and today screens.
type PeriodDetails struct {
	Period                  string
	From                    time.Time
	To                      time.Time
	WorkingDays             int
	SoldHours               float64
	EffectiveAvailableHours float64
	AbsenceHours            float64
	EfficiencyText          string
	EfficiencyLabel         EfficiencyLabel
	EfficiencyColor         Color
	JobCount                int
	TotalAW                 float64
	Days                    []DayRow
}

func AssemblePeriodDetails(r PerformanceReport, byDay map[string]Totals) PeriodDetails {
	return PeriodDetails{
		Period:                  r.Period,
		From:                    r.From,
		To:                      r.To,
		WorkingDays:             r.WorkingDays,
		SoldHours:               r.SoldHours,
		EffectiveAvailableHours: r.EffectiveAvailableHours,
		AbsenceHours:            r.AbsenceHoursFromAvailable,
		EfficiencyText:          FormatEfficiency(r.EfficiencyPercent),
		EfficiencyLabel:         r.EfficiencyLabel,
		EfficiencyColor:         r.EfficiencyColor,
		JobCount:                r.Jobs.Count,
		TotalAW:                 r.Jobs.TotalAW,
		Days:                    DayRows(byDay),
	}
}

func splitRemaining(remaining float64) (display, exceeded float64) {
	if remaining < 0 {
		return 0, -remaining
	}
	return remaining, 0
}
