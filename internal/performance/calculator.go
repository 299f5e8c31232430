package performance

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// FormulaSettings are the user-tunable constants of the performance formulas.
type FormulaSettings struct {
	MinutesPerAW       float64
	ExcellentThreshold float64
	GoodThreshold      float64
	DefaultTargetHours float64
	DefaultDailyHours  float64
	LunchBreakMinutes  float64
}

func DefaultFormulaSettings() FormulaSettings {
	return FormulaSettings{
		MinutesPerAW:       DefaultMinutesPerAW,
		ExcellentThreshold: 65,
		GoodThreshold:      31,
		DefaultTargetHours: 180,
		DefaultDailyHours:  DefaultDailyWorkingHours,
		LunchBreakMinutes:  30,
	}
}

func (f FormulaSettings) Validate() error {
	if !positive(f.MinutesPerAW) {
		return invalid("minutesPerAW", "must be positive, got %v", f.MinutesPerAW)
	}
	if !finite(f.GoodThreshold) || !finite(f.ExcellentThreshold) || f.GoodThreshold < 0 || f.ExcellentThreshold < f.GoodThreshold {
		return invalid("efficiencyThresholds", "need 0 <= good (%v) <= excellent (%v)", f.GoodThreshold, f.ExcellentThreshold)
	}
	if !positive(f.DefaultTargetHours) {
		return invalid("defaultTargetHours", "must be positive, got %v", f.DefaultTargetHours)
	}
	if !positive(f.DefaultDailyHours) {
		return invalid("defaultDailyHours", "must be positive, got %v", f.DefaultDailyHours)
	}
	if !finite(f.LunchBreakMinutes) || f.LunchBreakMinutes < 0 {
		return invalid("lunchBreakMinutes", "must not be negative, got %v", f.LunchBreakMinutes)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

type EfficiencyLabel string

const (
	LabelExcellent EfficiencyLabel = "Excellent"
	LabelGood      EfficiencyLabel = "Good"
	LabelPoor      EfficiencyLabel = "Poor"
	LabelNA        EfficiencyLabel = "N/A"
)

type Color string

const (
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
	ColorGrey  Color = "grey"
)

// PerformanceReport is the engine output. Every float is rounded to two
// decimals when the report is built and at no earlier step.
type PerformanceReport struct {
	Period      string
	From        time.Time
	To          time.Time
	WorkingDays int
	Jobs        Totals

	SoldHours                 float64
	AvailableHours            float64
	EffectiveAvailableHours   float64
	AbsenceHoursFromAvailable float64
	AbsenceHoursFromTarget    float64
	AbsenceDays               float64

	// EfficiencyPercent is nil when there are no effective available hours.
	EfficiencyPercent *int
	EfficiencyLabel   EfficiencyLabel
	EfficiencyColor   Color

	// Target fields are only filled for month reports.
	HasTarget           bool
	TargetHours         float64
	AdjustedTargetHours float64
	// RemainingHours is signed: negative means the target was exceeded.
	RemainingHours       float64
	RemainingWorkingDays int
	RequiredHoursPerDay  *float64
	RequiredAWPerDay     *float64
}

// Calculator turns a snapshot of jobs, absences, schedule and target into a PerformanceReport.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	settings FormulaSettings
	conv     Converter
	ledger   *Ledger
}

func NewCalculator(settings FormulaSettings, logger logrus.FieldLogger) (*Calculator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		settings: settings,
		conv:     NewConverter(settings.MinutesPerAW),
		ledger:   NewLedger(logger),
	}, nil
}

func (c *Calculator) Settings() FormulaSettings { return c.settings }

func (c *Calculator) Converter() Converter { return c.conv }

// MonthInput is one consistent snapshot for a calendar month.
type MonthInput struct {
	Month       Month
	Jobs        []Job
	Absences    []Absence
	Schedule    Schedule
	TargetHours float64
	// AsOf enables the pace fields; zero leaves them empty.
	AsOf time.Time
}

// PeriodInput covers an arbitrary inclusive date range, such as a week or a single day.
type PeriodInput struct {
	From     time.Time
	To       time.Time
	Jobs     []Job
	Absences []Absence
	Schedule Schedule
}

func (c *Calculator) ComputeMonth(in MonthInput) (PerformanceReport, error) {
	if !in.Month.Valid() {
		return PerformanceReport{}, invalid("month", "%s is not a calendar month", in.Month)
	}
	if !finite(in.TargetHours) || in.TargetHours < 0 {
		return PerformanceReport{}, invalid("targetHours", "must not be negative, got %v", in.TargetHours)
	}
	target := in.TargetHours
	return c.compute(in.Month.String(), in.Month.First(), in.Month.Last(), in.Jobs, in.Absences, in.Schedule, &target, in.AsOf)
}

func (c *Calculator) ComputePeriod(in PeriodInput) (PerformanceReport, error) {
	from, to := DateOnly(in.From), DateOnly(in.To)
	if to.Before(from) {
		return PerformanceReport{}, invalid("period", "%s ends before it starts (%s)", DateKey(to), DateKey(from))
	}
	period := DateKey(from)
	if !to.Equal(from) {
		period += ".." + DateKey(to)
	}
	return c.compute(period, from, to, in.Jobs, in.Absences, in.Schedule, nil, time.Time{})
}

func (c *Calculator) compute(
	period string,
	from, to time.Time,
	jobs []Job,
	absences []Absence,
	s Schedule,
	target *float64,
	asOf time.Time,
) (PerformanceReport, error) {
	if err := s.Validate(); err != nil {
		return PerformanceReport{}, prefixField(err, "schedule")
	}

	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return PerformanceReport{}, prefixField(err, fmt.Sprintf("jobs[%d]", i))
		}
	}
	periodJobs := JobsBetween(jobs, from, to)

	periodAbsences := make([]Absence, 0, len(absences))
	for i, a := range absences {
		if err := a.Validate(); err != nil {
			return PerformanceReport{}, prefixField(err, fmt.Sprintf("absences[%d]", i))
		}
		date, _ := ParseDate(a.Date)
		if inRange(date, from, to) {
			periodAbsences = append(periodAbsences, a)
		}
	}

	totals := c.conv.Aggregate(periodJobs)
	sold := totals.TotalHours

	days := WorkingDaysBetween(from, to, s)
	available := AvailableHours(days, s)

	ded, err := c.ledger.Apply(periodAbsences, s)
	if err != nil {
		return PerformanceReport{}, err
	}

	effective := math.Max(available-ded.FromAvailable, 0)

	var efficiency *int
	if effective > 0 {
		v := RoundInt(sold / effective * 100)
		efficiency = &v
	}
	label, color := c.Classify(efficiency)

	r := PerformanceReport{
		Period:                    period,
		From:                      from,
		To:                        to,
		WorkingDays:               len(days),
		Jobs:                      totals.Rounded(),
		SoldHours:                 Round2(sold),
		AvailableHours:            Round2(available),
		EffectiveAvailableHours:   Round2(effective),
		AbsenceHoursFromAvailable: Round2(ded.FromAvailable),
		AbsenceHoursFromTarget:    Round2(ded.FromTarget),
		AbsenceDays:               Round2(ded.TotalAbsenceDays),
		EfficiencyPercent:         efficiency,
		EfficiencyLabel:           label,
		EfficiencyColor:           color,
	}

	if target == nil {
		return r, nil
	}

	adjusted := math.Max(*target-ded.FromTarget, 0)
	remaining := adjusted - sold
	r.HasTarget = true
	r.TargetHours = Round2(*target)
	r.AdjustedTargetHours = Round2(adjusted)
	r.RemainingHours = Round2(remaining)

	if !asOf.IsZero() {
		r.RemainingWorkingDays = remainingWorkingDays(asOf, from, to, periodAbsences, s)
		if r.RemainingWorkingDays > 0 {
			hours := math.Max(remaining, 0) / float64(r.RemainingWorkingDays)
			perDay := Round2(hours)
			aw := Round2(c.conv.MinutesToAW(hours * 60))
			r.RequiredHoursPerDay = &perDay
			r.RequiredAWPerDay = &aw
		}
	}
	return r, nil
}

// Classify maps an efficiency percentage to its label and display color.
func (c *Calculator) Classify(efficiency *int) (EfficiencyLabel, Color) {
	if efficiency == nil {
		return LabelNA, ColorGrey
	}
	v := float64(*efficiency)
	switch {
	case v >= c.settings.ExcellentThreshold:
		return LabelExcellent, ColorGreen
	case v >= c.settings.GoodThreshold:
		return LabelGood, ColorAmber
	default:
		return LabelPoor, ColorRed
	}
}

// remainingWorkingDays counts working days from asOf (inclusive) to the end of
// the range, leaving out dates covered by a full-day absence.
func remainingWorkingDays(asOf, from, to time.Time, absences []Absence, s Schedule) int {
	start := DateOnly(asOf)
	if start.Before(from) {
		start = from
	}
	if start.After(to) {
		return 0
	}

	off := make(map[string]bool, len(absences))
	for _, a := range absences {
		if a.IsFullDay(s) {
			date, _ := ParseDate(a.Date)
			off[DateKey(date)] = true
		}
	}

	n := 0
	for _, d := range WorkingDaysBetween(start, to, s) {
		if !off[DateKey(d)] {
			n++
		}
	}
	return n
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
