package performance

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2024 = Month{Year: 2024, Month: time.March}

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := NewCalculator(DefaultFormulaSettings(), logger)
	require.NoError(t, err)
	return c
}

func TestComputeMonth_NoAbsences(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{
		Month:       march2024,
		Jobs:        marchJobs(),
		Schedule:    DefaultSchedule(),
		TargetHours: 180,
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03", r.Period)
	assert.Equal(t, 21, r.WorkingDays)
	assert.Equal(t, 40, r.Jobs.Count)
	assert.Equal(t, 35.0, r.SoldHours)
	assert.Equal(t, 178.5, r.AvailableHours)
	assert.Equal(t, 178.5, r.EffectiveAvailableHours)
	require.NotNil(t, r.EfficiencyPercent)
	assert.Equal(t, 20, *r.EfficiencyPercent)
	assert.Equal(t, LabelPoor, r.EfficiencyLabel)
	assert.Equal(t, ColorRed, r.EfficiencyColor)
	assert.True(t, r.HasTarget)
	assert.Equal(t, 180.0, r.AdjustedTargetHours)
	assert.Equal(t, 145.0, r.RemainingHours)
	assert.Nil(t, r.RequiredHoursPerDay)
}

func TestComputeMonth_AvailableHoursAbsence(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{
		Month: march2024,
		Jobs:  marchJobs(),
		Absences: []Absence{
			{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
		},
		Schedule:    DefaultSchedule(),
		TargetHours: 180,
	})
	require.NoError(t, err)

	assert.Equal(t, 8.5, r.AbsenceHoursFromAvailable)
	assert.Equal(t, 170.0, r.EffectiveAvailableHours)
	require.NotNil(t, r.EfficiencyPercent)
	assert.Equal(t, 21, *r.EfficiencyPercent)
	assert.Equal(t, 180.0, r.AdjustedTargetHours)
	assert.Equal(t, 1.0, r.AbsenceDays)
}

func TestComputeMonth_TargetAbsence(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{
		Month: march2024,
		Jobs:  marchJobs(),
		Absences: []Absence{
			{Date: "2024-03-05", Type: AbsenceSickness, DaysCount: ptr(1.0), IsHalfDay: true, Deduction: DeductMonthlyTarget},
		},
		Schedule:    DefaultSchedule(),
		TargetHours: 180,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.25, r.AbsenceHoursFromTarget)
	assert.Equal(t, 175.75, r.AdjustedTargetHours)
	assert.Equal(t, 140.75, r.RemainingHours)
	assert.Equal(t, 178.5, r.EffectiveAvailableHours)
	assert.Equal(t, 20, *r.EfficiencyPercent)
}

func TestComputeMonth_IgnoresOtherMonths(t *testing.T) {
	c := newTestCalculator(t)
	jobs := append(marchJobs(), Job{AW: 100, CreatedAt: date("2024-04-01")})
	absences := []Absence{
		{Date: "2024-02-29", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
	}

	r, err := c.ComputeMonth(MonthInput{Month: march2024, Jobs: jobs, Absences: absences, Schedule: DefaultSchedule(), TargetHours: 180})
	require.NoError(t, err)
	assert.Equal(t, 40, r.Jobs.Count)
	assert.Zero(t, r.AbsenceHoursFromAvailable)
}

func TestComputeMonth_ZeroJobs(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{Month: march2024, Schedule: DefaultSchedule(), TargetHours: 180})
	require.NoError(t, err)
	require.NotNil(t, r.EfficiencyPercent)
	assert.Equal(t, 0, *r.EfficiencyPercent)
	assert.Equal(t, LabelPoor, r.EfficiencyLabel)
	assert.Equal(t, 180.0, r.RemainingHours)
}

func TestComputeMonth_ZeroWorkingDays(t *testing.T) {
	c := newTestCalculator(t)
	s := DefaultSchedule()
	s.WorkingWeekdays = []time.Weekday{time.Saturday}
	s.SaturdayPolicy = SaturdayNone

	r, err := c.ComputeMonth(MonthInput{Month: march2024, Jobs: marchJobs(), Schedule: s, TargetHours: 180})
	require.NoError(t, err)
	assert.Zero(t, r.WorkingDays)
	assert.Zero(t, r.EffectiveAvailableHours)
	assert.Nil(t, r.EfficiencyPercent)
	assert.Equal(t, LabelNA, r.EfficiencyLabel)
	assert.Equal(t, ColorGrey, r.EfficiencyColor)
}

func TestComputeMonth_TargetExceeded(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{Month: march2024, Jobs: marchJobs(), Schedule: DefaultSchedule(), TargetHours: 30})
	require.NoError(t, err)
	assert.Equal(t, -5.0, r.RemainingHours)

	r, err = c.ComputeMonth(MonthInput{Month: march2024, Jobs: marchJobs(), Schedule: DefaultSchedule(), TargetHours: 0})
	require.NoError(t, err)
	assert.Zero(t, r.AdjustedTargetHours)
	assert.Equal(t, -35.0, r.RemainingHours)
}

func TestComputeMonth_TargetDeductionFloorsAtZero(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputeMonth(MonthInput{
		Month: march2024,
		Absences: []Absence{
			{Date: "2024-03-04", Type: AbsenceTraining, CustomHours: ptr(50.0), Deduction: DeductMonthlyTarget},
		},
		Schedule:    DefaultSchedule(),
		TargetHours: 40,
	})
	require.NoError(t, err)
	assert.Zero(t, r.AdjustedTargetHours)
	assert.Zero(t, r.RemainingHours)
}

func TestComputeMonth_Pace(t *testing.T) {
	c := newTestCalculator(t)
	in := MonthInput{
		Month: march2024,
		Jobs:  marchJobs(),
		Absences: []Absence{
			{Date: "2024-03-27", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
			{Date: "2024-03-28", Type: AbsenceHoliday, DaysCount: ptr(1.0), IsHalfDay: true, Deduction: DeductAvailableHours},
		},
		Schedule:    DefaultSchedule(),
		TargetHours: 180,
		AsOf:        time.Date(2024, 3, 25, 14, 0, 0, 0, time.UTC),
	}

	r, err := c.ComputeMonth(in)
	require.NoError(t, err)
	assert.Equal(t, 4, r.RemainingWorkingDays)
	require.NotNil(t, r.RequiredHoursPerDay)
	assert.Equal(t, 36.25, *r.RequiredHoursPerDay)
	require.NotNil(t, r.RequiredAWPerDay)
	assert.Equal(t, 435.0, *r.RequiredAWPerDay)

	in.AsOf = date("2024-04-02")
	r, err = c.ComputeMonth(in)
	require.NoError(t, err)
	assert.Zero(t, r.RemainingWorkingDays)
	assert.Nil(t, r.RequiredHoursPerDay)
	assert.Nil(t, r.RequiredAWPerDay)

	in.AsOf = date("2024-02-15")
	r, err = c.ComputeMonth(in)
	require.NoError(t, err)
	assert.Equal(t, 20, r.RemainingWorkingDays)
}

func TestComputeMonth_Idempotent(t *testing.T) {
	c := newTestCalculator(t)
	in := MonthInput{
		Month: march2024,
		Jobs:  marchJobs(),
		Absences: []Absence{
			{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
			{Date: "2024-03-05", Type: AbsenceSickness, CustomHours: ptr(2.5), Deduction: DeductMonthlyTarget},
		},
		Schedule:    DefaultSchedule(),
		TargetHours: 180,
	}

	first, err := c.ComputeMonth(in)
	require.NoError(t, err)
	second, err := c.ComputeMonth(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.SoldHours), math.Float64bits(second.SoldHours))
	assert.Equal(t, math.Float64bits(first.RemainingHours), math.Float64bits(second.RemainingHours))
}

func TestComputeMonth_MoreAbsenceNeverRaisesEffectiveHours(t *testing.T) {
	c := newTestCalculator(t)
	var absences []Absence
	prev := math.Inf(1)

	for d := march2024.First(); march2024.Contains(d); d = d.AddDate(0, 0, 1) {
		absences = append(absences, Absence{
			Date:        DateKey(d),
			Type:        AbsenceHoliday,
			CustomHours: ptr(20.0),
			Deduction:   DeductAvailableHours,
		})
		r, err := c.ComputeMonth(MonthInput{Month: march2024, Jobs: marchJobs(), Absences: absences, Schedule: DefaultSchedule(), TargetHours: 180})
		require.NoError(t, err)

		assert.LessOrEqual(t, r.EffectiveAvailableHours, prev)
		assert.GreaterOrEqual(t, r.EffectiveAvailableHours, 0.0)
		prev = r.EffectiveAvailableHours
	}
	assert.Zero(t, prev)
}

func TestComputeMonth_CustomMinutesPerAW(t *testing.T) {
	settings := DefaultFormulaSettings()
	settings.MinutesPerAW = 6
	c, err := NewCalculator(settings, nil)
	require.NoError(t, err)

	r, err := c.ComputeMonth(MonthInput{Month: march2024, Jobs: marchJobs(), Schedule: DefaultSchedule(), TargetHours: 180})
	require.NoError(t, err)
	assert.Equal(t, 42.0, r.SoldHours)
	assert.Equal(t, 2520.0, r.Jobs.TotalMinutes)
}

func TestComputeMonth_Validation(t *testing.T) {
	c := newTestCalculator(t)
	badJobs := marchJobs()
	badJobs[3].AW = -2
	badSchedule := DefaultSchedule()
	badSchedule.DailyWorkingHours = 0

	cases := []struct {
		name  string
		in    MonthInput
		field string
	}{
		{"negative aw", MonthInput{Month: march2024, Jobs: badJobs, Schedule: DefaultSchedule()}, "jobs[3].aw"},
		{"bad schedule", MonthInput{Month: march2024, Schedule: badSchedule}, "schedule.dailyWorkingHours"},
		{"negative target", MonthInput{Month: march2024, Schedule: DefaultSchedule(), TargetHours: -1}, "targetHours"},
		{"bad month", MonthInput{Month: Month{Year: 2024, Month: 13}, Schedule: DefaultSchedule()}, "month"},
		{
			"bad absence",
			MonthInput{Month: march2024, Schedule: DefaultSchedule(), Absences: []Absence{{Date: "2024-03-04", Type: AbsenceHoliday, Deduction: DeductAvailableHours}}},
			"absences[0].duration",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.ComputeMonth(tc.in)
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestComputePeriod(t *testing.T) {
	c := newTestCalculator(t)

	r, err := c.ComputePeriod(PeriodInput{
		From:     date("2024-03-04"),
		To:       date("2024-03-10"),
		Jobs:     marchJobs(),
		Schedule: DefaultSchedule(),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04..2024-03-10", r.Period)
	assert.Equal(t, 5, r.WorkingDays)
	assert.Equal(t, 42.5, r.AvailableHours)
	assert.Equal(t, 10, r.Jobs.Count)
	assert.Equal(t, 8.75, r.SoldHours)
	assert.Equal(t, 21, *r.EfficiencyPercent)
	assert.False(t, r.HasTarget)

	day, err := c.ComputePeriod(PeriodInput{From: date("2024-03-04"), To: date("2024-03-04"), Schedule: DefaultSchedule()})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", day.Period)

	_, err = c.ComputePeriod(PeriodInput{From: date("2024-03-05"), To: date("2024-03-04"), Schedule: DefaultSchedule()})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClassify(t *testing.T) {
	c := newTestCalculator(t)
	cases := []struct {
		eff   *int
		label EfficiencyLabel
		color Color
	}{
		{ptr(65), LabelExcellent, ColorGreen},
		{ptr(120), LabelExcellent, ColorGreen},
		{ptr(64), LabelGood, ColorAmber},
		{ptr(31), LabelGood, ColorAmber},
		{ptr(30), LabelPoor, ColorRed},
		{ptr(0), LabelPoor, ColorRed},
		{nil, LabelNA, ColorGrey},
	}
	for _, tc := range cases {
		label, color := c.Classify(tc.eff)
		assert.Equal(t, tc.label, label)
		assert.Equal(t, tc.color, color)
	}
}

func TestNewCalculator_InvalidSettings(t *testing.T) {
	settings := DefaultFormulaSettings()
	settings.GoodThreshold = 80
	_, err := NewCalculator(settings, nil)
	assert.ErrorIs(t, err, ErrValidation)

	settings = DefaultFormulaSettings()
	settings.MinutesPerAW = 0
	_, err = NewCalculator(settings, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
