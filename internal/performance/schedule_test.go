package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDaysInMonth_Weekdays(t *testing.T) {
	s := DefaultSchedule()

	march := WorkingDaysInMonth(2024, time.March, s)
	assert.Len(t, march, 21)
	assert.Equal(t, 178.5, AvailableHours(march, s))

	june := WorkingDaysInMonth(2024, time.June, s)
	assert.Len(t, june, 20)
	assert.Equal(t, 170.0, AvailableHours(june, s))

	for i := 1; i < len(march); i++ {
		assert.True(t, march[i-1].Before(march[i]), "days must ascend")
	}
}

func TestWorkingDaysInMonth_InvalidMonth(t *testing.T) {
	s := DefaultSchedule()
	assert.Empty(t, WorkingDaysInMonth(2024, 0, s))
	assert.Empty(t, WorkingDaysInMonth(2024, 13, s))
	assert.NotNil(t, WorkingDaysInMonth(2024, 13, s))
}

func TestIsWorkingDay_SundayNeverWorks(t *testing.T) {
	s := DefaultSchedule()
	s.WorkingWeekdays = append(s.WorkingWeekdays, time.Sunday, time.Saturday)
	s.SaturdayPolicy = SaturdayEvery

	assert.False(t, IsWorkingDay(date("2024-03-03"), s))
	assert.True(t, IsWorkingDay(date("2024-03-02"), s))
	assert.Len(t, WorkingDaysInMonth(2024, time.March, s), 26)
}

func TestSaturdayPolicies(t *testing.T) {
	cases := []struct {
		name     string
		policy   SaturdayPolicy
		anchor   string
		custom   []string
		weekdays []time.Weekday
		want     int
		works    []string
	}{
		{name: "weekdays without saturday", policy: SaturdayFromWeekdays, want: 21},
		{
			name:     "weekdays with saturday",
			policy:   SaturdayFromWeekdays,
			weekdays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
			want:     26,
		},
		{name: "none", policy: SaturdayNone, want: 21},
		{name: "every", policy: SaturdayEvery, want: 26, works: []string{"2024-03-02", "2024-03-30"}},
		{name: "1-in-2", policy: SaturdayOneInTwo, anchor: "2024-03-02", want: 24, works: []string{"2024-03-02", "2024-03-16", "2024-03-30"}},
		{name: "1-in-2 anchor in the future", policy: SaturdayOneInTwo, anchor: "2024-03-16", want: 24, works: []string{"2024-03-02"}},
		{name: "1-in-3", policy: SaturdayOneInThree, anchor: "2024-03-09", want: 23, works: []string{"2024-03-09", "2024-03-30"}},
		{name: "1-in-4", policy: SaturdayOneInFour, anchor: "2024-02-24", want: 22, works: []string{"2024-03-23"}},
		{name: "custom dates", policy: SaturdayCustomDates, custom: []string{"2024-03-16", "2024-04-06"}, want: 22, works: []string{"2024-03-16"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSchedule()
			s.SaturdayPolicy = c.policy
			s.NextWorkingSaturday = c.anchor
			s.CustomSaturdays = c.custom
			if c.weekdays != nil {
				s.WorkingWeekdays = c.weekdays
			}
			require.NoError(t, s.Validate())

			assert.Len(t, WorkingDaysInMonth(2024, time.March, s), c.want)
			for _, d := range c.works {
				assert.True(t, IsWorkingDay(date(d), s), d)
			}
		})
	}
}

func TestOneInTwo_BeforeAnchor(t *testing.T) {
	s := DefaultSchedule()
	s.SaturdayPolicy = SaturdayOneInTwo
	s.NextWorkingSaturday = "2024-03-16"

	assert.True(t, IsWorkingDay(date("2024-03-02"), s))
	assert.False(t, IsWorkingDay(date("2024-03-09"), s))
	assert.True(t, IsWorkingDay(date("2024-03-16"), s))
	assert.False(t, IsWorkingDay(date("2024-03-23"), s))
}

func TestSaturdayHours(t *testing.T) {
	s := DefaultSchedule()
	s.SaturdayPolicy = SaturdayEvery
	s.SaturdayHours = ptr(4.0)

	days := WorkingDaysInMonth(2024, time.March, s)
	assert.Equal(t, 21*8.5+5*4.0, AvailableHours(days, s))
	assert.Equal(t, 4.0, HoursForDate(date("2024-03-02"), s))
	assert.Equal(t, 8.5, HoursForDate(date("2024-03-04"), s))

	s.SaturdayHours = nil
	assert.Equal(t, 8.5, HoursForDate(date("2024-03-02"), s))
}

func TestWorkingDaysBetween_Inclusive(t *testing.T) {
	s := DefaultSchedule()
	days := WorkingDaysBetween(date("2024-03-04"), date("2024-03-10"), s)
	require.Len(t, days, 5)
	assert.Equal(t, "2024-03-04", DateKey(days[0]))
	assert.Equal(t, "2024-03-08", DateKey(days[4]))

	assert.Len(t, WorkingDaysBetween(date("2024-03-05"), date("2024-03-05"), s), 1)
	assert.Empty(t, WorkingDaysBetween(date("2024-03-06"), date("2024-03-05"), s))
}

func TestScheduleValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Schedule)
		field  string
	}{
		{"zero hours", func(s *Schedule) { s.DailyWorkingHours = 0 }, "dailyWorkingHours"},
		{"no weekdays", func(s *Schedule) { s.WorkingWeekdays = nil }, "workingWeekdays"},
		{"bad weekday", func(s *Schedule) { s.WorkingWeekdays = []time.Weekday{9} }, "workingWeekdays"},
		{"unknown policy", func(s *Schedule) { s.SaturdayPolicy = "sometimes" }, "saturdayPolicy"},
		{"missing anchor", func(s *Schedule) { s.SaturdayPolicy = SaturdayOneInTwo }, "nextWorkingSaturday"},
		{"bad anchor", func(s *Schedule) {
			s.SaturdayPolicy = SaturdayOneInThree
			s.NextWorkingSaturday = "next week"
		}, "nextWorkingSaturday"},
		{"bad custom date", func(s *Schedule) { s.CustomSaturdays = []string{"2024/03/02"} }, "customSaturdays"},
		{"negative saturday hours", func(s *Schedule) { s.SaturdayHours = ptr(-1.0) }, "saturdayHours"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSchedule()
			c.mutate(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, c.field, ve.Field)
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.March}, m)
	assert.Equal(t, "2024-03", m.String())
	assert.Equal(t, "2024-03-31", DateKey(m.Last()))
	assert.Equal(t, "2024-04", m.Next().String())
	assert.Equal(t, "2023-12", Month{Year: 2024, Month: time.January}.Prev().String())

	_, err = ParseMonth("2024-3x")
	assert.ErrorIs(t, err, ErrValidation)
}
