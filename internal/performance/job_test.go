package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	c := NewConverter(DefaultMinutesPerAW)

	totals := c.Aggregate(marchJobs())
	assert.Equal(t, 40, totals.Count)
	assert.Equal(t, 420.0, totals.TotalAW)
	assert.Equal(t, 2100.0, totals.TotalMinutes)
	assert.Equal(t, 35.0, totals.TotalHours)

	assert.Equal(t, Totals{}, c.Aggregate(nil))
}

func TestByDay(t *testing.T) {
	c := NewConverter(DefaultMinutesPerAW)
	jobs := []Job{
		{AW: 12, CreatedAt: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)},
		{AW: 6, CreatedAt: time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC)},
		{AW: 24, CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
	}

	byDay := c.ByDay(jobs)
	require.Len(t, byDay, 2)
	assert.Equal(t, Totals{Count: 2, TotalAW: 18, TotalMinutes: 90, TotalHours: 1.5}, byDay["2024-03-04"])
	assert.Equal(t, Totals{Count: 1, TotalAW: 24, TotalMinutes: 120, TotalHours: 2}, byDay["2024-03-05"])
	assert.Equal(t, []string{"2024-03-04", "2024-03-05"}, SortedDays(byDay))
}

func TestByDay_UsesCreatedAtLocation(t *testing.T) {
	c := NewConverter(DefaultMinutesPerAW)
	berlin := time.FixedZone("CET", 3600)
	jobs := []Job{{AW: 12, CreatedAt: time.Date(2024, 3, 5, 0, 30, 0, 0, berlin)}}

	_, ok := c.ByDay(jobs)["2024-03-05"]
	assert.True(t, ok)
}

func TestWeekOfMonth(t *testing.T) {
	// March 2024 starts on a Friday.
	cases := map[string]int{
		"2024-03-01": 1,
		"2024-03-02": 1,
		"2024-03-03": 2,
		"2024-03-09": 2,
		"2024-03-10": 3,
		"2024-03-31": 6,
	}
	for d, want := range cases {
		assert.Equal(t, want, WeekOfMonth(date(d)), d)
	}
}

func TestByWeek(t *testing.T) {
	c := NewConverter(DefaultMinutesPerAW)
	jobs := []Job{
		{AW: 12, CreatedAt: date("2024-03-01")},
		{AW: 12, CreatedAt: date("2024-03-04")},
		{AW: 24, CreatedAt: date("2024-03-06")},
	}

	byWeek := c.ByWeek(jobs, nil)
	assert.Equal(t, []int{1, 2}, SortedWeeks(byWeek))
	assert.Equal(t, 3.0, byWeek[2].TotalHours)

	iso := c.ByWeek(jobs, func(t time.Time) int {
		_, w := t.ISOWeek()
		return w
	})
	assert.Equal(t, []int{9, 10}, SortedWeeks(iso))
}

func TestCountVHC(t *testing.T) {
	counts := CountVHC([]Job{{VHC: VHCRed}, {VHC: VHCAmber}, {VHC: VHCRed}, {}})
	assert.Equal(t, map[VHCStatus]int{VHCNone: 1, VHCGreen: 0, VHCAmber: 1, VHCRed: 2}, counts)
}

func TestParseVHC(t *testing.T) {
	cases := map[string]VHCStatus{
		"":       VHCNone,
		"none":   VHCNone,
		"green":  VHCGreen,
		"Orange": VHCAmber,
		"AMBER":  VHCAmber,
		" red ":  VHCRed,
	}
	for in, want := range cases {
		got, err := ParseVHC(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseVHC("purple")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJobValidate(t *testing.T) {
	assert.NoError(t, Job{AW: 0}.Validate())
	assert.ErrorIs(t, Job{AW: -1}.Validate(), ErrValidation)
}

func TestJobsBetween(t *testing.T) {
	jobs := marchJobs()
	week := JobsBetween(jobs, date("2024-03-04"), date("2024-03-10"))
	for _, j := range week {
		assert.True(t, !j.CreatedAt.Before(date("2024-03-04")) && j.CreatedAt.Before(date("2024-03-11")))
	}
	assert.NotEmpty(t, week)
	assert.Len(t, JobsBetween(jobs, date("2024-03-01"), date("2024-03-31")), 40)
}
