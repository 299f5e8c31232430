package performance

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsenceHours(t *testing.T) {
	s := DefaultSchedule()

	cases := []struct {
		name    string
		absence Absence
		want    float64
	}{
		{
			name:    "full day",
			absence: Absence{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
			want:    8.5,
		},
		{
			name:    "half day",
			absence: Absence{Date: "2024-03-05", Type: AbsenceSickness, DaysCount: ptr(1.0), IsHalfDay: true, Deduction: DeductMonthlyTarget},
			want:    4.25,
		},
		{
			name:    "two days on one record",
			absence: Absence{Date: "2024-03-06", Type: AbsenceTraining, DaysCount: ptr(2.0), Deduction: DeductAvailableHours},
			want:    17,
		},
		{
			name:    "custom hours",
			absence: Absence{Date: "2024-03-07", Type: AbsenceTraining, CustomHours: ptr(3.0), Deduction: DeductAvailableHours},
			want:    3,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := AbsenceHours(c.absence, s)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestAbsenceHours_CustomIgnoresDailyHours(t *testing.T) {
	a := Absence{Date: "2024-03-07", Type: AbsenceHoliday, CustomHours: ptr(3.0), Deduction: DeductAvailableHours}
	for _, daily := range []float64{7, 8.5, 10} {
		s := DefaultSchedule()
		s.DailyWorkingHours = daily
		got, err := AbsenceHours(a, s)
		require.NoError(t, err)
		assert.Equal(t, 3.0, got, "daily=%v", daily)
	}
}

func TestAbsenceHours_SaturdayHours(t *testing.T) {
	s := DefaultSchedule()
	s.SaturdayPolicy = SaturdayEvery
	s.SaturdayHours = ptr(4.0)

	a := Absence{Date: "2024-03-02", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours}
	got, err := AbsenceHours(a, s)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestAbsenceValidate(t *testing.T) {
	cases := []struct {
		name    string
		absence Absence
		field   string
	}{
		{"both durations", Absence{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), CustomHours: ptr(2.0), Deduction: DeductAvailableHours}, "duration"},
		{"no duration", Absence{Date: "2024-03-04", Type: AbsenceHoliday, Deduction: DeductAvailableHours}, "duration"},
		{"zero days", Absence{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(0.0), Deduction: DeductAvailableHours}, "daysCount"},
		{"negative hours", Absence{Date: "2024-03-04", Type: AbsenceHoliday, CustomHours: ptr(-1.0), Deduction: DeductAvailableHours}, "customHours"},
		{"bad date", Absence{Date: "04/03/2024", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours}, "absenceDate"},
		{"bad type", Absence{Date: "2024-03-04", Type: "vacation", DaysCount: ptr(1.0), Deduction: DeductAvailableHours}, "absenceType"},
		{"bad deduction", Absence{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: "SALARY"}, "deductionType"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.absence.Validate()
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, c.field, ve.Field)
		})
	}
}

func TestLedger_SplitsPools(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ledger := NewLedger(logger)

	d, err := ledger.Apply([]Absence{
		{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
		{Date: "2024-03-05", Type: AbsenceSickness, DaysCount: ptr(1.0), IsHalfDay: true, Deduction: DeductMonthlyTarget},
		{Date: "2024-03-06", Type: AbsenceTraining, CustomHours: ptr(4.25), Deduction: DeductAvailableHours},
	}, DefaultSchedule())
	require.NoError(t, err)

	assert.Equal(t, 12.75, d.FromAvailable)
	assert.Equal(t, 4.25, d.FromTarget)
	assert.Equal(t, 2.0, d.TotalAbsenceDays)
	assert.Equal(t, 3, d.Applied)
	assert.Zero(t, d.Skipped)
}

func TestLedger_DuplicateDateKeepsFirst(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ledger := NewLedger(logger)

	d, err := ledger.Apply([]Absence{
		{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
		{Date: "2024-03-04", Type: AbsenceSickness, DaysCount: ptr(1.0), Deduction: DeductMonthlyTarget},
	}, DefaultSchedule())
	require.NoError(t, err)

	assert.Equal(t, 8.5, d.FromAvailable)
	assert.Zero(t, d.FromTarget)
	assert.Equal(t, 1, d.Applied)
	assert.Equal(t, 1, d.Skipped)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "2024-03-04", entry.Data["date"])
	assert.Equal(t, 0, entry.Data["kept_index"])
	assert.Equal(t, 1, entry.Data["dup_index"])
}

func TestLedger_NonWorkingDayStillDeducts(t *testing.T) {
	d, err := ApplyAbsences([]Absence{
		{Date: "2024-03-03", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
	}, DefaultSchedule())
	require.NoError(t, err)
	assert.Equal(t, 8.5, d.FromAvailable)
}

func TestLedger_InvalidRecordNamesIndex(t *testing.T) {
	_, err := ApplyAbsences([]Absence{
		{Date: "2024-03-04", Type: AbsenceHoliday, DaysCount: ptr(1.0), Deduction: DeductAvailableHours},
		{Date: "2024-03-05", Type: AbsenceHoliday, Deduction: DeductAvailableHours},
	}, DefaultSchedule())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "absences[1].duration", ve.Field)
}

func TestIsFullDay(t *testing.T) {
	s := DefaultSchedule()
	assert.True(t, Absence{Date: "2024-03-04", DaysCount: ptr(1.0)}.IsFullDay(s))
	assert.False(t, Absence{Date: "2024-03-04", DaysCount: ptr(1.0), IsHalfDay: true}.IsFullDay(s))
	assert.True(t, Absence{Date: "2024-03-04", CustomHours: ptr(8.5)}.IsFullDay(s))
	assert.False(t, Absence{Date: "2024-03-04", CustomHours: ptr(3.0)}.IsFullDay(s))
}
