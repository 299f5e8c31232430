package service

import (
	"testing"
	"time"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobArgs(t *testing.T) {
	cases := []struct {
		name string
		args string
		want JobInput
	}{
		{"minimal", "1001 ab12cde 12", JobInput{WIPNumber: "1001", VehicleReg: "ab12cde", AW: 12, VHC: performance.VHCNone}},
		{"vhc and notes", "1001 AB12CDE 12,5 orange brake pads", JobInput{WIPNumber: "1001", VehicleReg: "AB12CDE", AW: 12.5, VHC: performance.VHCAmber, Notes: "brake pads"}},
		{"notes without vhc", "1001 AB12CDE 6 front tyres", JobInput{WIPNumber: "1001", VehicleReg: "AB12CDE", AW: 6, VHC: performance.VHCNone, Notes: "front tyres"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseJobArgs(c.args)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	for _, bad := range []string{"", "1001 AB12", "1001 AB12 x", "1001 AB12 -1"} {
		_, err := ParseJobArgs(bad)
		assert.Error(t, err, bad)
	}
}

func TestJobService_Lifecycle(t *testing.T) {
	now := time.Date(2024, 3, 5, 11, 20, 0, 0, time.UTC)
	f := newFixture(t, time.UTC, now)

	job, err := f.jobs.AddJob(JobInput{WIPNumber: "1001", VehicleReg: "ab12cde", AW: 12, VHC: performance.VHCRed})
	require.NoError(t, err)
	assert.Equal(t, "AB12CDE", job.VehicleReg)
	assert.Equal(t, "RED", job.VHCStatus)
	assert.True(t, job.CreatedAt.Equal(now))

	updated, err := f.jobs.UpdateJob(job.ID, JobInput{WIPNumber: "1001", VehicleReg: "AB12CDE", AW: 18, Notes: "extra"})
	require.NoError(t, err)
	assert.Equal(t, 18.0, updated.AW)
	assert.Equal(t, "NONE", updated.VHCStatus)
	assert.True(t, updated.CreatedAt.Equal(now))

	today, err := f.jobs.TodayJobs()
	require.NoError(t, err)
	assert.Len(t, today, 1)

	require.NoError(t, f.jobs.DeleteJob(job.ID))
	assert.ErrorIs(t, f.jobs.DeleteJob(job.ID), ErrJobNotFound)
	_, err = f.jobs.GetJob(job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = f.jobs.UpdateJob(job.ID, JobInput{WIPNumber: "1", VehicleReg: "R", AW: 1})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobService_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t, time.UTC, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))

	_, err := f.jobs.AddJob(JobInput{WIPNumber: "1001", VehicleReg: "AB12CDE", AW: -3})
	assert.ErrorIs(t, err, performance.ErrValidation)

	_, err = f.jobs.AddJob(JobInput{VehicleReg: "AB12CDE", AW: 3})
	assert.Error(t, err)
}

func TestFormatJobList(t *testing.T) {
	f := newFixture(t, time.UTC, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	conv := performance.NewConverter(5)

	assert.Equal(t, "📭 No jobs logged yet", f.jobs.FormatJobList(nil, conv))

	job, err := f.jobs.AddJob(JobInput{WIPNumber: "1001", VehicleReg: "AB12CDE", AW: 12, VHC: performance.VHCGreen})
	require.NoError(t, err)
	list := f.jobs.FormatJobList([]models.Job{*job}, conv)
	assert.Contains(t, list, "1001 AB12CDE - 12 AW (1.00h) 🟢")
	assert.Contains(t, f.jobs.FormatJob(job, conv), "AW: 12 (1.00h)")
}
