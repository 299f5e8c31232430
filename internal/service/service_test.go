package service

import (
	"errors"
	"testing"
	"time"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

type fixture struct {
	db        *gorm.DB
	clock     *fakeClock
	loc       *time.Location
	jobRepo   repository.JobRepository
	jobs      *JobService
	absences  *AbsenceService
	schedules *ScheduleService
	settings  *SettingsService
	stats     *StatsService
	exports   *ExportService
}

func newFixture(t *testing.T, loc *time.Location, now time.Time) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log, _ := test.NewNullLogger()

	jobRepo, err := repository.NewGormJobRepository(db, log)
	require.NoError(t, err)
	absenceRepo, err := repository.NewGormAbsenceRepository(db, log)
	require.NoError(t, err)
	scheduleRepo, err := repository.NewGormWorkScheduleRepository(db, log)
	require.NoError(t, err)
	settingRepo, err := repository.NewGormFormulaSettingRepository(db, log)
	require.NoError(t, err)
	targetRepo, err := repository.NewGormMonthlyTargetRepository(db, log)
	require.NoError(t, err)
	snapshots := repository.NewGormSnapshotRepository(db, log)

	clock := &fakeClock{t: now}
	settings := NewSettingsService(settingRepo, targetRepo, performance.DefaultFormulaSettings(), log)
	schedules := NewScheduleService(scheduleRepo, settings, log)
	stats := NewStatsService(snapshots, settings, loc, clock.Now, log)

	return &fixture{
		db:        db,
		clock:     clock,
		loc:       loc,
		jobRepo:   jobRepo,
		jobs:      NewJobService(jobRepo, loc, clock.Now, log),
		absences:  NewAbsenceService(absenceRepo, schedules, log),
		schedules: schedules,
		settings:  settings,
		stats:     stats,
		exports:   NewExportService(stats, log),
	}
}

// seedMarch stores four jobs worth 420 AW (35 hours) in March 2024.
func (f *fixture) seedMarch(t *testing.T) {
	t.Helper()
	for i, day := range []int{1, 4, 12, 20} {
		require.NoError(t, f.jobRepo.Create(&models.Job{
			WIPNumber:  "W" + string(rune('1'+i)),
			VehicleReg: "AB12CDE",
			AW:         105,
			VHCStatus:  "GREEN",
			CreatedAt:  time.Date(2024, 3, day, 10, 0, 0, 0, f.loc),
		}))
	}
}

var errInsertFailed = errors.New("disk I/O error")

// failInserts makes every later INSERT on db fail.
func failInserts(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_insert", func(tx *gorm.DB) {
		_ = tx.AddError(errInsertFailed)
	}))
}

var march2024 = performance.Month{Year: 2024, Month: time.March}

func ptr[T any](v T) *T { return &v }
