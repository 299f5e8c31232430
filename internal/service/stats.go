package service

import (
	"time"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// MonthStats is one month's report together with the inputs it was computed from.
type MonthStats struct {
	Month     performance.Month
	Report    performance.PerformanceReport
	Converter performance.Converter
	Jobs      []performance.Job
	Absences  []performance.Absence
	Schedule  performance.Schedule
}

func (m *MonthStats) ByDay() map[string]performance.Totals {
	return m.Converter.ByDay(m.Jobs)
}

func (m *MonthStats) ByWeek() map[int]performance.Totals {
	return m.Converter.ByWeek(m.Jobs, nil)
}

// PeriodStats is the report for an arbitrary date range such as a week.
type PeriodStats struct {
	Report    performance.PerformanceReport
	Converter performance.Converter
	Jobs      []performance.Job
}

type StatsService struct {
	snapshots repository.SnapshotRepository
	settings  *SettingsService
	loc       *time.Location
	now       Clock
	logger    *logrus.Logger
}

func NewStatsService(
	snapshots repository.SnapshotRepository,
	settings *SettingsService,
	loc *time.Location,
	now Clock,
	logger *logrus.Logger,
) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{
		snapshots: snapshots,
		settings:  settings,
		loc:       loc,
		now:       now,
		logger:    newServiceLogger(logger),
	}
}

func (s *StatsService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *StatsService) CurrentMonth() performance.Month {
	return performance.MonthOf(s.Now())
}

func (s *StatsService) calculator(stored *models.FormulaSetting) (*performance.Calculator, performance.FormulaSettings, error) {
	settings := s.settings.Resolve(stored)
	calc, err := performance.NewCalculator(settings, s.logger)
	return calc, settings, err
}

// Month loads one consistent snapshot and computes the month report. The pace
// fields are computed as of the current local date.
func (s *StatsService) Month(month performance.Month) (*MonthStats, error) {
	if !month.Valid() {
		return nil, performance.ValidationErrorFor("month", "%s is not a calendar month", month)
	}

	from, to := monthBounds(month, s.loc)
	snap, err := s.snapshots.Load(repository.SnapshotQuery{
		JobsFrom:    from,
		JobsTo:      to,
		AbsenceFrom: performance.DateKey(month.First()),
		AbsenceTo:   performance.DateKey(month.Last()),
		Month:       month.String(),
	})
	if err != nil {
		return nil, err
	}

	calc, settings, err := s.calculator(snap.Settings)
	if err != nil {
		return nil, err
	}
	sched, err := ResolveSchedule(snap.Schedule, settings)
	if err != nil {
		return nil, err
	}

	jobs := models.JobsToEngine(snap.Jobs, s.loc)
	absences := models.AbsencesToEngine(snap.Absences)
	report, err := calc.ComputeMonth(performance.MonthInput{
		Month:       month,
		Jobs:        jobs,
		Absences:    absences,
		Schedule:    sched,
		TargetHours: ResolveTarget(settings, snap.Target),
		AsOf:        s.Now(),
	})
	if err != nil {
		s.logger.WithError(err).WithField("month", month.String()).Error("Failed to compute month report")
		return nil, err
	}

	return &MonthStats{
		Month:     month,
		Report:    report,
		Converter: calc.Converter(),
		Jobs:      jobs,
		Absences:  absences,
		Schedule:  sched,
	}, nil
}

// Period computes the report for the inclusive local date range [from, to].
func (s *StatsService) Period(from, to time.Time) (*PeriodStats, error) {
	start, end := dayBounds(from, to, s.loc)
	snap, err := s.snapshots.Load(repository.SnapshotQuery{
		JobsFrom:    start,
		JobsTo:      end,
		AbsenceFrom: performance.DateKey(from),
		AbsenceTo:   performance.DateKey(to),
	})
	if err != nil {
		return nil, err
	}

	calc, settings, err := s.calculator(snap.Settings)
	if err != nil {
		return nil, err
	}
	sched, err := ResolveSchedule(snap.Schedule, settings)
	if err != nil {
		return nil, err
	}

	jobs := models.JobsToEngine(snap.Jobs, s.loc)
	report, err := calc.ComputePeriod(performance.PeriodInput{
		From:     from,
		To:       to,
		Jobs:     jobs,
		Absences: models.AbsencesToEngine(snap.Absences),
		Schedule: sched,
	})
	if err != nil {
		return nil, err
	}
	return &PeriodStats{Report: report, Converter: calc.Converter(), Jobs: jobs}, nil
}

func (s *StatsService) Week(date time.Time) (*PeriodStats, error) {
	monday, sunday := WeekOf(date.In(s.loc))
	return s.Period(monday, sunday)
}

func (s *StatsService) Today() (*PeriodStats, error) {
	today := s.Now()
	return s.Period(today, today)
}
