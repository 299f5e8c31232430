package service

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"
	"aw-tracker-bot/pkg/saturdays"

	"github.com/sirupsen/logrus"
)

type ScheduleService struct {
	repo     repository.WorkScheduleRepository
	settings *SettingsService
	logger   *logrus.Logger
}

func NewScheduleService(repo repository.WorkScheduleRepository, settings *SettingsService, logger *logrus.Logger) *ScheduleService {
	return &ScheduleService{
		repo:     repo,
		settings: settings,
		logger:   newServiceLogger(logger),
	}
}

// Get returns the saved schedule or, when none exists, Monday to Friday at the
// default daily hours.
func (s *ScheduleService) Get() (performance.Schedule, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return performance.Schedule{}, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return performance.Schedule{}, err
	}
	return ResolveSchedule(stored, settings)
}

func ResolveSchedule(stored *models.WorkSchedule, settings performance.FormulaSettings) (performance.Schedule, error) {
	if stored == nil {
		sched := performance.DefaultSchedule()
		sched.DailyWorkingHours = settings.DefaultDailyHours
		return sched, nil
	}
	return stored.ToEngine()
}

func (s *ScheduleService) update(change func(*performance.Schedule)) (performance.Schedule, error) {
	sched, err := s.Get()
	if err != nil {
		return performance.Schedule{}, err
	}
	change(&sched)
	if err := sched.Validate(); err != nil {
		return performance.Schedule{}, err
	}
	if err := s.repo.Save(models.WorkScheduleFromEngine(sched)); err != nil {
		return performance.Schedule{}, err
	}
	return sched, nil
}

func (s *ScheduleService) SetDailyHours(hours float64) (performance.Schedule, error) {
	return s.update(func(sched *performance.Schedule) { sched.DailyWorkingHours = hours })
}

func (s *ScheduleService) SetWeekdays(days []time.Weekday) (performance.Schedule, error) {
	return s.update(func(sched *performance.Schedule) { sched.WorkingWeekdays = days })
}

// SetSaturdayPolicy stores the policy; anchor is required for 1-in-N policies.
func (s *ScheduleService) SetSaturdayPolicy(policy performance.SaturdayPolicy, anchor string) (performance.Schedule, error) {
	if anchor != "" {
		date, err := performance.ParseDate(anchor)
		if err != nil {
			return performance.Schedule{}, err
		}
		if date.Weekday() != time.Saturday {
			return performance.Schedule{}, fmt.Errorf("%s is a %s, not a Saturday", anchor, date.Weekday())
		}
	}
	return s.update(func(sched *performance.Schedule) {
		sched.SaturdayPolicy = policy
		sched.NextWorkingSaturday = anchor
	})
}

// SetSaturdayHours sets the Saturday override; nil falls back to the daily hours.
func (s *ScheduleService) SetSaturdayHours(hours *float64) (performance.Schedule, error) {
	return s.update(func(sched *performance.Schedule) { sched.SaturdayHours = hours })
}

// AddCustomSaturdays merges dates into the custom list and switches to the
// custom-dates policy.
func (s *ScheduleService) AddCustomSaturdays(dates []string) (performance.Schedule, error) {
	return s.update(func(sched *performance.Schedule) {
		sched.CustomSaturdays = saturdays.Merge(sched.CustomSaturdays, dates)
		sched.SaturdayPolicy = performance.SaturdayCustomDates
	})
}

// LoadSaturdaysJSON imports a working-Saturday calendar and returns how many
// dates it contained.
func (s *ScheduleService) LoadSaturdaysJSON(data []byte) (int, error) {
	dates, err := saturdays.Parse(data)
	if err != nil {
		return 0, err
	}
	if _, err := s.AddCustomSaturdays(dates); err != nil {
		return 0, err
	}

	s.logger.WithField("count", len(dates)).Info("Working Saturdays imported")
	return len(dates), nil
}

// LoadSaturdaysFile merges a calendar file into the custom dates at startup.
// The policy switches to custom-dates only while no schedule is saved, so a
// policy chosen in the bot survives restarts.
func (s *ScheduleService) LoadSaturdaysFile(path string) (int, error) {
	dates, err := saturdays.ParseFile(path)
	if err != nil {
		return 0, err
	}
	stored, err := s.repo.Get()
	if err != nil {
		return 0, err
	}

	seed := stored == nil
	_, err = s.update(func(sched *performance.Schedule) {
		sched.CustomSaturdays = saturdays.Merge(sched.CustomSaturdays, dates)
		if seed {
			sched.SaturdayPolicy = performance.SaturdayCustomDates
		}
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{"count": len(dates), "seed": seed}).Info("Working Saturday calendar merged")
	return len(dates), nil
}

func (s *ScheduleService) Reset() error {
	return s.repo.Reset()
}

func (s *ScheduleService) IsWorkingDay(date time.Time) (bool, error) {
	sched, err := s.Get()
	if err != nil {
		return false, err
	}
	return performance.IsWorkingDay(performance.DateOnly(date), sched), nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseWeekdays accepts "mon,tue,wed" or "1,2,3" (Sunday = 0).
func ParseWeekdays(input string) ([]time.Weekday, error) {
	fields := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}

	days := []time.Weekday{}
	for _, f := range fields {
		var wd time.Weekday
		if n, err := strconv.Atoi(f); err == nil {
			if n < 0 || n > 6 {
				return nil, fmt.Errorf("weekday %d is outside 0..6", n)
			}
			wd = time.Weekday(n)
		} else if named, ok := weekdayNames[f[:min(3, len(f))]]; ok {
			wd = named
		} else {
			return nil, fmt.Errorf("unknown weekday %q", f)
		}
		if !slices.Contains(days, wd) {
			days = append(days, wd)
		}
	}
	slices.Sort(days)
	return days, nil
}

// FormatSchedule renders the schedule; custom Saturdays are listed for month.
func FormatSchedule(sched performance.Schedule, month performance.Month) string {
	names := make([]string, 0, len(sched.WorkingWeekdays))
	for _, wd := range sched.WorkingWeekdays {
		names = append(names, wd.String()[:3])
	}

	policy := string(sched.SaturdayPolicy)
	if sched.SaturdayPolicy == performance.SaturdayFromWeekdays {
		policy = "follows weekdays"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Work schedule\n\n")
	fmt.Fprintf(&b, "⏰ Daily hours: %gh\n", sched.DailyWorkingHours)
	fmt.Fprintf(&b, "📋 Weekdays: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "🗓 Saturdays: %s\n", policy)
	if sched.SaturdayPolicy.Interval() > 0 {
		fmt.Fprintf(&b, "⚓ Anchor Saturday: %s\n", sched.NextWorkingSaturday)
	}
	if sched.SaturdayPolicy == performance.SaturdayCustomDates {
		fmt.Fprintf(&b, "📌 Custom Saturdays: %d\n", len(sched.CustomSaturdays))
		if inMonth := saturdays.ForMonth(sched.CustomSaturdays, month.Year, month.Month); len(inMonth) > 0 {
			fmt.Fprintf(&b, "   %s: %s\n", month, strings.Join(inMonth, ", "))
		}
	}
	if sched.SaturdayHours != nil {
		fmt.Fprintf(&b, "⏱ Saturday hours: %gh\n", *sched.SaturdayHours)
	}
	return b.String()
}
