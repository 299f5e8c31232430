package performance

import (
	"math"
	"slices"
	"time"
)

// DefaultDailyWorkingHours applies when the technician has not configured a schedule.
const DefaultDailyWorkingHours = 8.5

// SaturdayPolicy decides whether a given Saturday is a working day.
type SaturdayPolicy string

const (
	// SaturdayFromWeekdays means no policy is set: Saturday follows WorkingWeekdays.
	SaturdayFromWeekdays SaturdayPolicy = ""
	SaturdayNone         SaturdayPolicy = "none"
	SaturdayEvery        SaturdayPolicy = "every"
	SaturdayOneInTwo     SaturdayPolicy = "1-in-2"
	SaturdayOneInThree   SaturdayPolicy = "1-in-3"
	SaturdayOneInFour    SaturdayPolicy = "1-in-4"
	SaturdayCustomDates  SaturdayPolicy = "custom-dates"
)

var SaturdayPolicies = []SaturdayPolicy{
	SaturdayNone,
	SaturdayEvery,
	SaturdayOneInTwo,
	SaturdayOneInThree,
	SaturdayOneInFour,
	SaturdayCustomDates,
}

// Interval returns N for a 1-in-N policy and 0 otherwise.
func (p SaturdayPolicy) Interval() int {
	switch p {
	case SaturdayOneInTwo:
		return 2
	case SaturdayOneInThree:
		return 3
	case SaturdayOneInFour:
		return 4
	}
	return 0
}

func (p SaturdayPolicy) Valid() bool {
	return p == SaturdayFromWeekdays || slices.Contains(SaturdayPolicies, p)
}

// Schedule is the technician's working pattern. It is passed by value into
// every calculation instead of being looked up globally.
type Schedule struct {
	DailyWorkingHours float64
	WorkingWeekdays   []time.Weekday
	SaturdayPolicy    SaturdayPolicy
	// NextWorkingSaturday anchors 1-in-N policies; the anchor week is week 0 and always works.
	NextWorkingSaturday string
	CustomSaturdays     []string
	// SaturdayHours overrides DailyWorkingHours on working Saturdays when set.
	SaturdayHours *float64
}

func DefaultSchedule() Schedule {
	return Schedule{
		DailyWorkingHours: DefaultDailyWorkingHours,
		WorkingWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

func (s Schedule) Validate() error {
	if !(s.DailyWorkingHours > 0) || math.IsInf(s.DailyWorkingHours, 0) {
		return invalid("dailyWorkingHours", "must be a positive number of hours, got %v", s.DailyWorkingHours)
	}
	if len(s.WorkingWeekdays) == 0 {
		return invalid("workingWeekdays", "at least one weekday must be selected")
	}
	for _, wd := range s.WorkingWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return invalid("workingWeekdays", "weekday %d is outside 0..6", int(wd))
		}
	}
	if !s.SaturdayPolicy.Valid() {
		return invalid("saturdayPolicy", "unknown policy %q", s.SaturdayPolicy)
	}
	if s.SaturdayPolicy.Interval() > 0 {
		if s.NextWorkingSaturday == "" {
			return invalid("nextWorkingSaturday", "required for policy %q", s.SaturdayPolicy)
		}
		if _, err := ParseDate(s.NextWorkingSaturday); err != nil {
			return invalid("nextWorkingSaturday", "%v", err)
		}
	}
	for _, d := range s.CustomSaturdays {
		if _, err := ParseDate(d); err != nil {
			return invalid("customSaturdays", "%v", err)
		}
	}
	if s.SaturdayHours != nil && (!(*s.SaturdayHours > 0) || math.IsInf(*s.SaturdayHours, 0)) {
		return invalid("saturdayHours", "must be a positive number of hours, got %v", *s.SaturdayHours)
	}
	return nil
}

func (s Schedule) hasWeekday(wd time.Weekday) bool {
	return slices.Contains(s.WorkingWeekdays, wd)
}

// IsWorkingDay reports whether the calendar date counts as a working day.
// Sunday never does, whatever the configuration says.
func IsWorkingDay(date time.Time, s Schedule) bool {
	switch wd := date.Weekday(); wd {
	case time.Sunday:
		return false
	case time.Saturday:
		return saturdayWorks(date, s)
	default:
		return s.hasWeekday(wd)
	}
}

func saturdayWorks(date time.Time, s Schedule) bool {
	switch s.SaturdayPolicy {
	case SaturdayFromWeekdays:
		return s.hasWeekday(time.Saturday)
	case SaturdayNone:
		return false
	case SaturdayEvery:
		return true
	case SaturdayCustomDates:
		return slices.Contains(s.CustomSaturdays, DateKey(date))
	}

	n := s.SaturdayPolicy.Interval()
	if n == 0 {
		return false
	}
	anchor, err := ParseDate(s.NextWorkingSaturday)
	if err != nil {
		return false
	}
	weeks := floorDiv(daysBetween(anchor, date), 7)
	return weeks%n == 0
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// HoursForDate returns the working hours that one full day on date is worth.
func HoursForDate(date time.Time, s Schedule) float64 {
	if s.SaturdayHours != nil && date.Weekday() == time.Saturday && IsWorkingDay(date, s) {
		return *s.SaturdayHours
	}
	return s.DailyWorkingHours
}

// WorkingDaysInMonth lists the working days of a month in ascending order.
// An out-of-range year or month yields an empty list.
func WorkingDaysInMonth(year int, month time.Month, s Schedule) []time.Time {
	m := Month{Year: year, Month: month}
	if !m.Valid() {
		return []time.Time{}
	}
	return WorkingDaysBetween(m.First(), m.Last(), s)
}

// WorkingDaysBetween lists the working days in [from, to], both inclusive.
func WorkingDaysBetween(from, to time.Time, s Schedule) []time.Time {
	days := []time.Time{}
	for d := DateOnly(from); !d.After(DateOnly(to)); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, s) {
			days = append(days, d)
		}
	}
	return days
}

// AvailableHours is the raw hours base for a list of working days:
// weekdays at DailyWorkingHours, Saturdays at SaturdayHours when configured.
func AvailableHours(days []time.Time, s Schedule) float64 {
	var weekdays, saturdays int
	for _, d := range days {
		if d.Weekday() == time.Saturday {
			saturdays++
		} else {
			weekdays++
		}
	}
	satHours := s.DailyWorkingHours
	if s.SaturdayHours != nil {
		satHours = *s.SaturdayHours
	}
	return float64(weekdays)*s.DailyWorkingHours + float64(saturdays)*satHours
}
