package performance

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Month is a calendar month in the technician's single timezone.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, invalid("month", "%q is not in YYYY-MM format", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Valid() bool {
	return m.Year >= 1 && m.Year <= 9999 && m.Month >= time.January && m.Month <= time.December
}

// First returns the first calendar day of the month as a UTC date.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last calendar day of the month as a UTC date.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// ParseDate parses an ISO "YYYY-MM-DD" string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not in YYYY-MM-DD format", s)
	}
	return t, nil
}

// DateOnly drops the clock part, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats the calendar date of t as seen in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
