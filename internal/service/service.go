package service

import (
	"errors"
	"time"

	"aw-tracker-bot/internal/performance"

	"github.com/sirupsen/logrus"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrAbsenceExists   = errors.New("an absence is already recorded for this date")
	ErrAbsenceNotFound = errors.New("no absence recorded for this date")
	// ErrNotWorkingDay keeps the wording shown to the technician.
	ErrNotWorkingDay = errors.New("Not a Working Day")
)

// Clock returns the current time; tests replace it with a fixed instant.
type Clock func() time.Time

func newServiceLogger(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// monthBounds returns the half-open instant range [start, end) of a month in loc.
func monthBounds(m performance.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// dayBounds returns [from 00:00, to+1 00:00) in loc for two calendar dates.
func dayBounds(from, to time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return start, end
}

// WeekOf returns Monday and Sunday of the week containing date.
func WeekOf(date time.Time) (time.Time, time.Time) {
	offset := (int(date.Weekday()) + 6) % 7
	monday := time.Date(date.Year(), date.Month(), date.Day()-offset, 0, 0, 0, 0, date.Location())
	return monday, monday.AddDate(0, 0, 6)
}
