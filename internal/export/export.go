package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"aw-tracker-bot/internal/performance"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatICS  Format = "ics"
)

var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX, FormatICS}

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Data is everything an export needs for one month.
type Data struct {
	Month       string
	Report      performance.PerformanceReport
	Converter   performance.Converter
	Jobs        []performance.Job
	Days        []performance.DayRow
	Absences    []performance.Absence
	Schedule    performance.Schedule
	GeneratedAt time.Time
}

func FileName(f Format, month string) string {
	return fmt.Sprintf("aw-%s.%s", month, f)
}

func Write(w io.Writer, f Format, d Data) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, d)
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatXLSX:
		return WriteXLSX(w, d)
	case FormatICS:
		return WriteICS(w, d)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func formatHours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
