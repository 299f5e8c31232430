package saturdays

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// CalendarJSON is the working-Saturday calendar file:
//
//	{"year": 2024, "months": [{"month": 3, "days": "2,16,30"}]}
//
// Day entries may carry a trailing "+" or "*" marker, which is ignored.
type CalendarJSON struct {
	Year   int              `json:"year"`
	Months []MonthSaturdays `json:"months"`
}

type MonthSaturdays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Parse returns the working Saturdays as sorted, de-duplicated YYYY-MM-DD dates.
func Parse(data []byte) ([]string, error) {
	var cal CalendarJSON
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if cal.Year < 1 || cal.Year > 9999 {
		return nil, fmt.Errorf("invalid year %d", cal.Year)
	}

	seen := map[string]bool{}
	dates := []string{}
	for _, m := range cal.Months {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", m.Month)
		}
		for _, dayStr := range strings.Split(m.Days, ",") {
			dayStr = strings.TrimSpace(dayStr)
			dayStr = strings.TrimSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(dayStr, "*")
			if dayStr == "" {
				continue
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w", dayStr, m.Month, err)
			}

			date := time.Date(cal.Year, time.Month(m.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Month() != time.Month(m.Month) {
				return nil, fmt.Errorf("day %d does not exist in %04d-%02d", day, cal.Year, m.Month)
			}
			if date.Weekday() != time.Saturday {
				return nil, fmt.Errorf("%s is a %s, not a Saturday", date.Format("2006-01-02"), date.Weekday())
			}

			key := date.Format("2006-01-02")
			if !seen[key] {
				seen[key] = true
				dates = append(dates, key)
			}
		}
	}

	sort.Strings(dates)
	return dates, nil
}

func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return Parse(data)
}

// Merge unions two date lists and returns them sorted.
func Merge(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, d := range list {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ForMonth filters dates to a single month.
func ForMonth(dates []string, year int, month time.Month) []string {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := []string{}
	for _, d := range dates {
		if strings.HasPrefix(d, prefix) {
			out = append(out, d)
		}
	}
	return out
}
