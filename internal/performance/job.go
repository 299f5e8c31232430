package performance

import (
	"math"
	"sort"
	"strings"
	"time"
)

// VHCStatus is the Vehicle Health Check tag on a job. Informational only.
type VHCStatus string

const (
	VHCNone  VHCStatus = "NONE"
	VHCGreen VHCStatus = "GREEN"
	VHCAmber VHCStatus = "AMBER"
	VHCRed   VHCStatus = "RED"
)

var VHCStatuses = []VHCStatus{VHCNone, VHCGreen, VHCAmber, VHCRed}

// ParseVHC accepts the status names case-insensitively; ORANGE is an alias of AMBER
// and an empty string means NONE.
func ParseVHC(s string) (VHCStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return VHCNone, nil
	case "GREEN":
		return VHCGreen, nil
	case "AMBER", "ORANGE":
		return VHCAmber, nil
	case "RED":
		return VHCRed, nil
	}
	return "", invalid("vhcStatus", "unknown status %q", s)
}

// Job is one billed unit of work. CreatedAt decides the day it is attributed to,
// read in CreatedAt's own location.
type Job struct {
	ID         uint
	WIPNumber  string
	VehicleReg string
	AW         float64
	Notes      string
	VHC        VHCStatus
	CreatedAt  time.Time
}

func (j Job) Validate() error {
	if math.IsNaN(j.AW) || math.IsInf(j.AW, 0) || j.AW < 0 {
		return invalid("aw", "must be a non-negative number, got %v", j.AW)
	}
	return nil
}

// Totals is the aggregate of a job set. Minutes and hours derive from the summed AW.
type Totals struct {
	Count        int
	TotalAW      float64
	TotalMinutes float64
	TotalHours   float64
}

// Rounded returns a copy with every float rounded for display.
func (t Totals) Rounded() Totals {
	return Totals{
		Count:        t.Count,
		TotalAW:      Round2(t.TotalAW),
		TotalMinutes: Round2(t.TotalMinutes),
		TotalHours:   Round2(t.TotalHours),
	}
}

func (c Converter) totals(count int, aw float64) Totals {
	return Totals{
		Count:        count,
		TotalAW:      aw,
		TotalMinutes: c.AWToMinutes(aw),
		TotalHours:   c.AWToHours(aw),
	}
}

// Aggregate sums a job set. An empty set gives all-zero totals.
func (c Converter) Aggregate(jobs []Job) Totals {
	var aw float64
	for _, j := range jobs {
		aw += j.AW
	}
	return c.totals(len(jobs), aw)
}

// ByDay groups jobs by the ISO date of CreatedAt.
func (c Converter) ByDay(jobs []Job) map[string]Totals {
	return groupBy(c, jobs, func(j Job) string { return DateKey(j.CreatedAt) })
}

// ByWeek groups jobs by weekFn(CreatedAt); a nil weekFn means WeekOfMonth.
func (c Converter) ByWeek(jobs []Job, weekFn func(time.Time) int) map[int]Totals {
	if weekFn == nil {
		weekFn = WeekOfMonth
	}
	return groupBy(c, jobs, func(j Job) int { return weekFn(j.CreatedAt) })
}

func groupBy[K comparable](c Converter, jobs []Job, key func(Job) K) map[K]Totals {
	counts := make(map[K]int)
	sums := make(map[K]float64)
	for _, j := range jobs {
		k := key(j)
		counts[k]++
		sums[k] += j.AW
	}
	out := make(map[K]Totals, len(counts))
	for k, n := range counts {
		out[k] = c.totals(n, sums[k])
	}
	return out
}

// WeekOfMonth is ceil((dayOfMonth + weekday of the 1st) / 7) with Sunday = 0.
// This is a month-relative bucket, not an ISO week number.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return (t.Day() + int(first.Weekday()) + 6) / 7
}

// CountVHC counts jobs per VHC status; every status is present in the result.
func CountVHC(jobs []Job) map[VHCStatus]int {
	out := make(map[VHCStatus]int, len(VHCStatuses))
	for _, s := range VHCStatuses {
		out[s] = 0
	}
	for _, j := range jobs {
		status := j.VHC
		if status == "" {
			status = VHCNone
		}
		out[status]++
	}
	return out
}

func SortedDays(m map[string]Totals) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func SortedWeeks(m map[int]Totals) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// JobsBetween keeps the jobs whose CreatedAt date falls in [from, to].
func JobsBetween(jobs []Job, from, to time.Time) []Job {
	from, to = DateOnly(from), DateOnly(to)
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if inRange(DateOnly(j.CreatedAt), from, to) {
			out = append(out, j)
		}
	}
	return out
}
