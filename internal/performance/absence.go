package performance

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

type AbsenceType string

const (
	AbsenceHoliday  AbsenceType = "holiday"
	AbsenceSickness AbsenceType = "sickness"
	AbsenceTraining AbsenceType = "training"
)

func (t AbsenceType) Valid() bool {
	switch t {
	case AbsenceHoliday, AbsenceSickness, AbsenceTraining:
		return true
	}
	return false
}

// DeductionType selects the pool an absence's hours are subtracted from.
type DeductionType string

const (
	DeductAvailableHours DeductionType = "AVAILABLE_HOURS"
	DeductMonthlyTarget  DeductionType = "MONTHLY_TARGET"
)

func (t DeductionType) Valid() bool {
	return t == DeductAvailableHours || t == DeductMonthlyTarget
}

// Absence marks one calendar date. Exactly one of DaysCount and CustomHours is set.
type Absence struct {
	Date        string
	Type        AbsenceType
	DaysCount   *float64
	IsHalfDay   bool
	CustomHours *float64
	Deduction   DeductionType
	Note        string
}

func (a Absence) Validate() error {
	if _, err := ParseDate(a.Date); err != nil {
		return invalid("absenceDate", "%v", err)
	}
	if !a.Type.Valid() {
		return invalid("absenceType", "unknown type %q", a.Type)
	}
	if !a.Deduction.Valid() {
		return invalid("deductionType", "unknown type %q", a.Deduction)
	}
	if (a.DaysCount == nil) == (a.CustomHours == nil) {
		return invalid("duration", "exactly one of daysCount or customHours must be set")
	}
	if a.DaysCount != nil && (!(*a.DaysCount > 0) || math.IsInf(*a.DaysCount, 0)) {
		return invalid("daysCount", "must be positive, got %v", *a.DaysCount)
	}
	if a.CustomHours != nil && (!(*a.CustomHours > 0) || math.IsInf(*a.CustomHours, 0)) {
		return invalid("customHours", "must be positive, got %v", *a.CustomHours)
	}
	return nil
}

// IsFullDay reports whether the absence removes at least one whole day on its date.
func (a Absence) IsFullDay(s Schedule) bool {
	if a.CustomHours != nil {
		date, err := ParseDate(a.Date)
		return err == nil && *a.CustomHours >= HoursForDate(date, s)
	}
	return a.DaysCount != nil && !a.IsHalfDay && *a.DaysCount >= 1
}

// AbsenceHours returns the hours one absence deducts. CustomHours wins outright;
// otherwise daysCount × hours for that date × (0.5 when half day).
func AbsenceHours(a Absence, s Schedule) (float64, error) {
	hours, _, err := absenceHoursAndDays(a, s)
	return hours, err
}

func absenceHoursAndDays(a Absence, s Schedule) (float64, float64, error) {
	if err := a.Validate(); err != nil {
		return 0, 0, err
	}
	date, _ := ParseDate(a.Date)
	perDay := HoursForDate(date, s)

	if a.CustomHours != nil {
		return *a.CustomHours, *a.CustomHours / perDay, nil
	}

	days := *a.DaysCount
	if a.IsHalfDay {
		days *= 0.5
	}
	return days * perDay, days, nil
}

// Deductions is the Absence Ledger's output.
type Deductions struct {
	FromAvailable    float64
	FromTarget       float64
	TotalAbsenceDays float64
	Applied          int
	// Skipped counts records dropped because an earlier record had the same date.
	Skipped int
}

// Ledger classifies absences into the two deduction pools.
type Ledger struct {
	logger logrus.FieldLogger
}

func NewLedger(logger logrus.FieldLogger) *Ledger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Ledger{logger: logger}
}

// ApplyAbsences runs a Ledger backed by the standard logger.
func ApplyAbsences(absences []Absence, s Schedule) (Deductions, error) {
	return NewLedger(nil).Apply(absences, s)
}

// Apply sums absence hours per deduction pool. When several records share a
// date the first one in slice order is kept and the rest are skipped with a warning.
func (l *Ledger) Apply(absences []Absence, s Schedule) (Deductions, error) {
	if err := s.Validate(); err != nil {
		return Deductions{}, prefixField(err, "schedule")
	}

	var d Deductions
	seen := make(map[string]int, len(absences))
	for i, a := range absences {
		hours, days, err := absenceHoursAndDays(a, s)
		if err != nil {
			return Deductions{}, prefixField(err, fmt.Sprintf("absences[%d]", i))
		}

		date, _ := ParseDate(a.Date)
		key := DateKey(date)
		if first, dup := seen[key]; dup {
			l.logger.WithFields(logrus.Fields{
				"date":       key,
				"kept_index": first,
				"dup_index":  i,
			}).Warn("Duplicate absence for date, keeping the first record")
			d.Skipped++
			continue
		}
		seen[key] = i

		switch a.Deduction {
		case DeductAvailableHours:
			d.FromAvailable += hours
		case DeductMonthlyTarget:
			d.FromTarget += hours
		}
		d.TotalAbsenceDays += days
		d.Applied++
	}
	return d, nil
}
