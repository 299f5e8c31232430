package export

import (
	"fmt"
	"io"
	"strings"

	"aw-tracker-bot/internal/performance"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// absenceNamespace keeps event UIDs stable across exports of the same absence.
var absenceNamespace = uuid.MustParse("6f1c2a9e-3b7d-4f5e-9a21-8c4d0e7b6a13")

// WriteICS writes the month's absences as all-day calendar events.
func WriteICS(w io.Writer, d Data) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//aw-tracker-bot//absences//EN")
	cal.SetXWRCalName("Absences " + d.Month)

	for _, a := range d.Absences {
		date, err := performance.ParseDate(a.Date)
		if err != nil {
			return fmt.Errorf("absence %q: %w", a.Date, err)
		}

		uid := uuid.NewSHA1(absenceNamespace, []byte(a.Date+"/"+string(a.Type))).String()
		event := cal.AddEvent(uid + "@aw-tracker-bot")
		event.SetDtStampTime(d.GeneratedAt.UTC())
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(absenceSummary(a))

		hours, err := performance.AbsenceHours(a, d.Schedule)
		if err != nil {
			return fmt.Errorf("absence %q: %w", a.Date, err)
		}
		desc := fmt.Sprintf("%s h deducted from %s", formatHours(performance.Round2(hours)), deductionName(a.Deduction))
		if a.Note != "" {
			desc += "\n" + a.Note
		}
		event.SetDescription(desc)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func absenceSummary(a performance.Absence) string {
	name := string(a.Type)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	switch {
	case a.CustomHours != nil:
		return fmt.Sprintf("%s (%sh)", name, formatHours(*a.CustomHours))
	case a.IsHalfDay:
		return name + " (half day)"
	}
	return name
}

func deductionName(t performance.DeductionType) string {
	if t == performance.DeductMonthlyTarget {
		return "monthly target"
	}
	return "available hours"
}
