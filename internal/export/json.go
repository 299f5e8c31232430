package export

import (
	"fmt"
	"io"
	"time"

	"aw-tracker-bot/internal/performance"

	"github.com/goccy/go-json"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Month      string        `json:"month"`
	Summary    jsonSummary   `json:"summary"`
	Jobs       []jsonJob     `json:"jobs"`
	Days       []jsonDay     `json:"days"`
	Absences   []jsonAbsence `json:"absences"`
}

type jsonSummary struct {
	JobCount                int      `json:"job_count"`
	TotalAW                 float64  `json:"total_aw"`
	SoldHours               float64  `json:"sold_hours"`
	AvailableHours          float64  `json:"available_hours"`
	EffectiveAvailableHours float64  `json:"effective_available_hours"`
	AbsenceHours            float64  `json:"absence_hours_available"`
	AbsenceHoursFromTarget  float64  `json:"absence_hours_target"`
	EfficiencyPercent       *int     `json:"efficiency_percent"`
	EfficiencyLabel         string   `json:"efficiency_label"`
	TargetHours             float64  `json:"target_hours"`
	AdjustedTargetHours     float64  `json:"adjusted_target_hours"`
	RemainingHours          float64  `json:"remaining_hours"`
	WorkingDays             int      `json:"working_days"`
	RequiredHoursPerDay     *float64 `json:"required_hours_per_day,omitempty"`
}

type jsonJob struct {
	ID         uint    `json:"id"`
	CreatedAt  string  `json:"created_at"`
	WIPNumber  string  `json:"wip_number"`
	VehicleReg string  `json:"vehicle_reg"`
	AW         float64 `json:"aw"`
	Hours      float64 `json:"hours"`
	VHC        string  `json:"vhc_status"`
	Notes      string  `json:"notes,omitempty"`
}

type jsonDay struct {
	Date  string  `json:"date"`
	Jobs  int     `json:"jobs"`
	AW    float64 `json:"aw"`
	Hours float64 `json:"hours"`
}

type jsonAbsence struct {
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	DaysCount   *float64 `json:"days_count,omitempty"`
	IsHalfDay   bool     `json:"is_half_day"`
	CustomHours *float64 `json:"custom_hours,omitempty"`
	Deduction   string   `json:"deduction_type"`
	Note        string   `json:"note,omitempty"`
}

func WriteJSON(w io.Writer, d Data) error {
	r := d.Report
	out := jsonExport{
		ExportedAt: d.GeneratedAt.UTC().Format(time.RFC3339),
		Month:      d.Month,
		Summary: jsonSummary{
			JobCount:                r.Jobs.Count,
			TotalAW:                 r.Jobs.TotalAW,
			SoldHours:               r.SoldHours,
			AvailableHours:          r.AvailableHours,
			EffectiveAvailableHours: r.EffectiveAvailableHours,
			AbsenceHours:            r.AbsenceHoursFromAvailable,
			AbsenceHoursFromTarget:  r.AbsenceHoursFromTarget,
			EfficiencyPercent:       r.EfficiencyPercent,
			EfficiencyLabel:         string(r.EfficiencyLabel),
			TargetHours:             r.TargetHours,
			AdjustedTargetHours:     r.AdjustedTargetHours,
			RemainingHours:          r.RemainingHours,
			WorkingDays:             r.WorkingDays,
			RequiredHoursPerDay:     r.RequiredHoursPerDay,
		},
		Jobs:     make([]jsonJob, 0, len(d.Jobs)),
		Days:     make([]jsonDay, 0, len(d.Days)),
		Absences: make([]jsonAbsence, 0, len(d.Absences)),
	}

	for _, j := range d.Jobs {
		out.Jobs = append(out.Jobs, jsonJob{
			ID:         j.ID,
			CreatedAt:  j.CreatedAt.Format(time.RFC3339),
			WIPNumber:  j.WIPNumber,
			VehicleReg: j.VehicleReg,
			AW:         j.AW,
			Hours:      performance.Round2(d.Converter.AWToHours(j.AW)),
			VHC:        string(j.VHC),
			Notes:      j.Notes,
		})
	}
	for _, day := range d.Days {
		out.Days = append(out.Days, jsonDay{
			Date:  day.Date,
			Jobs:  day.Totals.Count,
			AW:    day.Totals.TotalAW,
			Hours: day.Totals.TotalHours,
		})
	}
	for _, a := range d.Absences {
		out.Absences = append(out.Absences, jsonAbsence{
			Date:        a.Date,
			Type:        string(a.Type),
			DaysCount:   a.DaysCount,
			IsHalfDay:   a.IsHalfDay,
			CustomHours: a.CustomHours,
			Deduction:   string(a.Deduction),
			Note:        a.Note,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = w.Write(data)
	return err
}
