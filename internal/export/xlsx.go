package export

import (
	"fmt"
	"io"

	"aw-tracker-bot/internal/performance"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Summary"
	sheetJobs    = "Jobs"
	sheetDays    = "Days"
)

// WriteXLSX writes a workbook with Summary, Jobs and Days sheets.
func WriteXLSX(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetSummary)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetJobs); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetDays); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummarySheet(f, d, headerStyle); err != nil {
		return err
	}
	if err := writeJobsSheet(f, d, headerStyle); err != nil {
		return err
	}
	if err := writeDaysSheet(f, d, headerStyle); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, d Data, headerStyle int) error {
	r := d.Report
	rows := [][]any{
		{"Month", d.Month},
		{"Jobs", r.Jobs.Count},
		{"Total AW", r.Jobs.TotalAW},
		{"Sold hours", r.SoldHours},
		{"Working days", r.WorkingDays},
		{"Available hours", r.AvailableHours},
		{"Absence hours (available)", r.AbsenceHoursFromAvailable},
		{"Effective available hours", r.EffectiveAvailableHours},
		{"Efficiency", performance.FormatEfficiency(r.EfficiencyPercent)},
		{"Rating", string(r.EfficiencyLabel)},
		{"Target hours", r.TargetHours},
		{"Absence hours (target)", r.AbsenceHoursFromTarget},
		{"Adjusted target hours", r.AdjustedTargetHours},
		{"Remaining hours", r.RemainingHours},
	}

	if err := f.SetCellValue(sheetSummary, "A1", "Metric"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "B1", "Value"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return err
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheetSummary, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeJobsSheet(f *excelize.File, d Data, headerStyle int) error {
	header := []any{"ID", "Date", "WIP", "Registration", "AW", "Hours", "VHC", "Notes"}
	if err := f.SetSheetRow(sheetJobs, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetJobs, "A1", colName(len(header)-1)+"1", headerStyle); err != nil {
		return err
	}

	for i, j := range d.Jobs {
		row := []any{
			j.ID,
			j.CreatedAt.Format("2006-01-02 15:04"),
			j.WIPNumber,
			j.VehicleReg,
			j.AW,
			performance.Round2(d.Converter.AWToHours(j.AW)),
			string(j.VHC),
			j.Notes,
		}
		if err := f.SetSheetRow(sheetJobs, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDaysSheet(f *excelize.File, d Data, headerStyle int) error {
	header := []any{"Date", "Jobs", "AW", "Hours"}
	if err := f.SetSheetRow(sheetDays, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDays, "A1", colName(len(header)-1)+"1", headerStyle); err != nil {
		return err
	}

	for i, day := range d.Days {
		row := []any{day.Date, day.Totals.Count, day.Totals.TotalAW, day.Totals.TotalHours}
		if err := f.SetSheetRow(sheetDays, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
