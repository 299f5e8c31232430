package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"aw-tracker-bot/internal/performance"
)

// WriteCSV writes one row per job followed by a totals row.
func WriteCSV(w io.Writer, d Data) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Date", "Time", "WIP", "Registration", "AW", "Minutes", "Hours", "VHC", "Notes"}); err != nil {
		return err
	}

	for _, j := range d.Jobs {
		row := []string{
			strconv.FormatUint(uint64(j.ID), 10),
			performance.DateKey(j.CreatedAt),
			j.CreatedAt.Format("15:04"),
			j.WIPNumber,
			j.VehicleReg,
			strconv.FormatFloat(j.AW, 'f', -1, 64),
			formatHours(performance.Round2(d.Converter.AWToMinutes(j.AW))),
			formatHours(performance.Round2(d.Converter.AWToHours(j.AW))),
			string(j.VHC),
			j.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	totals := d.Report.Jobs
	if err := cw.Write([]string{
		"TOTAL", d.Month, "", fmt.Sprintf("%d jobs", totals.Count), "",
		strconv.FormatFloat(totals.TotalAW, 'f', -1, 64),
		formatHours(totals.TotalMinutes),
		formatHours(totals.TotalHours),
		"", "",
	}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
