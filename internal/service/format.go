package service

import (
	"fmt"
	"strings"

	"aw-tracker-bot/internal/performance"
)

var colorIcons = map[performance.Color]string{
	performance.ColorGreen: "🟢",
	performance.ColorAmber: "🟠",
	performance.ColorRed:   "🔴",
	performance.ColorGrey:  "⚪",
}

// progressBar renders percent (0..100) as ten blocks.
func progressBar(percent float64) string {
	filled := performance.RoundInt(percent / 10)
	filled = max(0, min(filled, 10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func remainingLine(display, exceeded float64) string {
	if exceeded > 0 {
		return fmt.Sprintf("🏁 Target exceeded by %.2fh", exceeded)
	}
	return fmt.Sprintf("⏳ Remaining: %.2fh", display)
}

func FormatDashboard(d performance.DashboardSummary) string {
	return fmt.Sprintf(
		`📊 Dashboard %s

💷 Sold hours: %.2fh (%d jobs, %g AW)
🕒 Available hours: %.2fh
%s Efficiency: %s (%s)
🎯 Target: %.2fh
%s
%s %.0f%%`,
		d.Period,
		d.SoldHours, d.JobCount, d.TotalAW,
		d.EffectiveAvailableHours,
		colorIcons[d.EfficiencyColor], d.EfficiencyText, d.EfficiencyLabel,
		d.AdjustedTargetHours,
		remainingLine(d.RemainingDisplay, d.ExceededBy),
		progressBar(d.ProgressPercent), d.ProgressPercent,
	)
}

func FormatTargetDetails(d performance.TargetDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Target %s\n\n", d.Period)
	fmt.Fprintf(&b, "Monthly target: %.2fh\n", d.TargetHours)
	if d.AbsenceHoursFromTarget > 0 {
		fmt.Fprintf(&b, "Absences off target: -%.2fh\n", d.AbsenceHoursFromTarget)
	}
	fmt.Fprintf(&b, "Adjusted target: %.2fh\n", d.AdjustedTargetHours)
	fmt.Fprintf(&b, "Sold so far: %.2fh\n", d.SoldHours)
	b.WriteString(remainingLine(d.RemainingDisplay, d.ExceededBy) + "\n")
	if d.PercentComplete != nil {
		fmt.Fprintf(&b, "Complete: %.2f%%\n", *d.PercentComplete)
	}
	fmt.Fprintf(&b, "%s %.0f%%\n", progressBar(d.ProgressPercent), d.ProgressPercent)
	if d.RequiredHoursPerDay != nil {
		fmt.Fprintf(&b, "\n📆 %d working days left, %.2fh per day needed", d.RemainingWorkingDays, *d.RequiredHoursPerDay)
		if d.RequiredAWPerDay != nil {
			fmt.Fprintf(&b, " (%.0f AW)", *d.RequiredAWPerDay)
		}
	}
	return b.String()
}

func FormatEfficiencyDetails(d performance.EfficiencyDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Efficiency %s: %s (%s)\n\n", colorIcons[d.EfficiencyColor], d.Period, d.EfficiencyText, d.EfficiencyLabel)
	fmt.Fprintf(&b, "Sold hours: %.2fh\n", d.SoldHours)
	fmt.Fprintf(&b, "Working days: %d\n", d.WorkingDays)
	fmt.Fprintf(&b, "Available hours: %.2fh\n", d.AvailableHours)
	if d.AbsenceHoursFromAvailable > 0 {
		fmt.Fprintf(&b, "Absences: -%.2fh\n", d.AbsenceHoursFromAvailable)
	}
	fmt.Fprintf(&b, "Effective available: %.2fh\n", d.EffectiveAvailableHours)
	if len(d.Weeks) > 0 {
		b.WriteString("\nBy week:\n")
		for _, w := range d.Weeks {
			fmt.Fprintf(&b, "  Week %d: %.2fh (%d jobs)\n", w.Week, w.Totals.TotalHours, w.Totals.Count)
		}
	}
	return b.String()
}

func FormatTimeLogged(d performance.TimeLoggedDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏱ Time logged %s\n\n", d.Period)
	fmt.Fprintf(&b, "Total: %g AW = %.2f min = %.2fh\n", d.TotalAW, d.TotalMinutes, d.TotalHours)
	if len(d.Days) > 0 {
		b.WriteString("\nBy day:\n")
		for _, row := range d.Days {
			fmt.Fprintf(&b, "  %s: %g AW, %.2fh\n", row.Date, row.Totals.TotalAW, row.Totals.TotalHours)
		}
	}
	return b.String()
}

func FormatJobsDone(d performance.JobsDoneDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔧 Jobs done %s\n\n", d.Period)
	fmt.Fprintf(&b, "Jobs: %d\nTotal AW: %g\nHours: %.2fh\n", d.Count, d.TotalAW, d.TotalHours)
	b.WriteString("\nVHC: ")
	parts := make([]string, 0, len(performance.VHCStatuses))
	for _, status := range performance.VHCStatuses {
		parts = append(parts, fmt.Sprintf("%s %d", vhcIcons[status], d.VHC[status]))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")
	if len(d.Days) > 0 {
		b.WriteString("\nBy day:\n")
		for _, row := range d.Days {
			fmt.Fprintf(&b, "  %s: %d jobs, %.2fh\n", row.Date, row.Totals.Count, row.Totals.TotalHours)
		}
	}
	return b.String()
}

func FormatPeriodDetails(title string, d performance.PeriodDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s %s\n\n", title, d.Period)
	fmt.Fprintf(&b, "Jobs: %d (%g AW)\n", d.JobCount, d.TotalAW)
	fmt.Fprintf(&b, "Sold hours: %.2fh\n", d.SoldHours)
	fmt.Fprintf(&b, "Working days: %d\n", d.WorkingDays)
	if d.AbsenceHours > 0 {
		fmt.Fprintf(&b, "Absences: -%.2fh\n", d.AbsenceHours)
	}
	fmt.Fprintf(&b, "Available hours: %.2fh\n", d.EffectiveAvailableHours)
	fmt.Fprintf(&b, "%s Efficiency: %s (%s)\n", colorIcons[d.EfficiencyColor], d.EfficiencyText, d.EfficiencyLabel)
	if len(d.Days) > 1 {
		b.WriteString("\nBy day:\n")
		for _, row := range d.Days {
			fmt.Fprintf(&b, "  %s: %.2fh\n", row.Date, row.Totals.TotalHours)
		}
	}
	return b.String()
}
