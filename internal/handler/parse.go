package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data is "<kind>:<value>".
const (
	callbackAbsence  = "abs"
	callbackCalendar = "cal"
	callbackNoop     = "noop"
)

func parseCallback(data string) (kind, value string) {
	kind, value, _ = strings.Cut(data, ":")
	return kind, value
}

// parseMonthArg accepts an empty string (current month), prev, next or YYYY-MM.
func parseMonthArg(arg string, current performance.Month) (performance.Month, error) {
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(arg) {
	case "", "this", "current":
		return current, nil
	case "prev", "last":
		return current.Prev(), nil
	case "next":
		return current.Next(), nil
	}
	return performance.ParseMonth(arg)
}

// parseDateArg accepts YYYY-MM-DD, DD.MM.YYYY, DD.MM, today and yesterday.
// The result is midnight in today's location.
func parseDateArg(arg string, today time.Time) (time.Time, error) {
	arg = strings.TrimSpace(arg)
	loc := today.Location()
	midnight := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, loc) }

	switch strings.ToLower(arg) {
	case "", "today":
		return midnight(today.Year(), today.Month(), today.Day()), nil
	case "yesterday":
		return midnight(today.Year(), today.Month(), today.Day()-1), nil
	}

	if d, err := performance.ParseDate(arg); err == nil {
		return midnight(d.Year(), d.Month(), d.Day()), nil
	}
	for _, layout := range []string{"02.01.2006", "2.1.2006"} {
		if d, err := time.Parse(layout, arg); err == nil {
			return midnight(d.Year(), d.Month(), d.Day()), nil
		}
	}
	for _, layout := range []string{"02.01", "2.1"} {
		if d, err := time.Parse(layout, arg); err == nil {
			return midnight(today.Year(), d.Month(), d.Day()), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot read date %q, use YYYY-MM-DD or DD.MM.YYYY", arg)
}

// normalizeDate rewrites a date argument as YYYY-MM-DD.
func normalizeDate(arg string, today time.Time) (string, error) {
	d, err := parseDateArg(arg, today)
	if err != nil {
		return "", err
	}
	return performance.DateKey(d), nil
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%q is not a job ID", arg)
	}
	return uint(id), nil
}

func parseNumber(arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSuffix(strings.TrimSpace(arg), "h"), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", arg)
	}
	return v, nil
}

// splitCommand returns the first word of args and the rest.
func splitCommand(args string) (string, string) {
	args = strings.TrimSpace(args)
	head, rest, _ := strings.Cut(args, " ")
	return strings.ToLower(head), strings.TrimSpace(rest)
}

var stateIcons = map[service.AbsenceState]string{
	service.StateHoliday:  "🏖",
	service.StateSickness: "🤒",
	service.StateTraining: "📚",
}

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// calendarKeyboard lays the month out Monday first. Working days carry an
// absence callback; other cells are inert.
func calendarKeyboard(month performance.Month, sched performance.Schedule, states map[string]service.AbsenceState) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀", callbackCalendar+":"+month.Prev().String()),
			tgbotapi.NewInlineKeyboardButtonData(month.First().Format("January 2006"), callbackNoop),
			tgbotapi.NewInlineKeyboardButtonData("▶", callbackCalendar+":"+month.Next().String()),
		),
	}

	header := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for _, name := range weekdayHeader {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(name, callbackNoop))
	}
	rows = append(rows, header)

	blank := tgbotapi.NewInlineKeyboardButtonData(" ", callbackNoop)
	first := month.First()
	week := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for i := 0; i < (int(first.Weekday())+6)%7; i++ {
		week = append(week, blank)
	}

	for d := first; d.Month() == month.Month; d = d.AddDate(0, 0, 1) {
		week = append(week, dayButton(d, sched, states))
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, blank)
		}
		rows = append(rows, week)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func dayButton(d time.Time, sched performance.Schedule, states map[string]service.AbsenceState) tgbotapi.InlineKeyboardButton {
	key := performance.DateKey(d)
	icon, marked := stateIcons[states[key]]
	// A non-working date stays tappable while it still carries an absence so it can be cleared.
	if !marked && !performance.IsWorkingDay(d, sched) {
		return tgbotapi.NewInlineKeyboardButtonData("·", callbackNoop)
	}

	label := strconv.Itoa(d.Day())
	if marked {
		label = icon + label
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, callbackAbsence+":"+key)
}
