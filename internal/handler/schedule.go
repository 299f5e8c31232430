package handler

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var scheduleUsage = usage(
	"/schedule - Show the schedule",
	"/schedule hours 8.5",
	"/schedule weekdays mon,tue,wed,thu,fri",
	"/schedule saturdays none|every|weekdays|1-in-2|1-in-3|1-in-4 [anchor Saturday]",
	"/schedule sathours 4 | /schedule sathours off",
	"/schedule custom 2024-03-16,2024-03-30",
	"/schedule reset",
)

func (h *Handler) scheduleCommand(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	sub, rest := splitCommand(args)

	var (
		sched performance.Schedule
		err   error
	)

	switch sub {
	case "", "show":
		sched, err = h.schedules.Get()
	case "hours":
		var hours float64
		if hours, err = parseNumber(rest); err == nil {
			sched, err = h.schedules.SetDailyHours(hours)
		}
	case "weekdays":
		var days []time.Weekday
		if days, err = service.ParseWeekdays(rest); err == nil {
			sched, err = h.schedules.SetWeekdays(days)
		}
	case "saturdays":
		sched, err = h.setSaturdayPolicy(rest)
	case "sathours":
		sched, err = h.setSaturdayHours(rest)
	case "custom":
		var dates []string
		if dates, err = h.parseSaturdays(rest); err == nil {
			sched, err = h.schedules.AddCustomSaturdays(dates)
		}
	case "reset":
		if err = h.schedules.Reset(); err == nil {
			sched, err = h.schedules.Get()
		}
	default:
		h.send(chatID, scheduleUsage)
		return
	}

	if err != nil {
		h.sendError(chatID, "Schedule not changed", err)
		return
	}
	h.send(chatID, service.FormatSchedule(sched, performance.MonthOf(h.stats.Now())))
}

func (h *Handler) setSaturdayPolicy(args string) (performance.Schedule, error) {
	name, anchorArg := splitCommand(args)
	policy := performance.SaturdayPolicy(name)
	if name == "weekdays" {
		policy = performance.SaturdayFromWeekdays
	}
	if name == "" || !policy.Valid() {
		return performance.Schedule{}, fmt.Errorf("unknown Saturday policy %q", name)
	}

	anchor := ""
	if anchorArg != "" {
		key, err := normalizeDate(anchorArg, h.stats.Now())
		if err != nil {
			return performance.Schedule{}, err
		}
		anchor = key
	}
	if policy.Interval() == 0 {
		anchor = ""
	}
	return h.schedules.SetSaturdayPolicy(policy, anchor)
}

func (h *Handler) setSaturdayHours(args string) (performance.Schedule, error) {
	if strings.EqualFold(strings.TrimSpace(args), "off") {
		return h.schedules.SetSaturdayHours(nil)
	}
	hours, err := parseNumber(args)
	if err != nil {
		return performance.Schedule{}, err
	}
	return h.schedules.SetSaturdayHours(&hours)
}

func (h *Handler) parseSaturdays(args string) ([]string, error) {
	fields := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no dates given")
	}

	dates := make([]string, 0, len(fields))
	for _, f := range fields {
		d, err := parseDateArg(f, h.stats.Now())
		if err != nil {
			return nil, err
		}
		if d.Weekday() != time.Saturday {
			return nil, fmt.Errorf("%s is a %s, not a Saturday", performance.DateKey(d), d.Weekday())
		}
		dates = append(dates, performance.DateKey(d))
	}
	return dates, nil
}

func (h *Handler) startSaturdayImport(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	h.userStates[chatID] = stateAwaitSaturdays
	h.send(chatID, `📎 Send the working-Saturday calendar as a .json document:

{"year": 2024, "months": [{"month": 3, "days": "16,30"}]}

Send any command to cancel.`)
}

func (h *Handler) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if h.userStates[chatID] != stateAwaitSaturdays {
		h.send(chatID, "📎 To import working Saturdays, send /loadsaturdays first.")
		return
	}

	doc := message.Document
	if !strings.EqualFold(filepath.Ext(doc.FileName), ".json") {
		h.send(chatID, "❌ The calendar must be a .json file.")
		return
	}

	data, err := h.client.DownloadFile(doc.FileID, doc.FileSize)
	if err != nil {
		h.sendError(chatID, "Failed to download the file", err)
		return
	}

	n, err := h.schedules.LoadSaturdaysJSON(data)
	if err != nil {
		h.sendError(chatID, "Calendar not imported", err)
		return
	}

	delete(h.userStates, chatID)
	h.send(chatID, fmt.Sprintf("✅ Imported %d working Saturdays. The Saturday policy is now custom-dates.", n))
}
