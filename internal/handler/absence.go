package handler

import (
	"errors"
	"fmt"
	"strings"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

var absenceUsage = usage(
	"/absence add DATE TYPE [full|half|2d|3.5h] [available|target] [note]",
	"/absence edit DATE NEWDATE TYPE [full|half|2d|3.5h] [available|target] [note]",
	"/absence delete DATE",
	"/absence list [month]",
	"TYPE is holiday, sickness or training. DATE is YYYY-MM-DD or DD.MM.YYYY.",
)

func (h *Handler) absenceCommand(message *tgbotapi.Message, args string) {
	sub, rest := splitCommand(args)
	switch sub {
	case "add":
		h.addAbsence(message.Chat.ID, rest)
	case "edit":
		h.editAbsence(message.Chat.ID, rest)
	case "delete", "del", "remove":
		h.deleteAbsence(message.Chat.ID, rest)
	case "list":
		h.listAbsences(message, rest)
	default:
		h.send(message.Chat.ID, absenceUsage)
	}
}

// quickAbsence serves /holiday, /sick and /training.
func (h *Handler) quickAbsence(message *tgbotapi.Message, command, args string) {
	kind := command
	if command == "sick" {
		kind = string(performance.AbsenceSickness)
	}

	date, rest := splitCommand(args)
	if date == "" {
		h.send(message.Chat.ID, usage(fmt.Sprintf("/%s DATE [full|half|2d|3.5h] [available|target] [note]", command)))
		return
	}
	h.addAbsence(message.Chat.ID, strings.TrimSpace(date+" "+kind+" "+rest))
}

// parseAbsence normalizes the leading date and parses the remaining fields.
func (h *Handler) parseAbsence(args string) (performance.Absence, error) {
	date, rest := splitCommand(args)
	key, err := normalizeDate(date, h.stats.Now())
	if err != nil {
		return performance.Absence{}, err
	}
	return service.ParseAbsenceArgs(key + " " + rest)
}

func (h *Handler) addAbsence(chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		h.send(chatID, absenceUsage)
		return
	}

	a, err := h.parseAbsence(args)
	if err != nil {
		h.sendError(chatID, "Invalid absence", err)
		return
	}

	row, err := h.absences.AddAbsence(a)
	if err != nil {
		h.sendAbsenceError(chatID, err)
		return
	}
	h.confirmAbsence(chatID, "✅ Absence saved", row)
}

func (h *Handler) editAbsence(chatID int64, args string) {
	date, rest := splitCommand(args)
	if date == "" || rest == "" {
		h.send(chatID, absenceUsage)
		return
	}

	key, err := normalizeDate(date, h.stats.Now())
	if err != nil {
		h.sendError(chatID, "Invalid date", err)
		return
	}
	a, err := h.parseAbsence(rest)
	if err != nil {
		h.sendError(chatID, "Invalid absence", err)
		return
	}

	row, err := h.absences.UpdateAbsence(key, a)
	if err != nil {
		h.sendAbsenceError(chatID, err)
		return
	}
	h.confirmAbsence(chatID, "✏️ Absence updated", row)
}

func (h *Handler) deleteAbsence(chatID int64, args string) {
	key, err := normalizeDate(args, h.stats.Now())
	if err != nil || strings.TrimSpace(args) == "" {
		h.send(chatID, usage("/absence delete DATE"))
		return
	}

	if err := h.absences.DeleteAbsence(key); err != nil {
		h.sendAbsenceError(chatID, err)
		return
	}
	h.send(chatID, "🗑 Absence on "+key+" deleted")
}

func (h *Handler) sendAbsenceError(chatID int64, err error) {
	switch {
	case errors.Is(err, service.ErrNotWorkingDay):
		h.send(chatID, "❌ Not a Working Day")
	case errors.Is(err, service.ErrAbsenceExists), errors.Is(err, service.ErrAbsenceNotFound):
		h.send(chatID, "❌ "+err.Error())
	default:
		h.sendError(chatID, "Failed to save the absence", err)
	}
}

func (h *Handler) confirmAbsence(chatID int64, title string, row *models.Absence) {
	sched, err := h.schedules.Get()
	if err != nil {
		h.sendError(chatID, "Failed to load the schedule", err)
		return
	}
	h.send(chatID, title+"\n\n"+service.FormatAbsenceList([]models.Absence{*row}, sched))
}

func (h *Handler) listAbsences(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	month, err := parseMonthArg(args, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return
	}

	rows, err := h.absences.ListMonth(month)
	if err != nil {
		h.sendError(chatID, "Failed to load absences", err)
		return
	}
	sched, err := h.schedules.Get()
	if err != nil {
		h.sendError(chatID, "Failed to load the schedule", err)
		return
	}
	h.send(chatID, "🗓 "+month.String()+"\n"+service.FormatAbsenceList(rows, sched))
}

func (h *Handler) checkWorkingDay(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	date, err := parseDateArg(args, h.stats.Now())
	if err != nil {
		h.sendError(chatID, "Invalid date", err)
		return
	}

	working, err := h.schedules.IsWorkingDay(date)
	if err != nil {
		h.sendError(chatID, "Failed to load the schedule", err)
		return
	}

	key := performance.DateKey(date)
	if working {
		h.send(chatID, fmt.Sprintf("✅ %s (%s) is a working day", key, date.Weekday()))
		return
	}
	h.send(chatID, fmt.Sprintf("🚫 %s (%s) is not a working day", key, date.Weekday()))
}

func (h *Handler) absenceStates(month performance.Month) (map[string]service.AbsenceState, error) {
	rows, err := h.absences.ListMonth(month)
	if err != nil {
		return nil, err
	}
	states := make(map[string]service.AbsenceState, len(rows))
	for _, row := range rows {
		states[row.Date] = service.AbsenceState(row.Type)
	}
	return states, nil
}

func (h *Handler) calendarMarkup(month performance.Month) (tgbotapi.InlineKeyboardMarkup, error) {
	sched, err := h.schedules.Get()
	if err != nil {
		return tgbotapi.InlineKeyboardMarkup{}, err
	}
	states, err := h.absenceStates(month)
	if err != nil {
		return tgbotapi.InlineKeyboardMarkup{}, err
	}
	return calendarKeyboard(month, sched, states), nil
}

func calendarText(month performance.Month) string {
	return fmt.Sprintf("🗓 Absences %s\nTap a working day: none → 🏖 holiday → 🤒 sickness → 📚 training → none", month)
}

func (h *Handler) showCalendar(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	month, err := parseMonthArg(args, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return
	}

	markup, err := h.calendarMarkup(month)
	if err != nil {
		h.sendError(chatID, "Failed to build the calendar", err)
		return
	}

	msg := tgbotapi.NewMessage(chatID, calendarText(month))
	msg.ReplyMarkup = markup
	if _, err := h.client.Bot.Send(msg); err != nil {
		h.logger.WithError(err).Error("Failed to send calendar")
	}
}

// showCalendarPage swaps the calendar message to another month.
func (h *Handler) showCalendarPage(callback *tgbotapi.CallbackQuery, value string) {
	month, err := performance.ParseMonth(value)
	if err != nil {
		h.answerCallback(callback.ID, "Invalid month")
		return
	}

	markup, err := h.calendarMarkup(month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build calendar page")
		h.answerCallback(callback.ID, "Failed to load the calendar")
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(callback.Message.Chat.ID, callback.Message.MessageID, calendarText(month), markup)
	if _, err := h.client.Bot.Send(edit); err != nil {
		h.logger.WithError(err).Warn("Failed to edit calendar")
	}
	h.answerCallback(callback.ID, "")
}

func (h *Handler) cycleAbsence(callback *tgbotapi.CallbackQuery, date string) {
	d, err := performance.ParseDate(date)
	if err != nil {
		h.answerCallback(callback.ID, "Invalid date")
		return
	}

	state, err := h.absences.CycleAbsence(date)
	if errors.Is(err, service.ErrNotWorkingDay) {
		h.answerCallback(callback.ID, "Not a Working Day")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("date", date).Error("Failed to cycle absence")
		h.answerCallback(callback.ID, "Failed to update the absence")
		return
	}

	h.logger.WithFields(logrus.Fields{"date": date, "state": state}).Debug("Calendar cell updated")

	markup, err := h.calendarMarkup(performance.MonthOf(d))
	if err == nil {
		edit := tgbotapi.NewEditMessageReplyMarkup(callback.Message.Chat.ID, callback.Message.MessageID, markup)
		if _, err := h.client.Bot.Send(edit); err != nil {
			h.logger.WithError(err).Warn("Failed to refresh calendar")
		}
	}
	h.answerCallback(callback.ID, fmt.Sprintf("%s: %s", date, state))
}
