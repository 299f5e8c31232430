package handler

import (
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) monthStats(chatID int64, args string) (*service.MonthStats, bool) {
	month, err := parseMonthArg(args, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return nil, false
	}

	ms, err := h.stats.Month(month)
	if err != nil {
		h.sendError(chatID, "Failed to compute the report", err)
		return nil, false
	}
	return ms, true
}

func (h *Handler) showDashboard(message *tgbotapi.Message, args string) {
	ms, ok := h.monthStats(message.Chat.ID, args)
	if !ok {
		return
	}
	h.send(message.Chat.ID, service.FormatDashboard(performance.AssembleDashboard(ms.Report)))
}

func (h *Handler) showTarget(message *tgbotapi.Message, args string) {
	ms, ok := h.monthStats(message.Chat.ID, args)
	if !ok {
		return
	}
	h.send(message.Chat.ID, service.FormatTargetDetails(performance.AssembleTargetDetails(ms.Report)))
}

func (h *Handler) showEfficiency(message *tgbotapi.Message, args string) {
	ms, ok := h.monthStats(message.Chat.ID, args)
	if !ok {
		return
	}
	h.send(message.Chat.ID, service.FormatEfficiencyDetails(performance.AssembleEfficiencyDetails(ms.Report, ms.ByWeek())))
}

func (h *Handler) showTimeLogged(message *tgbotapi.Message, args string) {
	ms, ok := h.monthStats(message.Chat.ID, args)
	if !ok {
		return
	}
	h.send(message.Chat.ID, service.FormatTimeLogged(performance.AssembleTimeLogged(ms.Report, ms.ByDay())))
}

func (h *Handler) showJobsDone(message *tgbotapi.Message, args string) {
	ms, ok := h.monthStats(message.Chat.ID, args)
	if !ok {
		return
	}
	details := performance.AssembleJobsDone(ms.Report, ms.ByDay(), performance.CountVHC(ms.Jobs))
	h.send(message.Chat.ID, service.FormatJobsDone(details))
}

func (h *Handler) showWeek(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	date, err := parseDateArg(args, h.stats.Now())
	if err != nil {
		h.sendError(chatID, "Invalid date", err)
		return
	}

	ps, err := h.stats.Week(date)
	if err != nil {
		h.sendError(chatID, "Failed to compute the week", err)
		return
	}
	details := performance.AssemblePeriodDetails(ps.Report, ps.Converter.ByDay(ps.Jobs))
	h.send(chatID, service.FormatPeriodDetails("Week", details))
}

func (h *Handler) showToday(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	ps, err := h.stats.Today()
	if err != nil {
		h.sendError(chatID, "Failed to compute today", err)
		return
	}
	details := performance.AssemblePeriodDetails(ps.Report, ps.Converter.ByDay(ps.Jobs))
	text := service.FormatPeriodDetails("Today", details)

	jobs, err := h.jobs.TodayJobs()
	if err == nil && len(jobs) > 0 {
		text += "\n" + h.jobs.FormatJobList(jobs, ps.Converter)
	}
	h.send(chatID, text)
}
