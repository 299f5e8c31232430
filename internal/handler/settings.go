package handler

import (
	"fmt"
	"math"
	"strings"

	"aw-tracker-bot/internal/export"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) settingsCommand(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	key, value := splitCommand(args)

	switch {
	case key == "":
		settings, err := h.settings.Get()
		if err != nil {
			h.sendError(chatID, "Failed to load settings", err)
			return
		}
		h.send(chatID, service.FormatSettings(settings))
	case key == "reset":
		if err := h.settings.Reset(); err != nil {
			h.sendError(chatID, "Failed to reset settings", err)
			return
		}
		h.send(chatID, "♻️ Settings reset\n\n"+service.FormatSettings(h.settings.Defaults()))
	default:
		v, err := parseNumber(value)
		if err != nil {
			h.send(chatID, usage("/settings KEY VALUE", "Keys: "+strings.Join(service.SettingKeys, ", ")))
			return
		}
		settings, err := h.settings.Set(key, v)
		if err != nil {
			h.sendError(chatID, "Setting not changed", err)
			return
		}
		h.send(chatID, "✅ Saved\n\n"+service.FormatSettings(settings))
	}
}

func (h *Handler) setTarget(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	hoursArg, monthArg := splitCommand(args)
	hours, err := parseNumber(hoursArg)
	if err != nil {
		h.send(chatID, usage("/settarget HOURS [YYYY-MM]"))
		return
	}
	if hours < 0 || math.IsInf(hours, 0) || math.IsNaN(hours) {
		h.sendError(chatID, "Target not saved", performance.ValidationErrorFor("targetHours", "must not be negative, got %v", hours))
		return
	}

	month, err := parseMonthArg(monthArg, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return
	}

	if err := h.settings.SetTarget(month, hours); err != nil {
		h.sendError(chatID, "Target not saved", err)
		return
	}
	h.send(chatID, fmt.Sprintf("🎯 Target for %s set to %gh", month, hours))
}

func (h *Handler) clearTarget(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	month, err := parseMonthArg(args, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return
	}
	if err := h.settings.ClearTarget(month); err != nil {
		h.sendError(chatID, "Failed to clear the target", err)
		return
	}

	target, _, err := h.settings.TargetFor(month)
	if err != nil {
		h.sendError(chatID, "Failed to load the target", err)
		return
	}
	h.send(chatID, fmt.Sprintf("🎯 %s uses the default target again (%gh)", month, target))
}

func (h *Handler) listTargets(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	targets, err := h.settings.ListTargets()
	if err != nil {
		h.sendError(chatID, "Failed to load targets", err)
		return
	}
	if len(targets) == 0 {
		h.send(chatID, fmt.Sprintf("📭 No monthly overrides, every month uses %gh", h.defaultTarget()))
		return
	}

	var b strings.Builder
	b.WriteString("🎯 Monthly targets:\n\n")
	for _, t := range targets {
		fmt.Fprintf(&b, "%s: %gh\n", t.Month, t.TargetHours)
	}
	h.send(chatID, b.String())
}

func (h *Handler) defaultTarget() float64 {
	settings, err := h.settings.Get()
	if err != nil {
		return h.settings.Defaults().DefaultTargetHours
	}
	return settings.DefaultTargetHours
}

func (h *Handler) exportMonth(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	formatArg, monthArg := splitCommand(args)
	format, err := export.ParseFormat(formatArg)
	if err != nil {
		h.send(chatID, usage("/export csv|json|xlsx|ics [YYYY-MM]"))
		return
	}
	month, err := parseMonthArg(monthArg, h.stats.CurrentMonth())
	if err != nil {
		h.sendError(chatID, "Invalid month", err)
		return
	}

	name, data, err := h.exports.Export(format, month)
	if err != nil {
		h.sendError(chatID, "Export failed", err)
		return
	}

	if err := h.client.SendDocument(chatID, name, data, "📤 AW export "+month.String()); err != nil {
		h.sendError(chatID, "Failed to send the export", err)
	}
}
