package handler

import (
	"strings"

	"aw-tracker-bot/internal/config"
	"aw-tracker-bot/internal/service"
	"aw-tracker-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const stateAwaitSaturdays = "await_saturdays"

type Handler struct {
	client     *telegram.Client
	jobs       *service.JobService
	absences   *service.AbsenceService
	schedules  *service.ScheduleService
	settings   *service.SettingsService
	stats      *service.StatsService
	exports    *service.ExportService
	userStates map[int64]string
	config     *config.BotConfig
	logger     *logrus.Logger
}

func NewHandler(
	client *telegram.Client,
	jobs *service.JobService,
	absences *service.AbsenceService,
	schedules *service.ScheduleService,
	settings *service.SettingsService,
	stats *service.StatsService,
	exports *service.ExportService,
	cfg *config.BotConfig,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		client:     client,
		jobs:       jobs,
		absences:   absences,
		schedules:  schedules,
		settings:   settings,
		stats:      stats,
		exports:    exports,
		userStates: make(map[int64]string),
		config:     cfg,
		logger:     logger,
	}
}

// HandleUpdates processes updates one at a time until the channel closes.
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) isOwner(chatID int64) bool {
	return chatID == h.config.OwnerChatID
}

func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	if !h.isOwner(chatID) {
		h.answerCallback(callback.ID, "Access denied")
		return
	}

	kind, value := parseCallback(callback.Data)
	switch kind {
	case callbackAbsence:
		h.cycleAbsence(callback, value)
		return
	case callbackCalendar:
		h.showCalendarPage(callback, value)
		return
	}

	h.answerCallback(callback.ID, "")
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	fields := logrus.Fields{"chat_id": chatID}
	if message.From != nil {
		fields["user"] = message.From.UserName
	}
	h.logger.WithFields(fields).Info(message.Text)

	if !h.isOwner(chatID) {
		h.logger.WithField("chat_id", chatID).Warn("Message from unknown chat ignored")
		h.send(chatID, "⛔ This bot is private.")
		return
	}

	if message.Document != nil {
		h.handleDocument(message)
		return
	}

	if message.IsCommand() {
		delete(h.userStates, chatID)
		h.handleCommand(message)
		return
	}

	if state, exists := h.userStates[chatID]; exists && state == stateAwaitSaturdays {
		h.send(chatID, "📎 Send the calendar as a .json document, or any command to cancel.")
		return
	}

	h.send(chatID, "🤔 I only understand commands. Use /help to see them.")
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *Handler) sendError(chatID int64, prefix string, err error) {
	h.logger.WithError(err).Warn(prefix)
	h.send(chatID, "❌ "+prefix+": "+err.Error())
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.client.Bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.WithError(err).Debug("Failed to answer callback")
	}
}

func usage(lines ...string) string {
	return "ℹ️ Usage:\n" + strings.Join(lines, "\n")
}
