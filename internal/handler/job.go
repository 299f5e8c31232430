package handler

import (
	"errors"
	"strconv"
	"strings"

	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	defaultJobListSize = 10
	maxJobListSize     = 50
)

func (h *Handler) converter() performance.Converter {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.WithError(err).Warn("Falling back to default settings")
		settings = h.settings.Defaults()
	}
	return performance.NewConverter(settings.MinutesPerAW)
}

func (h *Handler) addJob(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.send(chatID, usage(
			"/job WIP REG AW [green|amber|red] [notes]",
			"Example: /job 48213 AB12CDE 14.5 amber front pads",
		))
		return
	}

	in, err := service.ParseJobArgs(args)
	if err != nil {
		h.sendError(chatID, "Invalid job", err)
		return
	}

	job, err := h.jobs.AddJob(in)
	if err != nil {
		h.sendError(chatID, "Failed to save the job", err)
		return
	}

	h.send(chatID, "✅ Job logged\n\n"+h.jobs.FormatJob(job, h.converter()))
}

func (h *Handler) editJob(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	idArg, rest := splitCommand(args)
	if idArg == "" || rest == "" {
		h.send(chatID, usage("/editjob ID WIP REG AW [green|amber|red] [notes]"))
		return
	}

	id, err := parseID(idArg)
	if err != nil {
		h.sendError(chatID, "Invalid ID", err)
		return
	}
	in, err := service.ParseJobArgs(rest)
	if err != nil {
		h.sendError(chatID, "Invalid job", err)
		return
	}

	job, err := h.jobs.UpdateJob(id, in)
	if err != nil {
		h.sendError(chatID, "Failed to update the job", err)
		return
	}

	h.send(chatID, "✏️ Job updated\n\n"+h.jobs.FormatJob(job, h.converter()))
}

func (h *Handler) deleteJob(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	id, err := parseID(args)
	if err != nil {
		h.send(chatID, usage("/deljob ID"))
		return
	}

	if err := h.jobs.DeleteJob(id); err != nil {
		h.sendError(chatID, "Failed to delete the job", err)
		return
	}
	h.send(chatID, "🗑 Job #"+strconv.FormatUint(uint64(id), 10)+" deleted")
}

func (h *Handler) showJob(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	id, err := parseID(args)
	if err != nil {
		h.send(chatID, usage("/showjob ID"))
		return
	}

	job, err := h.jobs.GetJob(id)
	if errors.Is(err, service.ErrJobNotFound) {
		h.send(chatID, "❌ Job not found")
		return
	}
	if err != nil {
		h.sendError(chatID, "Failed to load the job", err)
		return
	}
	h.send(chatID, h.jobs.FormatJob(job, h.converter()))
}

func (h *Handler) listJobs(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	limit := defaultJobListSize
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			h.send(chatID, usage("/jobs [N]"))
			return
		}
		limit = min(n, maxJobListSize)
	}

	jobs, err := h.jobs.RecentJobs(limit)
	if err != nil {
		h.sendError(chatID, "Failed to load jobs", err)
		return
	}
	h.send(chatID, h.jobs.FormatJobList(jobs, h.converter()))
}
