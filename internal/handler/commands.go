package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)

	// Performance screens
	case "dashboard", "stats":
		h.showDashboard(message, args)
	case "target":
		h.showTarget(message, args)
	case "efficiency":
		h.showEfficiency(message, args)
	case "time":
		h.showTimeLogged(message, args)
	case "jobsdone":
		h.showJobsDone(message, args)
	case "week":
		h.showWeek(message, args)
	case "today":
		h.showToday(message)

	// Jobs
	case "job", "addjob":
		h.addJob(message, args)
	case "editjob":
		h.editJob(message, args)
	case "deljob":
		h.deleteJob(message, args)
	case "showjob":
		h.showJob(message, args)
	case "jobs":
		h.listJobs(message, args)

	// Absences
	case "absence":
		h.absenceCommand(message, args)
	case "holiday", "sick", "training":
		h.quickAbsence(message, command, args)
	case "absences":
		h.listAbsences(message, args)
	case "calendar":
		h.showCalendar(message, args)
	case "checkday":
		h.checkWorkingDay(message, args)

	// Schedule and settings
	case "schedule":
		h.scheduleCommand(message, args)
	case "loadsaturdays":
		h.startSaturdayImport(message)
	case "settings", "formula":
		h.settingsCommand(message, args)
	case "settarget":
		h.setTarget(message, args)
	case "cleartarget":
		h.clearTarget(message, args)
	case "targets":
		h.listTargets(message)

	case "export":
		h.exportMonth(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.send(message.Chat.ID, "❌ Unknown command. Use /help to see the list.")
}

const helpText = `🔧 AW tracker

📊 Performance (month defaults to the current one, format YYYY-MM):
/dashboard [month] - Sold hours, efficiency, target progress
/target [month] - Target breakdown and pace
/efficiency [month] - Efficiency with weekly split
/time [month] - AW, minutes and hours by day
/jobsdone [month] - Job counts by day and VHC
/week [date] - Monday to Sunday around the date
/today - Today's figures

🛠 Jobs:
/job WIP REG AW [green|amber|red] [notes]
    Example: /job 48213 AB12CDE 14.5 amber front pads
/editjob ID WIP REG AW [vhc] [notes]
/deljob ID
/showjob ID
/jobs [N] - Last N jobs (default 10)

🏖 Absences:
/absence add DATE TYPE [full|half|2d|3.5h] [available|target] [note]
/absence edit DATE NEWDATE TYPE [...]
/absence delete DATE
/holiday DATE [...], /sick DATE [...], /training DATE [...]
/absences [month] - List absences
/calendar [month] - Tap a day to cycle none → holiday → sickness → training
/checkday [date] - Is the date a working day?

📅 Schedule:
/schedule - Show the schedule
/schedule hours 8.5
/schedule weekdays mon,tue,wed,thu,fri
/schedule saturdays none|every|1-in-2|1-in-3|1-in-4 [anchor Saturday]
/schedule sathours 4 | /schedule sathours off
/schedule custom 2024-03-16,2024-03-30
/schedule reset
/loadsaturdays - Upload a JSON calendar of working Saturdays

⚙️ Settings:
/settings - Show formula settings
/settings KEY VALUE - Change one (minutes_per_aw, excellent, good, target, daily_hours, lunch_break)
/settings reset
/settarget HOURS [month] - Target override for a month
/cleartarget [month]
/targets - List target overrides

📤 Export:
/export csv|json|xlsx|ics [month]`

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	h.send(message.Chat.ID, helpText)
}
