package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"aw-tracker-bot/internal/config"
	"aw-tracker-bot/internal/handler"
	"aw-tracker-bot/internal/repository"
	"aw-tracker-bot/internal/service"
	"aw-tracker-bot/pkg/telegram"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.GetBotConfig()
	logger := cfg.NewLogger()
	logger.Info("Config initialized")

	loc, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load timezone")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		// Job timestamps are compared as UTC instants.
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get database instance")
	}
	// One writer at a time; the snapshot transaction relies on it.
	sqlDB.SetMaxOpenConns(1)

	jobRepo, err := repository.NewGormJobRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create job repository")
	}
	absenceRepo, err := repository.NewGormAbsenceRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create absence repository")
	}
	scheduleRepo, err := repository.NewGormWorkScheduleRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create work schedule repository")
	}
	settingRepo, err := repository.NewGormFormulaSettingRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create formula setting repository")
	}
	targetRepo, err := repository.NewGormMonthlyTargetRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create monthly target repository")
	}
	snapshots := repository.NewGormSnapshotRepository(db, logger)

	settingsService := service.NewSettingsService(settingRepo, targetRepo, cfg.FormulaDefaults(), logger)
	scheduleService := service.NewScheduleService(scheduleRepo, settingsService, logger)
	jobService := service.NewJobService(jobRepo, loc, time.Now, logger)
	absenceService := service.NewAbsenceService(absenceRepo, scheduleService, logger)
	statsService := service.NewStatsService(snapshots, settingsService, loc, time.Now, logger)
	exportService := service.NewExportService(statsService, logger)

	if cfg.SaturdayCalendarFile != "" {
		n, err := scheduleService.LoadSaturdaysFile(cfg.SaturdayCalendarFile)
		if err != nil {
			logger.WithError(err).WithField("file", cfg.SaturdayCalendarFile).Warn("Failed to load working Saturday calendar")
		} else {
			logger.WithField("count", n).Info("Working Saturday calendar loaded")
		}
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.BotDebug)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Telegram client")
	}

	logger.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		jobService,
		absenceService,
		scheduleService,
		settingsService,
		statsService,
		exportService,
		cfg,
		logger,
	)

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logger.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()

	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("Error closing database")
	}

	logger.Info("Bot stopped gracefully")
}
