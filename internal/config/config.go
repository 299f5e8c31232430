package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"aw-tracker-bot/internal/performance"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken string
	// OwnerChatID is the only chat the bot answers.
	OwnerChatID int64
	DatabaseURL string
	Timezone    string
	LogLevel    string
	LogJSON     bool
	BotDebug    bool

	DefaultMinutesPerAW      float64
	DefaultTargetHours       float64
	DefaultDailyHours        float64
	DefaultLunchBreakMinutes float64
	EfficiencyExcellent      float64
	EfficiencyGood           float64
	SaturdayCalendarFile     string
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded, using environment only: %s", err.Error())
		}

		instance = Load()

		if instance.TelegramToken == "" {
			logrus.Fatal("could not get bot token")
		}
		if instance.OwnerChatID == 0 {
			logrus.Fatal("could not get owner chat id")
		}
		if err := instance.FormulaDefaults().Validate(); err != nil {
			logrus.Fatalf("invalid formula defaults: %s", err.Error())
		}
		if _, err := instance.Location(); err != nil {
			logrus.Fatalf("invalid timezone %q: %s", instance.Timezone, err.Error())
		}
	})

	return instance
}

// Load reads the configuration from the process environment without validating it.
func Load() *BotConfig {
	defaults := performance.DefaultFormulaSettings()
	return &BotConfig{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		OwnerChatID:   getEnvAsInt("OWNER_CHAT_ID", 0),
		DatabaseURL:   getEnv("DATABASE_URL", "aw-tracker.db"),
		Timezone:      getEnv("TIMEZONE", "Local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogJSON:       getEnvAsBool("LOG_JSON", false),
		BotDebug:      getEnvAsBool("BOT_DEBUG", false),

		DefaultMinutesPerAW:      getEnvAsFloat("DEFAULT_MINUTES_PER_AW", defaults.MinutesPerAW),
		DefaultTargetHours:       getEnvAsFloat("DEFAULT_TARGET_HOURS", defaults.DefaultTargetHours),
		DefaultDailyHours:        getEnvAsFloat("DEFAULT_DAILY_HOURS", defaults.DefaultDailyHours),
		DefaultLunchBreakMinutes: getEnvAsFloat("DEFAULT_LUNCH_BREAK_MINUTES", defaults.LunchBreakMinutes),
		EfficiencyExcellent:      getEnvAsFloat("EFFICIENCY_EXCELLENT", defaults.ExcellentThreshold),
		EfficiencyGood:           getEnvAsFloat("EFFICIENCY_GOOD", defaults.GoodThreshold),
		SaturdayCalendarFile:     getEnv("SATURDAY_CALENDAR_FILE", ""),
	}
}

// FormulaDefaults seeds the formula settings until the technician saves their own.
func (c *BotConfig) FormulaDefaults() performance.FormulaSettings {
	return performance.FormulaSettings{
		MinutesPerAW:       c.DefaultMinutesPerAW,
		ExcellentThreshold: c.EfficiencyExcellent,
		GoodThreshold:      c.EfficiencyGood,
		DefaultTargetHours: c.DefaultTargetHours,
		DefaultDailyHours:  c.DefaultDailyHours,
		LunchBreakMinutes:  c.DefaultLunchBreakMinutes,
	}
}

func (c *BotConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// NewLogger builds a logger with the configured level and format.
func (c *BotConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		logger.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}

	return defaultVal
}
