package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("OWNER_CHAT_ID", "42")

	cfg := Load()
	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.OwnerChatID)
	assert.Equal(t, "aw-tracker.db", cfg.DatabaseURL)

	f := cfg.FormulaDefaults()
	require.NoError(t, f.Validate())
	assert.Equal(t, 5.0, f.MinutesPerAW)
	assert.Equal(t, 180.0, f.DefaultTargetHours)
	assert.Equal(t, 8.5, f.DefaultDailyHours)
	assert.Equal(t, 65.0, f.ExcellentThreshold)
	assert.Equal(t, 31.0, f.GoodThreshold)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEFAULT_MINUTES_PER_AW", "6")
	t.Setenv("EFFICIENCY_GOOD", "not-a-number")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, 6.0, cfg.DefaultMinutesPerAW)
	assert.Equal(t, 31.0, cfg.EfficiencyGood)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err := Load().Location()
	assert.Error(t, err)
}
