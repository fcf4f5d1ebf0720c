package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "APP_ENV", "SESSION_SECRET", "SESSION_COOKIE",
		"SESSION_MAX_AGE_DAYS", "SESSION_IDLE_TTL", "QUESTIONS_FILE", "FREE_SPACE_LABEL", "DB_PATH",
	} {
		t.Setenv(k, "")
	}
	cfg := loadConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.Production())
	assert.Equal(t, devSecret, cfg.SessionSecret)
	assert.Equal(t, "soc_ops_session", cfg.SessionCookie)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
	assert.Empty(t, cfg.QuestionsFile)
	assert.Equal(t, "FREE SPACE", cfg.FreeSpace)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SESSION_MAX_AGE_DAYS", "7")
	t.Setenv("SESSION_IDLE_TTL", "90m")
	t.Setenv("FREE_SPACE_LABEL", "  FREE  ")
	t.Setenv("DB_PATH", "/tmp/bingo.db")

	cfg := loadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.Production())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, 90*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, "FREE", cfg.FreeSpace)
	assert.Equal(t, "/tmp/bingo.db", cfg.DBPath)
}

func TestLoadConfigInvalidFallsBack(t *testing.T) {
	tests := []struct {
		days, ttl string
	}{
		{"abc", "soon"},
		{"-1", "-5m"},
		{"0", "0s"},
	}
	for _, tc := range tests {
		t.Setenv("SESSION_MAX_AGE_DAYS", tc.days)
		t.Setenv("SESSION_IDLE_TTL", tc.ttl)
		cfg := loadConfig()
		assert.Equal(t, 30*24*time.Hour, cfg.SessionMaxAge, tc.days)
		assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL, tc.ttl)
	}
}
