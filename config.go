// config.go
//
// Runtime configuration for the bingo server, read from the environment
// (after godotenv has loaded .env, when present).
//
// Bad numeric or duration values are logged and replaced by their default
// so a typo in .env never keeps the server from starting.

package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/socops/bingo/internal/questions"
)

const devSecret = "soc-ops-dev-secret-change-me"

// Config holds every setting main needs to wire the server.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string // "json" or "console"
	AppEnv    string

	SessionSecret  string
	SessionCookie  string
	SessionMaxAge  time.Duration
	SessionIdleTTL time.Duration

	QuestionsFile string
	FreeSpace     string

	DBPath string // empty disables the game log
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool { return strings.EqualFold(c.AppEnv, "production") }

func loadConfig() Config {
	return Config{
		Port:      getEnv("PORT", "8000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AppEnv:    getEnv("APP_ENV", "development"),

		SessionSecret:  getEnv("SESSION_SECRET", devSecret),
		SessionCookie:  getEnv("SESSION_COOKIE", "soc_ops_session"),
		SessionMaxAge:  time.Duration(getEnvInt("SESSION_MAX_AGE_DAYS", 30)) * 24 * time.Hour,
		SessionIdleTTL: getEnvDuration("SESSION_IDLE_TTL", 24*time.Hour),

		QuestionsFile: os.Getenv("QUESTIONS_FILE"),
		FreeSpace:     getEnv("FREE_SPACE_LABEL", questions.DefaultFreeSpace),

		DBPath: os.Getenv("DB_PATH"),
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
		return def
	}
	return d
}
