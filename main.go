// main.go
//
// Entry point for the Soc Ops bingo server: loads configuration, builds the
// question deck, session store and optional game log, then serves HTTP until
// SIGINT/SIGTERM.

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/socops/bingo/assets"
	"github.com/socops/bingo/internal/history"
	"github.com/socops/bingo/internal/httpserver"
	"github.com/socops/bingo/internal/questions"
	"github.com/socops/bingo/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	setupLogging(cfg)

	if cfg.SessionSecret == devSecret && cfg.Production() {
		log.Fatal().Msg("SESSION_SECRET must be set in production")
	}

	pool, err := questions.Load(cfg.QuestionsFile, cfg.FreeSpace)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load question pool")
	}
	log.Info().Str("source", pool.Source()).Int("questions", pool.Len()).Msg("question pool loaded")

	opts := httpserver.Options{
		Store:        store.NewMemoryStore(),
		Dealer:       pool.Deck(nil),
		Secret:       []byte(cfg.SessionSecret),
		CookieName:   cfg.SessionCookie,
		CookieMaxAge: cfg.SessionMaxAge,
		SecureCookie: cfg.Production(),
	}

	var db *sql.DB
	if cfg.DBPath != "" {
		if db, err = history.Open(cfg.DBPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open game log")
		}
		defer db.Close()
		if err := history.Migrate(db, assets.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("migrate game log")
		}
		opts.GameLog = history.NewStore(db)
		log.Info().Str("path", cfg.DBPath).Msg("game log enabled")
	}

	srv, err := httpserver.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, opts.Store, cfg.SessionIdleTTL)

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting bingo server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

func setupLogging(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("value", cfg.LogLevel).Msg("invalid LOG_LEVEL, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweep evicts idle sessions until ctx is canceled.
func sweep(ctx context.Context, st store.Store, idle time.Duration) {
	every := idle / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := st.Sweep(ctx, idle)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Msg("session sweep")
				}
				continue
			}
			if n > 0 {
				log.Debug().Int("evicted", n).Msg("session sweep")
			}
		}
	}
}
