// internal/httpserver/server.go
//
// HTTP server wiring for the Soc Ops bingo backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logging, timeouts, panic recovery).
//   - Page and htmx fragment endpoints: "/", POST /start, /toggle/{squareID},
//     /reset, /dismiss-modal.
//   - JSON endpoints under /api mirroring the same four operations plus
//     read-only session, stats and history views.
//   - Signed session cookie issuance (see cookies.go).
//   - Best-effort game log writes (see gamelog.go).
//
// Notes:
//   - All session mutation goes through store.Update, which serializes
//     requests for the same session id.
//   - The game log is optional; without it the stats/history routes 404.

package httpserver

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/socops/bingo/assets"
	"github.com/socops/bingo/internal/session"
	"github.com/socops/bingo/internal/store"
)

// Options configures a Server.
type Options struct {
	Store   store.Store
	Dealer  session.Dealer
	GameLog GameLog // optional

	Secret       []byte // key material for cookies and game-log keys
	CookieName   string
	CookieMaxAge time.Duration
	SecureCookie bool

	RequestTimeout time.Duration
}

// Server bundles router, session store, dealer and game log.
type Server struct {
	r       *chi.Mux
	store   store.Store
	dealer  session.Dealer
	games   GameLog
	logKey  []byte
	cookies *sessionCookies
	tpl     *template.Template
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Dealer == nil {
		return nil, errors.New("httpserver: store and dealer are required")
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("httpserver: secret is required")
	}
	if opts.CookieName == "" {
		opts.CookieName = "soc_ops_session"
	}
	if opts.CookieMaxAge <= 0 {
		opts.CookieMaxAge = 30 * 24 * time.Hour
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	cookieKey, err := deriveKey(opts.Secret, keyInfoCookie)
	if err != nil {
		return nil, err
	}
	logKey, err := deriveKey(opts.Secret, keyInfoGameLog)
	if err != nil {
		return nil, err
	}

	s := &Server{
		r:      chi.NewRouter(),
		store:  opts.Store,
		dealer: opts.Dealer,
		games:  opts.GameLog,
		logKey: logKey,
		cookies: &sessionCookies{
			name:   opts.CookieName,
			key:    cookieKey,
			maxAge: opts.CookieMaxAge,
			secure: opts.SecureCookie,
			now:    time.Now,
		},
		tpl: loadTemplates(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(log.Logger)...)       // zerolog access log
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static()))))

	// --- pages + htmx fragments ---
	s.r.Get("/", s.handleHome)
	s.r.Post("/start", s.htmlOp(s.opStart))
	s.r.Post("/toggle/{squareID}", s.htmlOp(opToggle))
	s.r.Post("/reset", s.htmlOp(opReset))
	s.r.Post("/dismiss-modal", s.htmlOp(opDismiss))

	// --- JSON ---
	s.r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSessionJSON)
		r.Post("/start", s.jsonOp(s.opStart))
		r.Post("/toggle/{squareID}", s.jsonOp(opToggle))
		r.Post("/reset", s.jsonOp(opReset))
		r.Post("/dismiss-modal", s.jsonOp(opDismiss))
		s.mountStats(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
