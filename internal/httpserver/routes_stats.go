// internal/httpserver/routes_stats.go
//
// Read-only game log endpoints, mounted under /api:
//   - GET /api/stats   → totals across all players
//   - GET /api/history → the caller's recent rounds (?limit=N, max 100)
//
// Both answer 404 when the server runs without a game log.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/socops/bingo/internal/history"
)

const maxHistoryLimit = 100

func (s *Server) mountStats(r chi.Router) {
	r.Get("/stats", s.handleStats)
	r.Get("/history", s.handleHistory)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.games == nil {
		writeError(w, http.StatusNotFound, "game_log_disabled")
		return
	}
	st, err := s.games.Stats(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("game log stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type historyRes struct {
	Games []history.Game `json:"games"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.games == nil {
		writeError(w, http.StatusNotFound, "game_log_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	sid := s.cookies.ensure(w, r)
	games, err := s.games.Recent(r.Context(), history.SessionKey(s.logKey, sid), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("game log history")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if games == nil {
		games = []history.Game{}
	}
	writeJSON(w, http.StatusOK, historyRes{Games: games})
}
