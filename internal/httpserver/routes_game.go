// internal/httpserver/routes_game.go
//
// Session operations exposed over HTTP.
// The same four operations back both surfaces:
//   - htmlOp renders the start or game screen fragment for htmx swaps.
//   - jsonOp returns the session projection as JSON.
// Every operation is total; the only error a player can see is a failed
// board deal (500) or a non-numeric square id (400).

package httpserver

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/socops/bingo/internal/bingo"
	"github.com/socops/bingo/internal/session"
)

var errBadSquare = errors.New("square id must be an integer")

// mutation is one session operation bound to a request.
type mutation func(*session.Session) error

// operation parses a request into a mutation.
type operation func(r *http.Request) (mutation, error)

func (s *Server) opStart(*http.Request) (mutation, error) {
	return func(ss *session.Session) error { return ss.Start(s.dealer) }, nil
}

func opToggle(r *http.Request) (mutation, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "squareID"))
	if err != nil {
		return nil, errBadSquare
	}
	return func(ss *session.Session) error {
		ss.HandleSquareClick(id)
		return nil
	}, nil
}

func opReset(*http.Request) (mutation, error) {
	return func(ss *session.Session) error { ss.Reset(); return nil }, nil
}

func opDismiss(*http.Request) (mutation, error) {
	return func(ss *session.Session) error { ss.DismissModal(); return nil }, nil
}

// apply runs op against the caller's session and records the outcome in the
// game log. It writes the error response itself and returns nil on failure.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, op operation, asJSON bool) *session.Session {
	fail := func(status int, code string) {
		if asJSON {
			writeError(w, status, code)
			return
		}
		http.Error(w, code, status)
	}

	fn, err := op(r)
	if err != nil {
		fail(http.StatusBadRequest, "invalid_square")
		return nil
	}

	sid := s.cookies.ensure(w, r)
	var before *session.Session
	after, err := s.store.Update(r.Context(), sid, func(ss *session.Session) error {
		before = ss.Clone()
		return fn(ss)
	})
	if err != nil {
		logger := hlog.FromRequest(r)
		if errors.Is(err, bingo.ErrInsufficientPool) {
			logger.Error().Err(err).Msg("deal board")
			fail(http.StatusInternalServerError, "board_unavailable")
			return nil
		}
		logger.Error().Err(err).Msg("update session")
		fail(http.StatusInternalServerError, "session_error")
		return nil
	}
	if before != nil {
		s.recordTransition(r, sid, before, after)
	}
	return after
}

func (s *Server) htmlOp(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.apply(w, r, op, false)
		if sess == nil {
			return
		}
		s.renderHTML(w, r, screenName(sess), newScreenView(sess))
	}
}

func (s *Server) jsonOp(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.apply(w, r, op, true)
		if sess == nil {
			return
		}
		writeJSON(w, http.StatusOK, newSessionRes(sess))
	}
}

// handleHome renders the full page for the caller's session.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Load(r.Context(), s.cookies.ensure(w, r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		http.Error(w, "session_error", http.StatusInternalServerError)
		return
	}
	s.renderHTML(w, r, "base", newScreenView(sess))
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, name string, v screenView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w, s.tpl, name, v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render")
		http.Error(w, "render_failed", http.StatusInternalServerError)
	}
}

// sessionRes is the JSON projection of a session.
type sessionRes struct {
	Progress       session.Progress `json:"progress"`
	GameID         string           `json:"gameId,omitempty"`
	Board          *bingo.Board     `json:"board"`
	WinningLine    *bingo.Line      `json:"winningLine"`
	ModalDismissed bool             `json:"modalDismissed"`
	ShowModal      bool             `json:"showModal"`
	Highlighted    []int            `json:"highlightedSquareIds"`
}

func newSessionRes(s *session.Session) sessionRes {
	hl := make([]int, 0, bingo.LineSize)
	for id := range s.HighlightedSquareIDs() {
		hl = append(hl, id)
	}
	sort.Ints(hl)
	return sessionRes{
		Progress:       s.Progress,
		GameID:         s.GameID,
		Board:          s.Board,
		WinningLine:    s.WinningLine,
		ModalDismissed: s.ModalDismissed,
		ShowModal:      s.ShowModal(),
		Highlighted:    hl,
	}
}

func (s *Server) handleSessionJSON(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Load(r.Context(), s.cookies.ensure(w, r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load session")
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}
	writeJSON(w, http.StatusOK, newSessionRes(sess))
}
