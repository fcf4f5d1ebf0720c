package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/socops/bingo/internal/bingo"
	"github.com/socops/bingo/internal/history"
	"github.com/socops/bingo/internal/session"
)

// GameLog records rounds for statistics. *history.Store implements it.
type GameLog interface {
	Started(ctx context.Context, gameID, sessionKey string, at time.Time) error
	Won(ctx context.Context, gameID string, line bingo.Line, marked int, at time.Time) error
	Abandoned(ctx context.Context, gameID string, marked int, at time.Time) error
	Stats(ctx context.Context) (history.Stats, error)
	Recent(ctx context.Context, sessionKey string, limit int) ([]history.Game, error)
}

var _ GameLog = (*history.Store)(nil)

// recordTransition diffs two snapshots of a session and writes the matching
// log rows. Failures are logged and otherwise ignored.
func (s *Server) recordTransition(r *http.Request, sid string, before, after *session.Session) {
	if s.games == nil {
		return
	}
	ctx := r.Context()
	logger := hlog.FromRequest(r)
	now := time.Now()

	if before.GameID != "" && before.GameID != after.GameID && before.Progress == session.InProgress {
		if err := s.games.Abandoned(ctx, before.GameID, marked(before), now); err != nil {
			logger.Warn().Err(err).Str("gameId", before.GameID).Msg("log abandoned game")
		}
	}
	if after.GameID != "" && after.GameID != before.GameID {
		if err := s.games.Started(ctx, after.GameID, history.SessionKey(s.logKey, sid), after.StartedAt); err != nil {
			logger.Warn().Err(err).Str("gameId", after.GameID).Msg("log started game")
		}
	}
	if before.Progress == session.InProgress && after.Progress == session.Won && after.WinningLine != nil {
		if err := s.games.Won(ctx, after.GameID, *after.WinningLine, marked(after), now); err != nil {
			logger.Warn().Err(err).Str("gameId", after.GameID).Msg("log won game")
		}
		logger.Info().
			Str("gameId", after.GameID).
			Str("line", string(after.WinningLine.Type)).
			Int("index", after.WinningLine.Index).
			Msg("bingo")
	}
}

func marked(s *session.Session) int {
	if s.Board == nil {
		return 0
	}
	return s.Board.MarkedCount()
}
