// internal/history/store.go
//
// SQLite-backed game log.
// Each round a player starts becomes one row in `games`; the row is closed
// as won (with the winning line) or abandoned when the player resets or
// restarts before a bingo. The log feeds statistics only; sessions are
// never restored from it.

package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/socops/bingo/internal/bingo"
)

// Status values stored in games.status.
const (
	StatusPlaying   = "playing"
	StatusWon       = "won"
	StatusAbandoned = "abandoned"
)

// Game is one logged round.
type Game struct {
	ID         string         `json:"id"`
	SessionKey string         `json:"-"`
	StartedAt  time.Time      `json:"startedAt"`
	Status     string         `json:"status"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
	LineType   bingo.LineType `json:"lineType,omitempty"`
	LineIndex  int            `json:"lineIndex,omitempty"`
	Marked     int            `json:"marked"`
}

// Stats aggregates the whole log.
type Stats struct {
	Games     int                    `json:"games"`
	Wins      int                    `json:"wins"`
	Abandoned int                    `json:"abandoned"`
	Playing   int                    `json:"playing"`
	ByLine    map[bingo.LineType]int `json:"byLine"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Started inserts a row for a new round. Re-inserting the same id is ignored.
func (s *Store) Started(ctx context.Context, gameID, sessionKey string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO games(id, session_key, started_at, status, marked)
		 VALUES(?,?,?,?,1)`, gameID, sessionKey, timestamp(at), StatusPlaying,
	)
	return err
}

// Won closes a playing round with its winning line and marked-square count.
func (s *Store) Won(ctx context.Context, gameID string, line bingo.Line, marked int, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET status=?, finished_at=?, line_type=?, line_index=?, marked=?
		 WHERE id=? AND status=?`,
		StatusWon, timestamp(at), string(line.Type), line.Index, marked, gameID, StatusPlaying,
	)
	return err
}

// Abandoned closes a round that ended without a bingo. Finished rounds are left alone.
func (s *Store) Abandoned(ctx context.Context, gameID string, marked int, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET status=?, finished_at=?, marked=? WHERE id=? AND status=?`,
		StatusAbandoned, timestamp(at), marked, gameID, StatusPlaying,
	)
	return err
}

// Stats returns totals across all sessions.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByLine: map[bingo.LineType]int{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COALESCE(line_type,''), COUNT(1) FROM games GROUP BY status, line_type`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var status, lineType string
		var n int
		if err := rows.Scan(&status, &lineType, &n); err != nil {
			return st, err
		}
		st.Games += n
		switch status {
		case StatusWon:
			st.Wins += n
			st.ByLine[bingo.LineType(lineType)] += n
		case StatusAbandoned:
			st.Abandoned += n
		case StatusPlaying:
			st.Playing += n
		}
	}
	return st, rows.Err()
}

// Recent returns a session's latest rounds, newest first. limit <= 0 means 20.
func (s *Store) Recent(ctx context.Context, sessionKey string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, status, COALESCE(finished_at,''), COALESCE(line_type,''),
		       COALESCE(line_index,0), marked
		FROM games
		WHERE session_key=?
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, sessionKey, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Game, 0, limit)
	for rows.Next() {
		var g Game
		var started, finished, lineType string
		if err := rows.Scan(&g.ID, &started, &g.Status, &finished, &lineType, &g.LineIndex, &g.Marked); err != nil {
			return nil, err
		}
		g.SessionKey = sessionKey
		g.StartedAt = parseTimestamp(started)
		if finished != "" {
			at := parseTimestamp(finished)
			g.FinishedAt = &at
		}
		g.LineType = bingo.LineType(lineType)
		out = append(out, g)
	}
	return out, rows.Err()
}
