// internal/session/session.go
//
// Per-player game session and its state machine.
// Responsibilities:
//   - Own one board snapshot plus progress, winning line and modal flag.
//   - Apply start / click / dismiss / reset, delegating board work to the
//     bingo package.
//   - Expose read-only projections for rendering.
//
// Notes:
//   - Invalid-for-state calls are no-ops, never errors. The only failure is a
//     dealer error on Start, which leaves the session untouched.
//   - A Session has no lock. The store serializes access per session id.

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/socops/bingo/internal/bingo"
)

// Dealer produces fresh boards. *bingo.Deck implements it.
type Dealer interface {
	Deal() (bingo.Board, error)
}

// Session is the state held for one session id.
type Session struct {
	ID             string
	GameID         string       // changes on every Start; empty before the first
	Board          *bingo.Board // nil until started
	Progress       Progress
	WinningLine    *bingo.Line // nil unless Progress == Won
	ModalDismissed bool
	StartedAt      time.Time
	UpdatedAt      time.Time
}

// New returns a session in the NotStarted state.
func New(id string) *Session {
	return &Session{ID: id, Progress: NotStarted, UpdatedAt: time.Now()}
}

// Start deals a new board and begins a round. Valid from any state.
// On error the session keeps its previous state.
func (s *Session) Start(d Dealer) error {
	to, _ := s.Progress.next(OpStart)
	b, err := d.Deal()
	if err != nil {
		return err
	}
	now := time.Now()
	s.GameID = uuid.NewString()
	s.Board = &b
	s.Progress = to
	s.WinningLine = nil
	s.ModalDismissed = false
	s.StartedAt = now
	s.UpdatedAt = now
	return nil
}

// HandleSquareClick toggles square id while a round is in progress and
// reports whether this click completed a line.
func (s *Session) HandleSquareClick(id int) bool {
	if _, ok := s.Progress.next(OpClick); !ok || s.Board == nil {
		return false
	}
	b := bingo.Toggle(*s.Board, id)
	s.Board = &b
	s.UpdatedAt = time.Now()

	line, ok := bingo.CheckBingo(b)
	if !ok {
		return false
	}
	s.Progress = Won
	s.WinningLine = &line
	s.ModalDismissed = false
	return true
}

// DismissModal hides the win announcement. Only valid after a win.
func (s *Session) DismissModal() {
	if _, ok := s.Progress.next(OpDismiss); !ok {
		return
	}
	s.ModalDismissed = true
	s.UpdatedAt = time.Now()
}

// Reset returns the session to NotStarted, keeping its id.
func (s *Session) Reset() {
	to, _ := s.Progress.next(OpReset)
	s.GameID = ""
	s.Board = nil
	s.Progress = to
	s.WinningLine = nil
	s.ModalDismissed = false
	s.StartedAt = time.Time{}
	s.UpdatedAt = time.Now()
}

// HighlightedSquareIDs returns the ids of the winning line, if any.
func (s *Session) HighlightedSquareIDs() map[int]struct{} {
	return bingo.HighlightedSquareIDs(s.WinningLine)
}

// ShowModal reports whether the win announcement should be presented.
func (s *Session) ShowModal() bool {
	return s.Progress == Won && !s.ModalDismissed
}

// Clone returns a deep copy that shares nothing with s.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Board != nil {
		b := *s.Board
		cp.Board = &b
	}
	if s.WinningLine != nil {
		l := *s.WinningLine
		cp.WinningLine = &l
	}
	return &cp
}
