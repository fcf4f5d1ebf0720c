package session

import "fmt"

// Progress is the coarse state of a session's game.
type Progress uint8

const (
	NotStarted Progress = iota
	InProgress
	Won
)

// String returns the name used in JSON payloads and templates.
func (p Progress) String() string {
	switch p {
	case NotStarted:
		return "start"
	case InProgress:
		return "playing"
	case Won:
		return "bingo"
	default:
		return "unknown"
	}
}

// MarshalText lets Progress encode as its name in JSON.
func (p Progress) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses a name produced by MarshalText.
func (p *Progress) UnmarshalText(b []byte) error {
	switch string(b) {
	case "start":
		*p = NotStarted
	case "playing":
		*p = InProgress
	case "bingo":
		*p = Won
	default:
		return fmt.Errorf("session: unknown progress %q", b)
	}
	return nil
}

// Op is one of the four operations a session accepts.
type Op uint8

const (
	OpStart Op = iota
	OpClick
	OpDismiss
	OpReset
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpClick:
		return "click"
	case OpDismiss:
		return "dismiss"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// transitions lists the ops each state accepts. Anything missing is a no-op.
// A click in InProgress may also move to Won; that edge is taken by
// HandleSquareClick when the detector reports a line.
var transitions = map[Progress]map[Op]Progress{
	NotStarted: {
		OpStart: InProgress,
		OpReset: NotStarted,
	},
	InProgress: {
		OpStart: InProgress,
		OpClick: InProgress,
		OpReset: NotStarted,
	},
	Won: {
		OpStart:   InProgress,
		OpDismiss: Won,
		OpReset:   NotStarted,
	},
}

// Allows reports whether op does anything from state p.
func (p Progress) Allows(op Op) bool {
	_, ok := transitions[p][op]
	return ok
}

// next returns the state op leads to from p, and whether op is accepted.
func (p Progress) next(op Op) (Progress, bool) {
	to, ok := transitions[p][op]
	return to, ok
}
