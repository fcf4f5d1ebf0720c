// internal/bingo/board.go
//
// Board construction and square toggling.
// Responsibilities:
//   - Sample Prompts distinct questions from a read-only pool.
//   - Place the free space, pre-marked, at the center cell.
//   - Produce new boards with a single square's mark flipped.
//
// Notes:
//   - Randomness comes from an injected Source so tests can fix a seed.
//   - Boards are values; every function here returns a fresh board.

package bingo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrInsufficientPool is matched (via errors.Is) by every *InsufficientPoolError.
var ErrInsufficientPool = errors.New("bingo: insufficient question pool")

// InsufficientPoolError reports a pool with too few distinct questions.
type InsufficientPoolError struct {
	Have int // distinct entries found
	Need int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("bingo: question pool has %d distinct entries, need %d", e.Have, e.Need)
}

func (e *InsufficientPoolError) Is(target error) bool { return target == ErrInsufficientPool }

// Source yields uniformly distributed ints in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource uses the goroutine-safe top-level math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// GenerateBoard builds a new board from pool. The pool is never modified.
// Duplicate entries count once; fewer than Prompts distinct entries is an error.
// A nil src uses the global random generator.
func GenerateBoard(pool []string, freeSpace string, src Source) (Board, error) {
	if src == nil {
		src = globalSource{}
	}
	candidates := distinct(pool)
	if len(candidates) < Prompts {
		return Board{}, &InsufficientPoolError{Have: len(candidates), Need: Prompts}
	}

	// Partial Fisher-Yates: after i steps the first i entries are the draw.
	for i := 0; i < Prompts; i++ {
		j := i + src.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	var b Board
	next := 0
	for id := range b {
		if id == Center {
			b[id] = Square{ID: id, Text: freeSpace, IsMarked: true, IsFreeSpace: true}
			continue
		}
		b[id] = Square{ID: id, Text: candidates[next]}
		next++
	}
	return b, nil
}

// distinct returns a new slice with the first occurrence of each entry.
func distinct(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// Toggle returns a copy of b with square id's mark inverted.
// The free space and out-of-range ids leave the board unchanged.
func Toggle(b Board, id int) Board {
	if id < 0 || id >= Cells || b[id].IsFreeSpace {
		return b
	}
	b[id].IsMarked = !b[id].IsMarked
	return b
}

// Deck deals boards from a fixed pool. It is safe for concurrent use.
type Deck struct {
	pool      []string
	freeSpace string

	mu  sync.Mutex // guards src; *rand.Rand is not goroutine-safe
	src Source
}

// NewDeck returns a Deck over pool. A nil src uses the global generator.
func NewDeck(pool []string, freeSpace string, src Source) *Deck {
	return &Deck{pool: pool, freeSpace: freeSpace, src: src}
}

// Deal generates a fresh board.
func (d *Deck) Deal() (Board, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return GenerateBoard(d.pool, d.freeSpace, d.src)
}

// FreeSpace returns the label placed on the center square.
func (d *Deck) FreeSpace() string { return d.freeSpace }

// Size returns the number of distinct questions in the deck.
func (d *Deck) Size() int { return len(distinct(d.pool)) }
