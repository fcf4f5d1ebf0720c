// internal/questions/questions.go
//
// Question pool management for the bingo engine.
//
// Responsibilities:
//   - Load the candidate square texts from a configured file or fall back to
//     the embedded default list.
//   - Normalize entries (trim, drop blanks and '#' comments, collapse
//     duplicates while keeping first-seen order).
//   - Refuse pools that cannot fill a board, so the server fails at startup
//     rather than on the first Start.
//
// Environment (read by main and passed in):
//   QUESTIONS_FILE=/path/to/questions.txt
//   FREE_SPACE_LABEL="FREE SPACE"

package questions

import (
	"fmt"
	"os"
	"strings"

	"github.com/socops/bingo/assets"
	"github.com/socops/bingo/internal/bingo"
)

// DefaultFreeSpace is the label used for the center square when none is configured.
const DefaultFreeSpace = "FREE SPACE"

// Pool is an immutable, de-duplicated question list plus the free-space label.
type Pool struct {
	questions []string
	freeSpace string
	source    string
}

// Load reads the pool from path, or from the embedded list when path is empty.
func Load(path, freeSpace string) (*Pool, error) {
	var (
		list   []string
		source = "embedded"
	)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("questions: read %s: %w", path, err)
		}
		list = assets.Lines(string(b))
		source = path
	} else {
		var err error
		if list, err = assets.QuestionsList(); err != nil {
			return nil, fmt.Errorf("questions: embedded list: %w", err)
		}
	}
	return New(list, freeSpace, source)
}

// New builds a pool from list. Blank entries are dropped.
func New(list []string, freeSpace, source string) (*Pool, error) {
	freeSpace = strings.TrimSpace(freeSpace)
	if freeSpace == "" {
		freeSpace = DefaultFreeSpace
	}
	seen := make(map[string]struct{}, len(list))
	qs := make([]string, 0, len(list))
	for _, q := range list {
		q = strings.TrimSpace(q)
		if q == "" || q == freeSpace {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		qs = append(qs, q)
	}
	if len(qs) < bingo.Prompts {
		return nil, fmt.Errorf("questions: %s: %w", source,
			&bingo.InsufficientPoolError{Have: len(qs), Need: bingo.Prompts})
	}
	return &Pool{questions: qs, freeSpace: freeSpace, source: source}, nil
}

// Questions returns a copy of the question list.
func (p *Pool) Questions() []string { return append([]string(nil), p.questions...) }

// FreeSpace returns the center square label.
func (p *Pool) FreeSpace() string { return p.freeSpace }

// Source names where the pool was loaded from ("embedded" or a file path).
func (p *Pool) Source() string { return p.source }

// Len returns the number of distinct questions.
func (p *Pool) Len() int { return len(p.questions) }

// Deck returns a board dealer over this pool. A nil src uses the global generator.
func (p *Pool) Deck(src bingo.Source) *bingo.Deck {
	return bingo.NewDeck(p.Questions(), p.freeSpace, src)
}
