// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Sessions live for the process lifetime or until evicted by Sweep.
//
// Characteristics:
//   - Stores *session.Session objects keyed by session id in a map.
//   - The map is guarded by an RWMutex; each session has its own mutex, so
//     updates to one id are serialized while different ids run in parallel.
//   - Callers only ever see deep copies, never the stored pointer.
//   - Update applies its function to a copy and commits only on success.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/socops/bingo/internal/session"
)

// ErrNotFound is returned by Get for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Store defines the keyed session store used by the transport layer.
// Implementations decide eviction; the game logic never depends on it.
type Store interface {
	// Load returns a copy of the session for id, creating it if absent.
	Load(ctx context.Context, id string) (*session.Session, error)

	// Get returns a copy of an existing session or ErrNotFound.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Update runs fn on the session for id (created if absent) with all
	// other updates to the same id excluded. If fn returns an error the
	// stored session is left unchanged. The returned copy reflects the
	// stored state after the call.
	Update(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error)

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep evicts sessions idle for longer than maxIdle and returns the count.
	Sweep(ctx context.Context, maxIdle time.Duration) (int, error)
}

// entry is one stored session plus its serialization lock.
type entry struct {
	mu      sync.Mutex
	sess    *session.Session
	touched time.Time
	removed bool // set by Sweep/Delete under mu; holders must look up again
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by session id
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

// Len reports the number of stored sessions.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// acquire returns the locked entry for id, creating it when absent.
func (m *memory) acquire(id string) *entry {
	for {
		m.mu.RLock()
		e, ok := m.sessions[id]
		m.mu.RUnlock()
		if !ok {
			m.mu.Lock()
			if e, ok = m.sessions[id]; !ok {
				e = &entry{sess: session.New(id), touched: m.now()}
				m.sessions[id] = e
			}
			m.mu.Unlock()
		}
		e.mu.Lock()
		if !e.removed {
			return e
		}
		// Evicted between lookup and lock; a fresh entry will be created.
		e.mu.Unlock()
	}
}

func (m *memory) Load(ctx context.Context, id string) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := m.acquire(id)
	defer e.mu.Unlock()
	e.touched = m.now()
	return e.sess.Clone(), nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrNotFound
	}
	return e.sess.Clone(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := m.acquire(id)
	defer e.mu.Unlock()

	work := e.sess.Clone()
	if err := fn(work); err != nil {
		return e.sess.Clone(), err
	}
	e.sess = work
	e.touched = m.now()
	return work.Clone(), nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.mu.Lock()
		e.removed = true
		e.mu.Unlock()
		delete(m.sessions, id)
	}
	return nil
}

// Sweep skips sessions that are busy in an Update; they were just touched.
func (m *memory) Sweep(ctx context.Context, maxIdle time.Duration) (int, error) {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.sessions {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			e.removed = true
			delete(m.sessions, id)
			n++
		}
		e.mu.Unlock()
	}
	return n, nil
}
