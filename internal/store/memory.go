// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used by tests and by CROSSWORD_STORE=memory for throwaway sessions.
//
// Characteristics:
//   - Holds snapshots, not live boards, so callers never alias stored state.
//   - Concurrency-safe via RWMutex (the HTTP viewer reads while the session writes).
//   - State is lost when the process exits.

package store

import (
	"context"
	"sync"

	"github.com/TLohan/crossword-app/internal/crossword"
)

// Store persists the whole collection of crosswords as one unit.
type Store interface {
	// Load returns every saved board in saved order. An empty store yields no boards.
	Load(ctx context.Context) ([]*crossword.Board, error)

	// Save replaces the stored collection with boards.
	Save(ctx context.Context, boards []*crossword.Board) error

	// Close releases any underlying resources.
	Close() error
}

// memory is an in-memory Store.
type memory struct {
	mu    sync.RWMutex
	snaps []crossword.Snapshot
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Load(ctx context.Context) ([]*crossword.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return restoreAll(m.snaps)
}

func (m *memory) Save(ctx context.Context, boards []*crossword.Board) error {
	snaps := snapshotAll(boards)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = snaps
	return nil
}

func (m *memory) Close() error { return nil }
