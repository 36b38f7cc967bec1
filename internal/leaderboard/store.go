package leaderboard

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	// ErrNotFound means nothing has been persisted yet.
	ErrNotFound = errors.New("leaderboard: not found")
	// ErrCorrupt means persisted data exists but cannot be decoded.
	ErrCorrupt = errors.New("leaderboard: corrupt data")
)

// Store persists the whole leaderboard list.
// Implementations may be backed by a JSON file, SQLite or memory.
type Store interface {
	// Load returns the persisted entries, ErrNotFound when nothing was saved
	// yet, or an error wrapping ErrCorrupt when the data is unreadable.
	Load(ctx context.Context) ([]Entry, error)

	// Save replaces the persisted entries.
	Save(ctx context.Context, entries []Entry) error

	// Close releases any underlying resources.
	Close() error
}

// memoryStore keeps the list in process; state is lost on restart.
type memoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	saved   bool
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.saved {
		return nil, ErrNotFound
	}
	return slices.Clone(m.entries), nil
}

func (m *memoryStore) Save(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	m.saved = true
	return nil
}

func (m *memoryStore) Close() error { return nil }
