package leaderboard

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// Board is the process-wide leaderboard shared by every session. It keeps
// the current list in memory and writes it through to a Store on change.
type Board struct {
	mu      sync.RWMutex
	store   Store
	entries []Entry
}

// Open loads the board from store. A missing or unreadable list is never
// fatal: it is logged and replaced by seed() (or an empty list when seed is
// nil), and the replacement is written back.
func Open(ctx context.Context, store Store, seed func() []Entry) *Board {
	entries, err := store.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.Info().Msg("no saved leaderboard, starting fresh")
		case errors.Is(err, ErrCorrupt):
			log.Warn().Err(err).Msg("saved leaderboard is corrupt, replacing it")
		default:
			log.Warn().Err(err).Msg("failed to load leaderboard, starting fresh")
		}
		entries = nil
		if seed != nil {
			entries = seed()
		}
		if saveErr := store.Save(ctx, entries); saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to persist initial leaderboard")
		}
	}
	return &Board{store: store, entries: Normalize(entries)}
}

// Entries returns a copy of the current list.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.entries)
}

// Update applies fn to the current list and persists the result. Concurrent
// updates are serialized so no submission is lost. The in-memory list is
// replaced even when saving fails; the save error is returned for logging.
func (b *Board) Update(ctx context.Context, fn func(current []Entry) []Entry) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := Normalize(fn(slices.Clone(b.entries)))
	b.entries = next
	if err := b.store.Save(ctx, next); err != nil {
		return slices.Clone(next), err
	}
	return slices.Clone(next), nil
}
