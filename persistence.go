package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/samber/lo"

	"unscramble/internal/leaderboard"
)

// defaultLeaderboardPath is used when LEADERBOARD_PATH is unset.
func defaultLeaderboardPath(backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join("data", "leaderboard.db")
	case BackendFile:
		return filepath.Join("data", "leaderboard.json")
	default:
		return ""
	}
}

// openLeaderboardStore opens the store selected by LEADERBOARD_BACKEND.
func openLeaderboardStore(backend, path string) (leaderboard.Store, error) {
	if path == "" {
		path = defaultLeaderboardPath(backend)
	}
	switch backend {
	case BackendFile:
		logInfo("Leaderboard stored in JSON file %s", path)
		return leaderboard.NewFileStore(path), nil
	case BackendSQLite:
		logInfo("Leaderboard stored in SQLite database %s", path)
		store, err := leaderboard.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite leaderboard: %w", err)
		}
		return store, nil
	case BackendMemory:
		logWarn("Leaderboard kept in memory only, scores are lost on restart")
		return leaderboard.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown leaderboard backend %q (want %s, %s or %s)",
			backend, BackendFile, BackendSQLite, BackendMemory)
	}
}

// openBoard loads the shared board from store. With seeding enabled an
// empty or unreadable board starts with generated entries.
func openBoard(ctx context.Context, store leaderboard.Store, seed bool) *leaderboard.Board {
	var seedFn func() []leaderboard.Entry
	if seed {
		seedFn = func() []leaderboard.Entry {
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			return leaderboard.Seed(rng, time.Now())
		}
	}
	board := leaderboard.Open(ctx, store, seedFn)
	n := len(board.Entries())
	logInfo("Leaderboard ready with %d entr%s", n, lo.Ternary(n == 1, "y", "ies"))
	return board
}
