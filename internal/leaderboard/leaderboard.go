// Package leaderboard holds the capped, score-sorted list of past results and
// the stores it is persisted to.
package leaderboard

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"
)

// MaxEntries caps the leaderboard length.
const MaxEntries = 10

// Entry is one submitted game result.
type Entry struct {
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	Difficulty  string    `json:"difficulty"`
	WordsSolved int       `json:"wordsSolved"`
	Date        time.Time `json:"date"`
}

// Merge appends entry to entries and returns the top MaxEntries by score,
// highest first. Equal scores keep their previous relative order, so an
// existing entry stays ahead of a new one with the same score.
// The input slice is not modified.
func Merge(entries []Entry, entry Entry) []Entry {
	merged := make([]Entry, 0, len(entries)+1)
	merged = append(merged, entries...)
	merged = append(merged, entry)
	return Normalize(merged)
}

// Normalize returns a sorted, truncated copy of entries.
func Normalize(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// ForDifficulty filters entries by difficulty, keeping order.
// An empty difficulty returns every entry.
func ForDifficulty(entries []Entry, difficulty string) []Entry {
	if difficulty == "" {
		return slices.Clone(entries)
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return e.Difficulty == difficulty
	})
}

var seedNames = []string{
	"Ada", "Basil", "Cleo", "Dmitri", "Esme", "Farah", "Gus", "Hana", "Ines", "Jonah",
}

var seedDifficulties = []string{"easy", "medium", "hard"}

// Seed fabricates a plausible starting board so a fresh install does not
// show an empty table: twenty random results from the last thirty days,
// normalized to the top MaxEntries.
func Seed(rng *rand.Rand, now time.Time) []Entry {
	entries := lo.Times(20, func(_ int) Entry {
		return Entry{
			Name:        seedNames[rng.IntN(len(seedNames))],
			Score:       rng.IntN(500) + 100,
			Difficulty:  seedDifficulties[rng.IntN(len(seedDifficulties))],
			WordsSolved: rng.IntN(20) + 5,
			Date:        now.Add(-time.Duration(rng.IntN(30)) * 24 * time.Hour).UTC(),
		}
	})
	return Normalize(entries)
}
