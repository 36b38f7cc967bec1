// Package words owns the difficulty-tagged word pool and the helpers that turn
// pool entries into playable scrambled words.
//
// The pool comes from WORDS_FILE when set, otherwise from the embedded
// wordlist.json. Entries are normalized to lowercase letters and deduplicated
// per difficulty; anything else is skipped with a warning.
package words

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Difficulty tags used in the pool file.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// ErrEmptyPool is returned when no usable entry survives loading.
var ErrEmptyPool = errors.New("words: pool is empty")

//go:embed wordlist.json
var embeddedPool []byte

// Entry is a single pool word tagged with its difficulty.
type Entry struct {
	Word       string `json:"word"`
	Difficulty string `json:"difficulty"`
}

// poolFile is the on-disk JSON layout.
type poolFile struct {
	Words []Entry `json:"words"`
}

// Pool is the read-only word source loaded once at startup.
type Pool struct {
	entries []Entry
}

// NewPool builds a pool from entries, applying the same normalization as LoadPool.
func NewPool(entries []Entry) *Pool {
	return &Pool{entries: normalize(entries)}
}

// LoadPool reads the pool from path, or from the embedded list when path is empty.
func LoadPool(path string) (*Pool, error) {
	data := embeddedPool
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read word pool %s: %w", path, err)
		}
		data = b
	}

	var pf poolFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("decode word pool: %w", err)
	}

	pool := NewPool(pf.Words)
	if pool.Len() == 0 {
		return nil, ErrEmptyPool
	}
	return pool, nil
}

// Len reports the number of usable entries.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Count reports the number of entries tagged with difficulty.
func (p *Pool) Count(difficulty string) int {
	return lo.CountBy(p.entries, func(e Entry) bool { return e.Difficulty == difficulty })
}

// IsKnownDifficulty reports whether tag is one of Easy, Medium or Hard.
func IsKnownDifficulty(tag string) bool {
	switch tag {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

func normalize(entries []Entry) []Entry {
	seen := make(map[Entry]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Word = strings.ToLower(strings.TrimSpace(e.Word))
		e.Difficulty = strings.ToLower(strings.TrimSpace(e.Difficulty))
		if !IsKnownDifficulty(e.Difficulty) {
			log.Warn().Str("word", e.Word).Str("difficulty", e.Difficulty).Msg("skipping word with unknown difficulty")
			continue
		}
		if e.Word == "" || !isLetters(e.Word) {
			log.Warn().Str("word", e.Word).Msg("skipping word with non-letter characters")
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
