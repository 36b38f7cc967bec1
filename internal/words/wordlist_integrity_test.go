package words

import (
	"encoding/json"
	"strings"
	"testing"
)

// largestRound is the word count of the longest game (hard).
const largestRound = 12

func decodeEmbedded(t *testing.T) []Entry {
	t.Helper()
	var pf poolFile
	if err := json.Unmarshal(embeddedPool, &pf); err != nil {
		t.Fatalf("failed to decode embedded wordlist.json: %v", err)
	}
	return pf.Words
}

func TestEmbeddedWordsNoDuplicates(t *testing.T) {
	seen := make(map[string]struct{})
	for _, e := range decodeEmbedded(t) {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if _, ok := seen[w]; ok {
			t.Errorf("duplicate word in wordlist.json: %s", w)
		}
		seen[w] = struct{}{}
	}
}

func TestEmbeddedWordsAreValid(t *testing.T) {
	for _, e := range decodeEmbedded(t) {
		if !IsKnownDifficulty(e.Difficulty) {
			t.Errorf("word %q has unknown difficulty %q", e.Word, e.Difficulty)
		}
		if !isLetters(e.Word) || e.Word != strings.ToLower(e.Word) {
			t.Errorf("word %q is not lowercase letters only", e.Word)
		}
		if !CanScramble(e.Word) {
			t.Errorf("word %q has a single arrangement", e.Word)
		}
	}
}

func TestEmbeddedPoolFillsEveryDifficulty(t *testing.T) {
	pool, err := LoadPool("")
	if err != nil {
		t.Fatalf("LoadPool: %v", err)
	}
	for _, d := range []string{Easy, Medium, Hard} {
		if n := pool.Count(d); n < largestRound {
			t.Errorf("difficulty %s has %d words, want at least %d", d, n, largestRound)
		}
	}
}
