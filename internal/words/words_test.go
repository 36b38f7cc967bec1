package words

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func sortedLetters(s string) string {
	r := []rune(s)
	slices.Sort(r)
	return string(r)
}

func TestScramblePermutesAndDiffers(t *testing.T) {
	rng := testRand()
	for _, w := range []string{"ab", "apple", "banana", "abab", "kangaroo", "zucchini", "aab"} {
		for range 50 {
			got := Scramble(w, rng)
			if got == w {
				t.Fatalf("Scramble(%q) returned the original", w)
			}
			if sortedLetters(got) != sortedLetters(w) {
				t.Fatalf("Scramble(%q) = %q, not a permutation", w, got)
			}
		}
	}
}

func TestScrambleDegenerateWords(t *testing.T) {
	rng := testRand()
	for _, w := range []string{"", "a", "zzz", "oooo"} {
		if got := Scramble(w, rng); got != w {
			t.Errorf("Scramble(%q) = %q, want unchanged", w, got)
		}
	}
}

func TestCanScramble(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"a":     false,
		"aaa":   false,
		"ab":    true,
		"aab":   true,
		"apple": true,
	}
	for w, want := range cases {
		if got := CanScramble(w); got != want {
			t.Errorf("CanScramble(%q) = %v, want %v", w, got, want)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		guess, original string
		want            bool
	}{
		{"Apple ", "apple", true},
		{"  APPLE", "apple", true},
		{"apple", "Apple", true},
		{"aple", "apple", false},
		{"", "apple", false},
		{"app le", "apple", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.guess, tt.original); got != tt.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.guess, tt.original, got, tt.want)
		}
	}
}

func TestSelectRespectsDifficultyAndCount(t *testing.T) {
	pool, err := LoadPool("")
	if err != nil {
		t.Fatalf("LoadPool: %v", err)
	}
	rng := testRand()
	byWord := make(map[string]string)
	for _, e := range pool.entries {
		byWord[e.Word] = e.Difficulty
	}

	for _, d := range []string{Easy, Medium, Hard} {
		got := Select(pool, d, 8, rng)
		if len(got) != min(8, pool.Count(d)) {
			t.Errorf("Select(%s) returned %d words, want %d", d, len(got), min(8, pool.Count(d)))
		}
		seen := make(map[string]bool)
		for _, w := range got {
			if byWord[w.Original] != d {
				t.Errorf("Select(%s) returned %q tagged %q", d, w.Original, byWord[w.Original])
			}
			if seen[w.Original] {
				t.Errorf("Select(%s) returned %q twice", d, w.Original)
			}
			seen[w.Original] = true
			if w.Scrambled == w.Original {
				t.Errorf("word %q was not scrambled", w.Original)
			}
		}
	}
}

func TestSelectUndersizedPool(t *testing.T) {
	pool := NewPool([]Entry{
		{Word: "apple", Difficulty: Easy},
		{Word: "pear", Difficulty: Easy},
		{Word: "castle", Difficulty: Medium},
	})
	got := Select(pool, Easy, 8, testRand())
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %d", len(got))
	}
	if got := Select(pool, Hard, 12, testRand()); len(got) != 0 {
		t.Errorf("expected no hard words, got %v", got)
	}
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	pool := NewPool([]Entry{
		{Word: "apple", Difficulty: Easy},
		{Word: "pear", Difficulty: Easy},
		{Word: "plum", Difficulty: Easy},
	})
	before := slices.Clone(pool.entries)
	Select(pool, Easy, 3, testRand())
	if !slices.Equal(before, pool.entries) {
		t.Errorf("pool order changed: %v -> %v", before, pool.entries)
	}
}

func TestPickHintExhaustsPositions(t *testing.T) {
	rng := testRand()
	original := "rocket"
	var revealed []int
	for range len(original) {
		idx, ok := PickHint(original, revealed, rng)
		if !ok {
			t.Fatalf("PickHint ran out early after %v", revealed)
		}
		if idx < 0 || idx >= len(original) {
			t.Fatalf("PickHint returned out-of-range index %d", idx)
		}
		if slices.Contains(revealed, idx) {
			t.Fatalf("PickHint returned already revealed index %d", idx)
		}
		revealed = append(revealed, idx)
	}
	if _, ok := PickHint(original, revealed, rng); ok {
		t.Error("PickHint should report no positions left")
	}
}

func TestLoadPoolFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.json")
	content := `{"words":[
		{"word":" Apple ","difficulty":"EASY"},
		{"word":"apple","difficulty":"easy"},
		{"word":"ice-cream","difficulty":"easy"},
		{"word":"castle","difficulty":"legendary"},
		{"word":"castle","difficulty":"medium"}
	]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	pool, err := LoadPool(path)
	if err != nil {
		t.Fatalf("LoadPool: %v", err)
	}
	want := []Entry{{Word: "apple", Difficulty: Easy}, {Word: "castle", Difficulty: Medium}}
	if !slices.Equal(pool.entries, want) {
		t.Errorf("LoadPool entries = %v, want %v", pool.entries, want)
	}
}

func TestLoadPoolErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPool(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadPool(bad); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	_ = os.WriteFile(empty, []byte(`{"words":[]}`), 0644)
	if _, err := LoadPool(empty); err != ErrEmptyPool {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}
