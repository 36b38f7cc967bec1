package words

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

// maxScrambleAttempts bounds the reshuffle loop; rotation covers the rest.
const maxScrambleAttempts = 8

// Word is a pool word paired with its scrambled form.
type Word struct {
	Original  string `json:"original"`
	Scrambled string `json:"scrambled"`
}

// CanScramble reports whether word has more than one letter arrangement.
func CanScramble(word string) bool {
	runes := []rune(word)
	for _, r := range runes[min(1, len(runes)):] {
		if r != runes[0] {
			return true
		}
	}
	return false
}

// Scramble returns a random permutation of word's letters that differs from
// word whenever CanScramble(word) holds. Otherwise word is returned as is.
func Scramble(word string, rng *rand.Rand) string {
	if !CanScramble(word) {
		return word
	}
	letters := []rune(word)
	for range maxScrambleAttempts {
		rng.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if s := string(letters); s != word {
			return s
		}
	}
	// A one-step rotation only equals the input when every letter is the same.
	orig := []rune(word)
	return string(append(orig[1:], orig[0]))
}

// Select samples up to count entries tagged difficulty without replacement and
// scrambles each one. Fewer matches than count yields all of them.
func Select(pool *Pool, difficulty string, count int, rng *rand.Rand) []Word {
	candidates := lo.Filter(pool.entries, func(e Entry, _ int) bool {
		return e.Difficulty == difficulty
	})
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if count < len(candidates) {
		candidates = candidates[:max(count, 0)]
	}
	return lo.Map(candidates, func(e Entry, _ int) Word {
		return Word{Original: e.Word, Scrambled: Scramble(e.Word, rng)}
	})
}

// CheckAnswer reports whether guess matches original, ignoring case and
// surrounding whitespace.
func CheckAnswer(guess, original string) bool {
	return strings.ToLower(strings.TrimSpace(guess)) == strings.ToLower(original)
}

// PickHint chooses a random letter position of original that is not in
// revealed. The second result is false once every position is revealed.
func PickHint(original string, revealed []int, rng *rand.Rand) (int, bool) {
	unrevealed := lo.Without(lo.Range(len([]rune(original))), revealed...)
	if len(unrevealed) == 0 {
		return 0, false
	}
	return unrevealed[rng.IntN(len(unrevealed))], true
}
