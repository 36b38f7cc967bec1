package game

import (
	"errors"
	"fmt"
	"strings"

	"unscramble/internal/words"
)

// Difficulty selects the word pool filter, word count and per-word time limit.
type Difficulty string

const (
	DifficultyEasy   Difficulty = words.Easy
	DifficultyMedium Difficulty = words.Medium
	DifficultyHard   Difficulty = words.Hard
)

// ErrUnknownDifficulty is returned by ParseDifficulty for unrecognised names.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Settings are the fixed parameters of a difficulty.
type Settings struct {
	WordCount int
	TimeLimit int // seconds per word
}

// SettingsFor returns the settings of d. Unknown values get medium's.
func SettingsFor(d Difficulty) Settings {
	switch d {
	case DifficultyEasy:
		return Settings{WordCount: 8, TimeLimit: 45}
	case DifficultyHard:
		return Settings{WordCount: 12, TimeLimit: 20}
	default:
		return Settings{WordCount: 10, TimeLimit: 30}
	}
}

// ParseDifficulty maps user input to a Difficulty. Empty input means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Difficulties lists every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}
