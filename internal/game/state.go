package game

import (
	"math"
	"slices"
	"strings"

	"unscramble/internal/leaderboard"
	"unscramble/internal/words"
)

// Status is the session lifecycle phase.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Word is a game word and its scrambled form.
type Word = words.Word

// State is the whole game aggregate. Values are treated as immutable:
// Transition returns a new State and never writes through the slices of
// the one it was given.
type State struct {
	Words            []Word              `json:"words"`
	CurrentWordIndex int                 `json:"currentWordIndex"`
	Score            int                 `json:"score"`
	TimeLeft         int                 `json:"timeLeft"`
	Status           Status              `json:"gameStatus"`
	HintsUsed        int                 `json:"hintsUsed"`
	WordsSolved      int                 `json:"wordsSolved"`
	SkippedWords     int                 `json:"skippedWords"`
	RevealedLetters  []int               `json:"revealedLetters"`
	Difficulty       Difficulty          `json:"difficulty"`
	Leaderboard      []leaderboard.Entry `json:"leaderboard"`
	ScoreSubmitted   bool                `json:"scoreSubmitted"`
}

// NewState returns the canonical idle state carrying board.
func NewState(board []leaderboard.Entry) State {
	return State{
		Status:      StatusIdle,
		Difficulty:  DifficultyMedium,
		TimeLeft:    SettingsFor(DifficultyMedium).TimeLimit,
		Leaderboard: board,
	}
}

// CurrentWord returns the word being played, if any.
func (s State) CurrentWord() (Word, bool) {
	if s.CurrentWordIndex < 0 || s.CurrentWordIndex >= len(s.Words) {
		return Word{}, false
	}
	return s.Words[s.CurrentWordIndex], true
}

// IsRevealed reports whether position i of the current word was given as a hint.
func (s State) IsRevealed(i int) bool {
	return slices.Contains(s.RevealedLetters, i)
}

// HintPattern renders the current original word with unrevealed letters
// replaced by underscores, e.g. "_ p _ _ e".
func (s State) HintPattern() string {
	w, ok := s.CurrentWord()
	if !ok {
		return ""
	}
	letters := []rune(w.Original)
	parts := make([]string, len(letters))
	for i, r := range letters {
		if s.IsRevealed(i) {
			parts[i] = string(r)
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// Accuracy is the share of words solved, as a rounded percentage.
func (s State) Accuracy() int {
	if len(s.Words) == 0 {
		return 0
	}
	return int(math.Round(float64(s.WordsSolved) / float64(len(s.Words)) * 100))
}

// TimeLimit is the per-word limit of the active difficulty.
func (s State) TimeLimit() int {
	return SettingsFor(s.Difficulty).TimeLimit
}
