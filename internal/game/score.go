package game

import (
	"errors"
	"strings"
	"time"

	"unscramble/internal/leaderboard"
)

var (
	ErrNotFinished      = errors.New("game is not finished")
	ErrEmptyName        = errors.New("name is required")
	ErrAlreadySubmitted = errors.New("score already submitted")
)

// maxNameLength bounds leaderboard names, in runes.
const maxNameLength = 24

// SubmitScore records the finished game in s.Leaderboard under name.
func SubmitScore(s State, name string, now time.Time) (State, error) {
	if s.Status != StatusFinished {
		return s, ErrNotFinished
	}
	if s.ScoreSubmitted {
		return s, ErrAlreadySubmitted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}

	s.Leaderboard = leaderboard.Merge(s.Leaderboard, leaderboard.Entry{
		Name:        name,
		Score:       s.Score,
		Difficulty:  string(s.Difficulty),
		WordsSolved: s.WordsSolved,
		Date:        now.UTC(),
	})
	s.ScoreSubmitted = true
	return s, nil
}
