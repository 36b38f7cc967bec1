package types

import (
	"strings"

	"github.com/samber/lo"

	"unscramble/internal/game"
	"unscramble/internal/leaderboard"
	"unscramble/internal/words"
)

// Snapshot is the client view of a game. Original and Answers are only
// filled once the game is finished, so no answer reaches the page early.
type Snapshot struct {
	Status         string              `json:"status"`
	Difficulty     string              `json:"difficulty"`
	Scrambled      string              `json:"scrambled"`
	Original       string              `json:"original,omitempty"`
	Answers        []string            `json:"answers,omitempty"`
	HintPattern    string              `json:"hintPattern"`
	WordIndex      int                 `json:"wordIndex"`
	WordTotal      int                 `json:"wordTotal"`
	TimeLeft       int                 `json:"timeLeft"`
	TimeLimit      int                 `json:"timeLimit"`
	Score          int                 `json:"score"`
	HintsUsed      int                 `json:"hintsUsed"`
	WordsSolved    int                 `json:"wordsSolved"`
	SkippedWords   int                 `json:"skippedWords"`
	Accuracy       int                 `json:"accuracy"`
	ScoreSubmitted bool                `json:"scoreSubmitted"`
	Leaderboard    []leaderboard.Entry `json:"leaderboard"`
}

type LeaderboardResponse struct {
	Difficulty string              `json:"difficulty,omitempty"`
	Entries    []leaderboard.Entry `json:"entries"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Env       string         `json:"env"`
	Uptime    string         `json:"uptime"`
	Sessions  int            `json:"sessions"`
	Words     map[string]int `json:"words_loaded"`
	Backend   string         `json:"leaderboard_backend"`
	Positions int            `json:"leaderboard_entries"`
	Timestamp string         `json:"timestamp"`
}

func NewSnapshot(s game.State) Snapshot {
	snap := Snapshot{
		Status:         string(s.Status),
		Difficulty:     string(s.Difficulty),
		HintPattern:    s.HintPattern(),
		WordTotal:      len(s.Words),
		TimeLeft:       s.TimeLeft,
		TimeLimit:      s.TimeLimit(),
		Score:          s.Score,
		HintsUsed:      s.HintsUsed,
		WordsSolved:    s.WordsSolved,
		SkippedWords:   s.SkippedWords,
		Accuracy:       s.Accuracy(),
		ScoreSubmitted: s.ScoreSubmitted,
		Leaderboard:    s.Leaderboard,
	}
	if snap.Leaderboard == nil {
		snap.Leaderboard = []leaderboard.Entry{}
	}
	if s.Status == game.StatusFinished {
		snap.Answers = lo.Map(s.Words, func(w words.Word, _ int) string { return w.Original })
	}
	if w, ok := s.CurrentWord(); ok {
		snap.Scrambled = w.Scrambled
		snap.WordIndex = s.CurrentWordIndex + 1
		if s.Status == game.StatusFinished {
			snap.Original = w.Original
		}
	}
	return snap
}

// Playing reports whether the game accepts guesses. Templates use it.
func (s Snapshot) Playing() bool {
	return s.Status == string(game.StatusPlaying)
}

func (s Snapshot) Finished() bool {
	return s.Status == string(game.StatusFinished)
}

// Letters splits the scrambled word into tiles.
func (s Snapshot) Letters() []string {
	return strings.Split(s.Scrambled, "")
}

// Urgent marks the last few seconds of the word timer.
func (s Snapshot) Urgent() bool {
	return s.Playing() && s.TimeLeft <= 5
}
