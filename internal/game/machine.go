// Package game implements the word-unscramble state machine and the session
// driver that feeds it events.
//
// Machine.Transition is the reducer: (state, event) -> state. It performs no
// I/O and keeps nothing between calls apart from the word pool and random
// source it was built with. Driver owns one State, serializes events against
// it, runs the per-second tick and the delayed advance after a correct answer.
package game

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/looplab/fsm"

	"unscramble/internal/words"
)

// EventType names one of the nine transitions.
type EventType string

const (
	EventStart           EventType = "start"
	EventNextWord        EventType = "next_word"
	EventSkipWord        EventType = "skip_word"
	EventCorrectAnswer   EventType = "correct_answer"
	EventIncorrectAnswer EventType = "incorrect_answer"
	EventUseHint         EventType = "use_hint"
	EventTimerTick       EventType = "timer_tick"
	EventEndGame         EventType = "end_game"
	EventResetGame       EventType = "reset_game"
)

// Event is a single input to the state machine. Difficulty is read by
// EventStart only.
type Event struct {
	Type       EventType  `json:"type"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Start builds a start event for d.
func Start(d Difficulty) Event {
	return Event{Type: EventStart, Difficulty: d}
}

// Machine carries the collaborators Transition needs.
type Machine struct {
	pool *words.Pool

	mu  sync.Mutex // guards rng; *rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewMachine returns a Machine drawing words from pool. A nil rng is replaced
// by a randomly seeded one.
func NewMachine(pool *words.Pool, rng *rand.Rand) *Machine {
	if pool == nil {
		panic("game: NewMachine requires a word pool")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Machine{pool: pool, rng: rng}
}

var anyStatus = []string{string(StatusIdle), string(StatusPlaying), string(StatusFinished)}

// lifecycleEvents lists the statuses each event may fire from. Dst is the
// usual destination; advance and the last timer tick may finish the game
// instead of staying in playing.
var lifecycleEvents = fsm.Events{
	{Name: string(EventStart), Src: anyStatus, Dst: string(StatusPlaying)},
	{Name: string(EventEndGame), Src: anyStatus, Dst: string(StatusFinished)},
	{Name: string(EventResetGame), Src: anyStatus, Dst: string(StatusIdle)},

	{Name: string(EventNextWord), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
	{Name: string(EventSkipWord), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
	{Name: string(EventCorrectAnswer), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
	{Name: string(EventIncorrectAnswer), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
	{Name: string(EventUseHint), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
	{Name: string(EventTimerTick), Src: []string{string(StatusPlaying)}, Dst: string(StatusPlaying)},
}

// allowed reports whether ev may fire while the game is in status.
func allowed(status Status, ev EventType) bool {
	return fsm.NewFSM(string(status), lifecycleEvents, nil).Can(string(ev))
}

// Transition returns the state that follows s after ev. Events that need a
// playing game are no-ops in any other status; unknown events are ignored.
func (m *Machine) Transition(s State, ev Event) State {
	if !allowed(s.Status, ev.Type) {
		return s
	}

	switch ev.Type {
	case EventStart:
		return m.start(s, ev.Difficulty)
	case EventEndGame:
		s.Status = StatusFinished
		return s
	case EventResetGame:
		return NewState(s.Leaderboard)
	case EventNextWord:
		return advance(s)
	case EventSkipWord:
		s.SkippedWords++
		return advance(s)
	case EventCorrectAnswer:
		if _, ok := s.CurrentWord(); !ok {
			return s
		}
		s.Score += 10
		s.WordsSolved++
		return s
	case EventIncorrectAnswer:
		return s
	case EventUseHint:
		return m.useHint(s)
	case EventTimerTick:
		if s.TimeLeft > 1 {
			s.TimeLeft--
			return s
		}
		next := advance(s)
		if next.Status == StatusFinished {
			next.TimeLeft = 0
		}
		return next
	}
	return s
}

func (m *Machine) start(s State, d Difficulty) State {
	if parsed, err := ParseDifficulty(string(d)); err == nil {
		d = parsed
	} else {
		d = DifficultyMedium
	}
	settings := SettingsFor(d)

	m.mu.Lock()
	gameWords := words.Select(m.pool, string(d), settings.WordCount, m.rng)
	m.mu.Unlock()

	next := NewState(s.Leaderboard)
	next.Words = gameWords
	next.Status = StatusPlaying
	next.TimeLeft = settings.TimeLimit
	next.Difficulty = d
	return next
}

// advance moves to the next word or finishes the game after the last one.
func advance(s State) State {
	next := s.CurrentWordIndex + 1
	if next >= len(s.Words) {
		s.Status = StatusFinished
		return s
	}
	s.CurrentWordIndex = next
	s.TimeLeft = s.TimeLimit()
	s.RevealedLetters = nil
	return s
}

func (m *Machine) useHint(s State) State {
	w, ok := s.CurrentWord()
	if !ok {
		return s
	}

	m.mu.Lock()
	idx, found := words.PickHint(w.Original, s.RevealedLetters, m.rng)
	m.mu.Unlock()
	if !found {
		return s
	}

	s.Score = max(0, s.Score-5)
	s.HintsUsed++
	revealed := make([]int, 0, len(s.RevealedLetters)+1)
	revealed = append(revealed, s.RevealedLetters...)
	s.RevealedLetters = append(revealed, idx)
	return s
}

// Pool returns the word pool games are drawn from.
func (m *Machine) Pool() *words.Pool {
	return m.pool
}

// cloneState copies the slices a caller might hold on to.
func cloneState(s State) State {
	s.RevealedLetters = slices.Clone(s.RevealedLetters)
	s.Leaderboard = slices.Clone(s.Leaderboard)
	return s
}
