package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"unscramble/internal/leaderboard"
	"unscramble/internal/words"
)

var (
	ErrNotPlaying    = errors.New("game is not in progress")
	ErrAlreadySolved = errors.New("word already solved")
	ErrEmptyGuess    = errors.New("guess is empty")
)

const (
	DefaultTickInterval = time.Second
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

// Options tune a Driver's timing. Zero values take the defaults.
type Options struct {
	TickInterval time.Duration
	AdvanceDelay time.Duration
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.AdvanceDelay <= 0 {
		o.AdvanceDelay = DefaultAdvanceDelay
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Driver owns one session's State and is its only mutator.
//
// Every event is applied under mu, so no reader sees a half-applied
// transition. gen is bumped whenever the game, the word or the status
// changes; the delayed advance scheduled after a correct answer carries the
// gen it was created under and is dropped if that no longer matches.
type Driver struct {
	machine *Machine
	board   *leaderboard.Board
	opts    Options

	mu       sync.Mutex
	state    State
	gen      uint64
	stopTick context.CancelFunc
	advance  *time.Timer
	closed   bool

	subMu   sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// NewDriver returns an idle driver. Missing collaborators are a wiring bug
// and panic immediately.
func NewDriver(machine *Machine, board *leaderboard.Board, opts Options) *Driver {
	if machine == nil {
		panic("game: NewDriver requires a Machine")
	}
	if board == nil {
		panic("game: NewDriver requires a leaderboard Board")
	}
	return &Driver{
		machine: machine,
		board:   board,
		opts:    opts.withDefaults(),
		state:   NewState(board.Entries()),
		subs:    make(map[int]chan State),
	}
}

// Snapshot returns a copy of the current state.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneState(d.state)
}

// Dispatch applies ev and returns the resulting state.
func (d *Driver) Dispatch(ev Event) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return cloneState(d.state)
	}
	return d.applyLocked(ev)
}

// Guess checks text against the current word and dispatches the matching
// answer event. A correct guess schedules the move to the next word after
// AdvanceDelay; further guesses on that word return ErrAlreadySolved.
func (d *Driver) Guess(text string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.state.Status != StatusPlaying {
		return false, ErrNotPlaying
	}
	w, ok := d.state.CurrentWord()
	if !ok {
		return false, ErrNotPlaying
	}
	if d.advance != nil {
		return false, ErrAlreadySolved
	}
	if strings.TrimSpace(text) == "" {
		return false, ErrEmptyGuess
	}

	if !words.CheckAnswer(text, w.Original) {
		d.applyLocked(Event{Type: EventIncorrectAnswer})
		return false, nil
	}

	d.applyLocked(Event{Type: EventCorrectAnswer})
	gen := d.gen
	d.advance = time.AfterFunc(d.opts.AdvanceDelay, func() { d.fireAdvance(gen) })
	return true, nil
}

// Hint reveals one more letter of the current word. A word that was just
// guessed correctly is waiting to advance, so it gets ErrAlreadySolved.
func (d *Driver) Hint() (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.state.Status != StatusPlaying {
		return cloneState(d.state), ErrNotPlaying
	}
	if d.advance != nil {
		return cloneState(d.state), ErrAlreadySolved
	}
	return d.applyLocked(Event{Type: EventUseHint}), nil
}

// SubmitScore adds the finished game to the shared leaderboard under name
// and persists it. A failed save is logged; the board still changes.
func (d *Driver) SubmitScore(ctx context.Context, name string) (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.opts.Now()
	if _, err := SubmitScore(d.state, name, now); err != nil {
		return cloneState(d.state), err
	}

	var (
		submitted State
		mergeErr  error
	)
	entries, err := d.board.Update(ctx, func(current []leaderboard.Entry) []leaderboard.Entry {
		s := d.state
		s.Leaderboard = current
		submitted, mergeErr = SubmitScore(s, name, now)
		if mergeErr != nil {
			return current
		}
		return submitted.Leaderboard
	})
	if mergeErr != nil {
		return cloneState(d.state), mergeErr
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to persist leaderboard")
	}
	submitted.Leaderboard = entries
	d.state = submitted
	d.publishLocked()
	return cloneState(d.state), nil
}

// Subscribe returns a channel that always holds the most recent state,
// starting with the current one. Slow readers miss intermediate states
// rather than blocking the driver. cancel is safe to call more than once.
func (d *Driver) Subscribe() (<-chan State, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subMu.Lock()
	defer d.subMu.Unlock()

	ch := make(chan State, 1)
	if d.closed {
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	ch <- cloneState(d.state)

	return ch, func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
	}
}

// Close stops the ticker and any pending advance and closes subscriber
// channels. Later events are ignored.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.stopTickerLocked()
	d.cancelAdvanceLocked()

	d.subMu.Lock()
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
	d.subMu.Unlock()
}

func (d *Driver) applyLocked(ev Event) State {
	prev := d.state
	next := d.machine.Transition(prev, ev)

	fresh := ev.Type == EventStart || ev.Type == EventResetGame
	if fresh {
		next.Leaderboard = d.board.Entries()
	}
	if fresh || next.CurrentWordIndex != prev.CurrentWordIndex || next.Status != prev.Status {
		d.gen++
		d.cancelAdvanceLocked()
	}
	d.state = next

	if ev.Type == EventStart {
		d.stopTickerLocked()
	}
	d.syncTickerLocked()
	d.publishLocked()
	return cloneState(next)
}

// syncTickerLocked keeps the ticker running exactly while playing.
func (d *Driver) syncTickerLocked() {
	playing := d.state.Status == StatusPlaying
	switch {
	case playing && d.stopTick == nil:
		ctx, cancel := context.WithCancel(context.Background())
		d.stopTick = cancel
		go d.runTicker(ctx)
	case !playing:
		d.stopTickerLocked()
	}
}

func (d *Driver) stopTickerLocked() {
	if d.stopTick != nil {
		d.stopTick()
		d.stopTick = nil
	}
}

func (d *Driver) cancelAdvanceLocked() {
	if d.advance != nil {
		d.advance.Stop()
		d.advance = nil
	}
}

func (d *Driver) runTicker(ctx context.Context) {
	t := time.NewTicker(d.opts.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.mu.Lock()
			// The ticker may have been replaced while this tick waited for the lock.
			if ctx.Err() == nil {
				d.applyLocked(Event{Type: EventTimerTick})
			}
			d.mu.Unlock()
		}
	}
}

func (d *Driver) fireAdvance(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || gen != d.gen {
		log.Debug().Uint64("gen", gen).Uint64("current", d.gen).Msg("dropping stale advance")
		return
	}
	d.advance = nil
	d.applyLocked(Event{Type: EventNextWord})
}

// publishLocked hands the current state to every subscriber, replacing
// anything they have not read yet.
func (d *Driver) publishLocked() {
	if d.closed {
		return
	}
	s := cloneState(d.state)
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for _, ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
