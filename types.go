package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"unscramble/internal/game"
	"unscramble/internal/leaderboard"
	"unscramble/internal/words"
)

type contextKey string

// Config holds everything read from the environment at startup.
type Config struct {
	Port              string
	IsProduction      bool
	LogLevel          string
	SessionTimeout    time.Duration
	CookieMaxAge      time.Duration
	StaticCacheAge    time.Duration
	RateLimitRPS      int
	RateLimitBurst    int
	TickInterval      time.Duration
	AdvanceDelay      time.Duration
	WordsFile         string
	LeaderboardStore  string
	LeaderboardPath   string
	SeedLeaderboard   bool
	SessionSweepEvery time.Duration
}

// App wires the game to the HTTP layer. One App serves every session.
type App struct {
	Config

	StartTime time.Time
	Machine   *game.Machine
	Board     *leaderboard.Board
	Store     leaderboard.Store

	Sessions     map[string]*session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// session is one browser's game. lastAccess is guarded by App.SessionMutex.
type session struct {
	driver     *game.Driver
	lastAccess time.Time
}

// NewApp builds an App around an already loaded pool and board.
func NewApp(cfg Config, pool *words.Pool, store leaderboard.Store, board *leaderboard.Board) *App {
	return &App{
		Config:     cfg,
		StartTime:  time.Now(),
		Machine:    game.NewMachine(pool, nil),
		Board:      board,
		Store:      store,
		Sessions:   make(map[string]*session),
		LimiterMap: make(map[string]*rate.Limiter),
	}
}

func (app *App) driverOptions() game.Options {
	return game.Options{
		TickInterval: app.TickInterval,
		AdvanceDelay: app.AdvanceDelay,
	}
}
