package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"unscramble/internal/game"
	"unscramble/internal/leaderboard"
	"unscramble/internal/types"
	"unscramble/internal/words"
)

const pageTitle = "Unscramble - Race the Clock"

// errorMessages maps game errors to what the player sees.
var errorMessages = map[error]string{
	game.ErrNotPlaying:        ErrorNotPlaying,
	game.ErrAlreadySolved:     ErrorAlreadySolved,
	game.ErrEmptyGuess:        ErrorEmptyGuess,
	game.ErrUnknownDifficulty: ErrorUnknownDifficulty,
	game.ErrNotFinished:       ErrorNotFinished,
	game.ErrEmptyName:         ErrorEmptyName,
	game.ErrAlreadySubmitted:  ErrorAlreadySubmitted,
}

// userMessage returns the player-facing text for err.
func userMessage(err error) string {
	for target, msg := range errorMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return ErrorInternal
}

// difficultyOption is one choice on the start form.
type difficultyOption struct {
	Name string
	game.Settings
}

// viewData builds the template data shared by the page and the fragment.
func (app *App) viewData(s game.State) gin.H {
	return gin.H{
		"title":        pageTitle,
		"game":         types.NewSnapshot(s),
		"error":        "",
		"feedback":     "",
		"difficulties": lo.Map(game.Difficulties(), func(d game.Difficulty, _ int) difficultyOption {
			return difficultyOption{Name: string(d), Settings: game.SettingsFor(d)}
		}),
	}
}

// respond renders the game-content fragment for HTMX requests and
// redirects everything else back to the page.
func (app *App) respond(c *gin.Context, s game.State, status int, errMsg, feedback string) {
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, RouteHome)
		return
	}
	if errMsg != "" {
		triggerServerError(c, errMsg)
	}
	data := app.viewData(s)
	data["error"] = errMsg
	data["feedback"] = feedback
	c.HTML(status, "game-content", data)
}

// homeHandler renders the main game page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	d := driverFrom(c)
	c.HTML(http.StatusOK, "index.html", app.viewData(d.Snapshot()))
}

// gameStateHandler renders the current game as an HTML fragment.
func (app *App) gameStateHandler(c *gin.Context) {
	d := driverFrom(c)
	c.HTML(http.StatusOK, "game-content", app.viewData(d.Snapshot()))
}

// startHandler begins a new game at the posted difficulty.
func (app *App) startHandler(c *gin.Context) {
	d := driverFrom(c)
	difficulty, err := game.ParseDifficulty(c.PostForm("difficulty"))
	if err != nil {
		logWarn("[request_id=%s] %v", requestID(c.Request.Context()), err)
		app.respond(c, d.Snapshot(), http.StatusBadRequest, userMessage(err), "")
		return
	}
	s := d.Dispatch(game.Start(difficulty))
	logInfo("[request_id=%s] Session %s started a %s game with %d words",
		requestID(c.Request.Context()), c.GetString(ctxSessionID), difficulty, len(s.Words))
	app.respond(c, s, http.StatusOK, "", "")
}

// guessHandler checks the posted guess against the current word.
func (app *App) guessHandler(c *gin.Context) {
	d := driverFrom(c)
	correct, err := d.Guess(c.PostForm("guess"))
	if err != nil {
		app.respond(c, d.Snapshot(), http.StatusOK, userMessage(err), "")
		return
	}
	app.respond(c, d.Snapshot(), http.StatusOK, "", lo.Ternary(correct, FeedbackCorrect, FeedbackIncorrect))
}

// eventHandler returns a handler that dispatches one fixed event.
func (app *App) eventHandler(ev game.EventType) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := driverFrom(c)
		s := d.Dispatch(game.Event{Type: ev})
		logInfo("[request_id=%s] Session %s: %s -> %s",
			requestID(c.Request.Context()), c.GetString(ctxSessionID), ev, s.Status)
		app.respond(c, s, http.StatusOK, "", "")
	}
}

// hintHandler reveals a letter unless the word is already solved.
func (app *App) hintHandler(c *gin.Context) {
	d := driverFrom(c)
	s, err := d.Hint()
	if err != nil {
		app.respond(c, s, http.StatusOK, userMessage(err), "")
		return
	}
	logInfo("[request_id=%s] Session %s: hint %d, score %d",
		requestID(c.Request.Context()), c.GetString(ctxSessionID), s.HintsUsed, s.Score)
	app.respond(c, s, http.StatusOK, "", "")
}

// scoreHandler submits the finished game to the leaderboard.
func (app *App) scoreHandler(c *gin.Context) {
	d := driverFrom(c)
	s, err := d.SubmitScore(c.Request.Context(), c.PostForm("name"))
	if err != nil {
		app.respond(c, s, http.StatusOK, userMessage(err), "")
		return
	}
	logInfo("[request_id=%s] Session %s submitted score %d (%s)",
		requestID(c.Request.Context()), c.GetString(ctxSessionID), s.Score, s.Difficulty)
	app.respond(c, s, http.StatusOK, "", "")
}

// apiStateHandler returns the session's snapshot as JSON.
func (app *App) apiStateHandler(c *gin.Context) {
	d := driverFrom(c)
	c.JSON(http.StatusOK, types.NewSnapshot(d.Snapshot()))
}

// leaderboardHandler returns the shared leaderboard, optionally filtered by difficulty.
func (app *App) leaderboardHandler(c *gin.Context) {
	entries := nonNilEntries(app.Board.Entries())
	raw := c.Query("difficulty")
	if raw == "" {
		c.JSON(http.StatusOK, types.LeaderboardResponse{Entries: entries})
		return
	}
	difficulty, err := game.ParseDifficulty(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, types.LeaderboardResponse{
		Difficulty: string(difficulty),
		Entries:    nonNilEntries(leaderboard.ForDifficulty(entries, string(difficulty))),
	})
}

// nonNilEntries makes an empty board encode as [] rather than null.
func nonNilEntries(entries []leaderboard.Entry) []leaderboard.Entry {
	if entries == nil {
		return []leaderboard.Entry{}
	}
	return entries
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:   "ok",
		Env:      lo.Ternary(app.IsProduction, "production", "development"),
		Uptime:   formatUptime(time.Since(app.StartTime)),
		Sessions: app.sessionCount(),
		Words: map[string]int{
			words.Easy:   app.Machine.Pool().Count(words.Easy),
			words.Medium: app.Machine.Pool().Count(words.Medium),
			words.Hard:   app.Machine.Pool().Count(words.Hard),
		},
		Backend:   app.LeaderboardStore,
		Positions: len(app.Board.Entries()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
