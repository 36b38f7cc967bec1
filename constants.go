package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome        = "/"
	RouteStart       = "/start"
	RouteGuess       = "/guess"
	RouteHint        = "/hint"
	RouteSkip        = "/skip"
	RouteEnd         = "/end"
	RouteReset       = "/reset"
	RouteScore       = "/score"
	RouteGameState   = "/game-state"
	RouteAPIState    = "/api/state"
	RouteLeaderboard = "/api/leaderboard"
	RouteWebSocket   = "/ws"
	RouteHealthz     = "/healthz"
)

// Leaderboard backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Error message constants
const (
	ErrorNotPlaying        = "Start a game first."
	ErrorAlreadySolved     = "Already solved. Next word coming up."
	ErrorEmptyGuess        = "Type a word before submitting."
	ErrorUnknownDifficulty = "Pick easy, medium or hard."
	ErrorNotFinished       = "Finish the game before submitting a score."
	ErrorEmptyName         = "Enter a name for the leaderboard."
	ErrorAlreadySubmitted  = "This game is already on the leaderboard."
	ErrorInternal          = "Something went wrong. Please try again."
)

// Guess feedback shown after a submission
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

// gin context keys set by sessionMiddleware
const (
	ctxSessionID = "session_id"
	ctxDriver    = "driver"
)
