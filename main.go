package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"unscramble/internal/game"
	"unscramble/internal/words"
)

// loadConfig reads the environment. Call after godotenv.Load.
func loadConfig() Config {
	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	backend := strings.ToLower(getEnvString("LEADERBOARD_BACKEND", BackendFile))
	return Config{
		Port:              getEnvString("PORT", "8080"),
		IsProduction:      isProduction,
		LogLevel:          getEnvString("LOG_LEVEL", "info"),
		SessionTimeout:    getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:      getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge:    getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:      getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 10),
		TickInterval:      getEnvDuration("TICK_INTERVAL", game.DefaultTickInterval),
		AdvanceDelay:      getEnvDuration("ADVANCE_DELAY", game.DefaultAdvanceDelay),
		WordsFile:         getEnvString("WORDS_FILE", ""),
		LeaderboardStore:  backend,
		LeaderboardPath:   getEnvString("LEADERBOARD_PATH", ""),
		SeedLeaderboard:   getEnvBool("LEADERBOARD_SEED", true),
		SessionSweepEvery: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	setupLogging(cfg.LogLevel, cfg.IsProduction)
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logInfo("Starting Unscramble in %s mode", map[bool]string{true: "production", false: "development"}[cfg.IsProduction])

	pool, err := words.LoadPool(cfg.WordsFile)
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Loaded %d words (easy %d, medium %d, hard %d)",
		pool.Len(), pool.Count(words.Easy), pool.Count(words.Medium), pool.Count(words.Hard))

	store, err := openLeaderboardStore(cfg.LeaderboardStore, cfg.LeaderboardPath)
	if err != nil {
		logFatal("Failed to open leaderboard store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := openBoard(ctx, store, cfg.SeedLeaderboard)
	app := NewApp(cfg, pool, store, board)

	templatesDir, staticDir := "templates", "static"
	if cfg.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templatesDir, staticDir = "dist/templates", "dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}
	router := app.newRouter(templatesDir, staticDir)

	go app.runSessionSweep(ctx, cfg.SessionSweepEvery)
	app.startServer(ctx, router)
}

// newRouter builds the engine with every route and middleware mounted.
func (app *App) newRouter(templatesDir, staticDir string) *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts", RouteWebSocket})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(app.cacheHeadersMiddleware())

	router.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	})
	router.LoadHTMLGlob(templatesDir + "/*.html")
	router.Static("/static", staticDir)

	router.GET(RouteHealthz, app.healthzHandler)
	router.GET(RouteLeaderboard, app.leaderboardHandler)

	play := router.Group("/", app.sessionMiddleware())
	play.GET(RouteHome, app.homeHandler)
	play.GET(RouteGameState, app.gameStateHandler)
	play.GET(RouteAPIState, app.apiStateHandler)
	play.GET(RouteWebSocket, app.wsHandler)

	limited := play.Group("/", app.rateLimitMiddleware())
	limited.POST(RouteStart, app.startHandler)
	limited.POST(RouteGuess, app.guessHandler)
	limited.POST(RouteHint, app.hintHandler)
	limited.POST(RouteSkip, app.eventHandler(game.EventSkipWord))
	limited.POST(RouteEnd, app.eventHandler(game.EventEndGame))
	limited.POST(RouteReset, app.eventHandler(game.EventResetGame))
	limited.POST(RouteScore, app.scoreHandler)

	return router
}

// startServer serves until ctx is cancelled, then shuts down the HTTP
// server, every session driver and the leaderboard store.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logInfo("Server starting on http://localhost:%s", app.Port)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logFatal("Server failed to start: %v", err)
		}
	case <-ctx.Done():
		logInfo("Shutdown signal received, shutting down server gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logWarn("HTTP server Shutdown: %v", err)
	}
	app.closeAllSessions()
	if err := app.Store.Close(); err != nil {
		logWarn("Failed to close leaderboard store: %v", err)
	}
	logInfo("Server shutdown complete")
}
