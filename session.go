package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"unscramble/internal/game"
)

// isValidSessionID accepts only canonical UUIDs so cookie values never
// grow the session map with arbitrary keys.
func isValidSessionID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || !isValidSessionID(sessionID) {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
		logInfo("[request_id=%s] Created new session: %s", requestID(c.Request.Context()), sessionID)
	}
	return sessionID
}

// getDriver returns the session's driver, creating an idle one on first use.
func (app *App) getDriver(sessionID string) *game.Driver {
	now := time.Now()

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if s, ok := app.Sessions[sessionID]; ok {
		s.lastAccess = now
		return s.driver
	}

	d := game.NewDriver(app.Machine, app.Board, app.driverOptions())
	app.Sessions[sessionID] = &session{driver: d, lastAccess: now}
	logInfo("Started driver for session: %s (%d active)", sessionID, len(app.Sessions))
	return d
}

// sessionCount reports how many sessions currently hold a driver.
func (app *App) sessionCount() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}

// sessionMiddleware attaches the session ID and its driver to the gin context.
func (app *App) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := app.getOrCreateSession(c)
		c.Set(ctxSessionID, sessionID)
		c.Set(ctxDriver, app.getDriver(sessionID))
		c.Next()
	}
}

// driverFrom returns the driver sessionMiddleware stored. A route mounted
// without the middleware panics here, which gin recovers as a 500.
func driverFrom(c *gin.Context) *game.Driver {
	return c.MustGet(ctxDriver).(*game.Driver)
}

// sweepSessions closes and forgets sessions idle for longer than
// SessionTimeout. It returns how many were removed.
func (app *App) sweepSessions(now time.Time) int {
	app.SessionMutex.Lock()
	expired := lo.PickBy(app.Sessions, func(_ string, s *session) bool {
		return now.Sub(s.lastAccess) > app.SessionTimeout
	})
	for id := range expired {
		delete(app.Sessions, id)
	}
	app.SessionMutex.Unlock()

	for id, s := range expired {
		s.driver.Close()
		logInfo("Expired idle session: %s", id)
	}
	return len(expired)
}

// runSessionSweep calls sweepSessions every interval until ctx is done.
func (app *App) runSessionSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := app.sweepSessions(now); n > 0 {
				logInfo("Session sweep removed %d session%s, %d remaining", n, plural(n), app.sessionCount())
			}
		}
	}
}

// closeAllSessions stops every driver. Used on shutdown.
func (app *App) closeAllSessions() {
	app.SessionMutex.Lock()
	sessions := lo.Values(app.Sessions)
	app.Sessions = make(map[string]*session)
	app.SessionMutex.Unlock()

	lo.ForEach(sessions, func(s *session, _ int) {
		s.driver.Close()
	})
	logInfo("Closed %d session%s", len(sessions), plural(len(sessions)))
}
