package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		sessionID = ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getController returns the lifecycle controller for a session, creating one
// when the session is new and re-binding when the day has rolled over. Each
// controller owns its session's day store and today's target word.
func (app *App) getController(sessionID string) (*Controller, error) {
	now := time.Now()
	today := dateKey(now)

	app.SessionMutex.RLock()
	ctrl, exists := app.Controllers[sessionID]
	app.SessionMutex.RUnlock()
	if exists && ctrl.DayKey() == today {
		return ctrl, nil
	}

	path, err := playerStorePath(app.DataDir, sessionID)
	if err != nil {
		logWarn("Rejecting invalid session ID: %s", sessionID)
		return nil, err
	}

	ctrl = NewController(NewDayStore(path), dailyTarget(app.WordList, now), ControllerConfig{
		Telemetry: app.Telemetry,
	})

	app.SessionMutex.Lock()
	app.Controllers[sessionID] = ctrl
	app.SessionMutex.Unlock()
	logInfo("Bound controller for session %s (day %s)", sessionID, today)
	return ctrl, nil
}

// liveControllers snapshots the controller registry for the idle sweeper.
func (app *App) liveControllers() []*Controller {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	out := make([]*Controller, 0, len(app.Controllers))
	for _, ctrl := range app.Controllers {
		out = append(out, ctrl)
	}
	return out
}

// dropStaleControllers evicts controllers bound to a previous day so their
// memory is reclaimed; the persisted records stay in each session's store.
func (app *App) dropStaleControllers() {
	today := dateKey(time.Now())
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	for id, ctrl := range app.Controllers {
		if ctrl.DayKey() != today {
			delete(app.Controllers, id)
		}
	}
}
