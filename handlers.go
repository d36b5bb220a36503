package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// keyRequest is the body of a POST /key call: one keystroke.
type keyRequest struct {
	Key string `json:"key" binding:"required"`
}

// stateHandler returns the full engine state for the session. Serving state
// doubles as the "page became visible" idle check.
func (app *App) stateHandler(c *gin.Context) {
	ctrl, ok := app.sessionController(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// keyHandler feeds a single keystroke into the engine and returns the
// submission outcome together with the refreshed state.
func (app *App) keyHandler(c *gin.Context) {
	ctrl, ok := app.sessionController(c)
	if !ok {
		return
	}

	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing key."})
		return
	}

	result := ctrl.HandleKey(req.Key)
	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"state":  ctrl.Snapshot(),
	})
}

// newAttemptHandler starts a fresh attempt if quota and lifecycle allow. A
// refused start is not an error; the response just reports started=false.
func (app *App) newAttemptHandler(c *gin.Context) {
	ctrl, ok := app.sessionController(c)
	if !ok {
		return
	}

	started := ctrl.StartNewAttempt()
	c.JSON(http.StatusOK, gin.H{
		"started": started,
		"state":   ctrl.Snapshot(),
	})
}

// shareHandler returns the emoji share card for the session's day.
func (app *App) shareHandler(c *gin.Context) {
	ctrl, ok := app.sessionController(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": ctrl.ShareText(app.AppURL)})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	now := time.Now()
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"env":          map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded": len(app.WordList),
		"day_key":      dateKey(now),
		"next_reset":   fmtCountdown(msUntilNextRotation(now)),
		"uptime":       formatUptime(uptime),
		"timestamp":    now.UTC().Format(time.RFC3339),
	})
}

// sessionController resolves the calling session to its controller, answering
// the request itself when the session cookie is unusable.
func (app *App) sessionController(c *gin.Context) (*Controller, bool) {
	sessionID := app.getOrCreateSession(c)
	ctrl, err := app.getController(sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session."})
		return nil, false
	}
	return ctrl, true
}
