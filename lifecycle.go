package main

import (
	"fmt"
	"sync"
	"time"
)

// ControllerConfig carries the engine's collaborators. Nil fields fall back
// to no-op implementations; a nil Clock uses time.Now.
type ControllerConfig struct {
	Renderer   Renderer
	Notifier   Notifier
	Telemetry  Telemetry
	Clock      func() time.Time
	ClearDelay time.Duration
}

// Controller owns one player's attempt lifecycle for the current day: the
// persisted DayRecord, the in-memory grid and cursor, the input lock, and the
// quota and idle-timeout rules that decide when an attempt may start and when
// it must be cleared. All mutations to the bound DayRecord funnel through it.
type Controller struct {
	mu sync.Mutex

	store  *DayStore
	state  map[string]*DayRecord
	dayKey string
	day    *DayRecord
	target WordEntry

	guesses  [][]string
	cursor   gridCursor
	keyHints map[string]string

	inputLocked bool
	startMarked bool

	renderer   Renderer
	notifier   Notifier
	telemetry  Telemetry
	now        func() time.Time
	clearDelay time.Duration
}

// NewController loads the player's store, binds today's record and restores
// any in-progress grid. The idle-expiry check runs immediately so a stale
// attempt is cleared before the first keystroke.
func NewController(store *DayStore, target WordEntry, cfg ControllerConfig) *Controller {
	c := &Controller{
		store:      store,
		target:     target,
		renderer:   cfg.Renderer,
		notifier:   cfg.Notifier,
		telemetry:  cfg.Telemetry,
		now:        cfg.Clock,
		clearDelay: cfg.ClearDelay,
	}
	if c.renderer == nil {
		c.renderer = noopRenderer{}
	}
	if c.notifier == nil {
		c.notifier = noopNotifier{}
	}
	if c.telemetry == nil {
		c.telemetry = noopTelemetry{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.clearDelay <= 0 {
		c.clearDelay = FinishClearDelay
	}

	now := c.now()
	c.state = store.Load()
	c.dayKey = dateKey(now)
	c.day = ensureDay(c.state, c.dayKey)
	c.persist()

	c.restoreGrid()
	c.rebuildKeyHints()
	c.expireIfIdleLocked(now)
	c.inputLocked = !c.hasActiveAttemptLocked(now)
	c.renderer.DrawGrid(c.guesses)
	return c
}

// DayKey returns the calendar day this controller is bound to.
func (c *Controller) DayKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dayKey
}

// Target returns the day's word entry.
func (c *Controller) Target() WordEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// PlaysRemaining returns how many attempts may still be started today,
// floored at zero.
func (c *Controller) PlaysRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playsRemainingLocked()
}

func (c *Controller) playsRemainingLocked() int {
	left := MaxPlays - c.day.PlayCount
	if left < 0 {
		return 0
	}
	return left
}

// HasActiveAttempt reports whether an attempt has been started, has not
// reached a terminal state, and has seen activity within the idle timeout.
func (c *Controller) HasActiveAttempt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasActiveAttemptLocked(c.now())
}

func (c *Controller) hasActiveAttemptLocked(now time.Time) bool {
	if c.day.AttemptStartedAt == 0 {
		return false
	}
	if c.day.Finished || c.day.Expired {
		return false
	}
	last := c.day.LastActivityAt
	if last == 0 {
		last = c.day.AttemptStartedAt
	}
	return now.UnixMilli()-last < IdleTimeout.Milliseconds()
}

// StartNewAttempt counts a play and prepares a fresh board for the same daily
// target. The request is silently refused while an attempt is still active or
// the daily quota is exhausted.
func (c *Controller) StartNewAttempt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.expireIfIdleLocked(now)
	if c.playsRemainingLocked() == 0 {
		return false
	}
	if c.hasActiveAttemptLocked(now) {
		return false
	}

	c.day.PlayCount++
	c.day.Rows = [][]string{}
	c.day.Reveals = [][]string{}
	c.day.Message = ""
	c.day.Finished = false
	c.day.Expired = false
	c.day.AttemptStartedAt = now.UnixMilli()
	c.day.LastActivityAt = c.day.AttemptStartedAt
	c.persist()

	c.resetGridLocked()
	c.keyHints = map[string]string{}
	c.startMarked = false
	c.inputLocked = false
	c.renderer.DrawGrid(c.guesses)
	c.renderer.UpdateKeyHints(c.keyHints)

	logInfo("Attempt %d/%d started for day %s", c.day.PlayCount, MaxPlays, c.dayKey)
	return true
}

// ExpireIfIdle checks the idle timeout and expires an active attempt that has
// gone quiet. It runs at load, on the background sweeper and on every state
// request; re-checking a finished or already-expired record is a no-op.
func (c *Controller) ExpireIfIdle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireIfIdleLocked(c.now())
}

func (c *Controller) expireIfIdleLocked(now time.Time) {
	if c.day.AttemptStartedAt == 0 || c.day.Finished || c.day.Expired {
		return
	}
	last := c.day.LastActivityAt
	if last == 0 {
		last = c.day.AttemptStartedAt
	}
	if now.UnixMilli()-last < IdleTimeout.Milliseconds() {
		return
	}

	c.day.Expired = true
	c.inputLocked = true
	c.clearGridLocked()
	c.setMessageLocked(MsgExpired)
	c.notifier.Toast(ToastExpired)
	logInfo("Attempt expired after idle timeout for day %s", c.dayKey)
}

// bumpActivityLocked refreshes the activity clock, but only while an attempt
// is active. Finished or expired attempts must never be resurrected.
func (c *Controller) bumpActivityLocked(now time.Time) {
	if c.day.AttemptStartedAt == 0 || c.day.Finished || c.day.Expired {
		return
	}
	c.day.LastActivityAt = now.UnixMilli()
	c.persist()
}

// finishLocked moves the attempt to its terminal finished state, locks input
// and schedules the deferred grid clear. The timer captures the attempt's
// start timestamp so a stale timer can never clear a newer attempt's grid.
func (c *Controller) finishLocked() {
	if c.day.Finished {
		return
	}
	c.day.Finished = true
	c.inputLocked = true
	c.persist()

	startedAt := c.day.AttemptStartedAt
	time.AfterFunc(c.clearDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.day.AttemptStartedAt != startedAt || !c.day.Finished {
			return
		}
		c.clearGridLocked()
	})
}

// clearGridLocked empties the persisted and in-memory grid. The terminal
// message and flags are untouched, so a finished day keeps its verse reveal
// while an expired day does not.
func (c *Controller) clearGridLocked() {
	c.day.Rows = [][]string{}
	c.day.Reveals = [][]string{}
	c.persist()

	c.resetGridLocked()
	c.renderer.DrawGrid(c.guesses)
}

func (c *Controller) resetGridLocked() {
	c.cursor = gridCursor{}
	c.guesses = make([][]string, MaxRows)
	for r := range c.guesses {
		c.guesses[r] = make([]string, WordLength)
	}
}

// restoreGrid rebuilds the in-memory grid from the persisted rows. The cursor
// lands on the first unsubmitted row, after any partially typed letters.
func (c *Controller) restoreGrid() {
	c.resetGridLocked()
	for r := 0; r < len(c.day.Rows) && r < MaxRows; r++ {
		for col := 0; col < len(c.day.Rows[r]) && col < WordLength; col++ {
			c.guesses[r][col] = c.day.Rows[r][col]
		}
	}

	row := len(c.day.Reveals)
	if row > MaxRows {
		row = MaxRows
	}
	c.cursor.Row = row
	if row < MaxRows {
		for c.cursor.Col < WordLength && c.guesses[row][c.cursor.Col] != "" {
			c.cursor.Col++
		}
	}
}

// rebuildKeyHints replays the persisted reveals into the keyboard hint map.
func (c *Controller) rebuildKeyHints() {
	c.keyHints = map[string]string{}
	for r, reveal := range c.day.Reveals {
		if r >= len(c.day.Rows) {
			break
		}
		for i, status := range reveal {
			if i < len(c.day.Rows[r]) && c.day.Rows[r][i] != "" {
				mergeKeyHint(c.keyHints, c.day.Rows[r][i], status)
			}
		}
	}
}

// setMessageLocked updates the user-facing status line and persists it.
func (c *Controller) setMessageLocked(text string) {
	c.day.Message = text
	c.persist()
}

// persistRowsLocked mirrors the in-memory grid into the day record.
func (c *Controller) persistRowsLocked() {
	rows := make([][]string, len(c.guesses))
	for r := range c.guesses {
		rows[r] = append([]string(nil), c.guesses[r]...)
	}
	c.day.Rows = rows
	c.persist()
}

// persistRevealLocked records the verdicts for a submitted row.
func (c *Controller) persistRevealLocked(row int, result []GuessResult) {
	for len(c.day.Reveals) <= row {
		c.day.Reveals = append(c.day.Reveals, nil)
	}
	c.day.Reveals[row] = revealStatuses(result)
	c.persist()
}

func (c *Controller) persist() {
	if err := c.store.Save(c.state); err != nil {
		logWarn("Failed to persist day store for %s: %v", c.dayKey, err)
	}
}

// ShareText builds the emoji share card for the current day.
func (c *Controller) ShareText(link string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := buildShareGrid(c.dayKey, c.day.Reveals, c.day.Finished, link)
	c.telemetry.Track(EvtShareClicked, map[string]any{"puzzle_id": c.dayKey})
	return text
}

// Snapshot returns the engine state for the rendering layer. The idle check
// runs first so a stalled attempt is reported as expired, not active.
func (c *Controller) Snapshot() StateView {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.expireIfIdleLocked(now)

	guesses := make([][]string, len(c.guesses))
	for r := range c.guesses {
		guesses[r] = append([]string(nil), c.guesses[r]...)
	}
	reveals := make([][]string, len(c.day.Reveals))
	for r := range c.day.Reveals {
		reveals[r] = append([]string(nil), c.day.Reveals[r]...)
	}
	hints := make(map[string]string, len(c.keyHints))
	for k, v := range c.keyHints {
		hints[k] = v
	}

	view := StateView{
		DayKey:         c.dayKey,
		Guesses:        guesses,
		Reveals:        reveals,
		CurrentRow:     c.cursor.Row,
		CurrentCol:     c.cursor.Col,
		Message:        c.day.Message,
		Finished:       c.day.Finished,
		Expired:        c.day.Expired,
		PlayCount:      c.day.PlayCount,
		PlaysRemaining: c.playsRemainingLocked(),
		HasActive:      c.hasActiveAttemptLocked(now),
		InputLocked:    c.inputLocked,
		KeyHints:       hints,
		NextRotationMs: msUntilNextRotation(now),
		Countdown:      fmtCountdown(msUntilNextRotation(now)),
		QuotaMessage:   quotaMessage(c.playsRemainingLocked(), nextResetTime(now)),
	}
	if c.day.Finished {
		view.Reference = c.target.Reference
		view.Verse = c.target.Verse
	}
	return view
}

// quotaMessage describes the remaining daily quota and the next reset time.
func quotaMessage(left int, resetAt time.Time) string {
	if left > 0 {
		return fmt.Sprintf("You can play %d more time%s today (max %d). Your game will reset tomorrow at %s.",
			left, plural(left), MaxPlays, formatResetTime(resetAt))
	}
	return fmt.Sprintf("Daily limit reached (max %d). Your game will reset tomorrow at %s.",
		MaxPlays, formatResetTime(resetAt))
}
