package main

import "strings"

// HandleKey processes a single keystroke: a letter fills the current cell,
// Backspace retreats and clears, Enter submits the row. Every keystroke that
// reaches an active attempt bumps the activity clock; once the attempt is
// finished, expired or input is locked, all three are no-ops.
func (c *Controller) HandleKey(key string) SubmitResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.expireIfIdleLocked(now)
	if c.inputLocked || c.day.Finished || c.day.Expired {
		return SubmitResult{}
	}
	c.bumpActivityLocked(now)

	switch key {
	case KeyEnter:
		return c.submitLocked()
	case KeyBackspace:
		c.deleteLetterLocked()
		return SubmitResult{}
	default:
		c.typeLetterLocked(key)
		return SubmitResult{}
	}
}

// typeLetterLocked accepts a single alphabetic character into the current
// cell, stored lowercase, and advances the column. The very first keystroke
// of a fresh attempt fires the one-time start marker.
func (c *Controller) typeLetterLocked(key string) {
	if len(key) != 1 {
		return
	}
	ch := key[0]
	if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
		return
	}

	if c.cursor.Row == 0 && c.cursor.Col == 0 {
		c.markStartLocked()
	}

	if c.cursor.Col < WordLength {
		c.guesses[c.cursor.Row][c.cursor.Col] = strings.ToLower(key)
		c.cursor.Col++
		c.renderer.DrawGrid(c.guesses)
		c.persistRowsLocked()
	}
}

// deleteLetterLocked retreats the column and clears that cell.
func (c *Controller) deleteLetterLocked() {
	if c.cursor.Col > 0 {
		c.cursor.Col--
		c.guesses[c.cursor.Row][c.cursor.Col] = ""
		c.renderer.DrawGrid(c.guesses)
		c.persistRowsLocked()
	}
}

// markStartLocked fires the one-time attempt-started event. The latch resets
// only when a new attempt starts.
func (c *Controller) markStartLocked() {
	if c.startMarked {
		return
	}
	c.startMarked = true
	c.telemetry.Track(EvtAttemptStarted, map[string]any{"puzzle_id": c.dayKey, "mode": "normal"})
}
