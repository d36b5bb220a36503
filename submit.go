package main

import (
	"fmt"
	"regexp"
	"strings"
)

var guessPattern = regexp.MustCompile(`^[a-z]{5}$`)

// Submit runs the guess pipeline on the current row. It is also reachable via
// HandleKey(KeyEnter); calling it directly skips the input lock, which lets a
// finished attempt answer with its advisory message.
func (c *Controller) Submit() SubmitResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireIfIdleLocked(c.now())
	return c.submitLocked()
}

// submitLocked validates the current row, scores it against the daily target,
// records the result and drives the finish transition on a win or on row
// exhaustion. Rejections leave the grid and lifecycle untouched and only
// update the advisory message.
func (c *Controller) submitLocked() SubmitResult {
	if c.day.Finished {
		c.setMessageLocked(MsgAlreadyPlayed)
		return SubmitResult{Message: MsgAlreadyPlayed}
	}
	if c.cursor.Col < WordLength {
		c.setMessageLocked(MsgNotEnough)
		return SubmitResult{Message: MsgNotEnough}
	}

	row := c.cursor.Row
	guess := strings.Join(c.guesses[row], "")
	if !guessPattern.MatchString(guess) {
		c.setMessageLocked(MsgLettersOnly)
		return SubmitResult{Message: MsgLettersOnly}
	}

	result := checkGuess(guess, c.target.Word)
	for _, r := range result {
		mergeKeyHint(c.keyHints, r.Letter, r.Status)
	}
	c.renderer.ColorizeRow(row, result)
	c.renderer.UpdateKeyHints(c.keyHints)
	c.telemetry.Track(EvtGuessSubmitted, map[string]any{"puzzle_id": c.dayKey, "guess_count": row + 1})

	c.persistRowsLocked()
	c.persistRevealLocked(row, result)

	if isWinningResult(result) {
		msg := fmt.Sprintf("Solved! “%s” — %s (KJV)", strings.ToUpper(c.target.Word), c.target.Reference)
		c.setMessageLocked(msg)
		c.telemetry.Track(EvtAttemptWon, map[string]any{"puzzle_id": c.dayKey, "attempts": row + 1})
		c.finishLocked()
		logInfo("Attempt won on row %d for day %s", row+1, c.dayKey)
		return SubmitResult{Finished: true, Won: true, Message: msg}
	}

	next := row + 1
	if next == MaxRows {
		msg := fmt.Sprintf("Answer: “%s” — %s (KJV)", strings.ToUpper(c.target.Word), c.target.Reference)
		c.setMessageLocked(msg)
		c.telemetry.Track(EvtAttemptFailed, map[string]any{"puzzle_id": c.dayKey, "attempts": MaxRows})
		c.finishLocked()
		logInfo("Attempt exhausted all rows for day %s", c.dayKey)
		return SubmitResult{Finished: true, Message: msg}
	}

	c.cursor.Row = next
	c.cursor.Col = 0
	return SubmitResult{Advanced: true, NextRow: next}
}
