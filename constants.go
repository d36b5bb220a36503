package main

import "time"

// Game configuration constants
const (
	MaxRows    = 6 // Maximum number of guess rows per attempt
	WordLength = 5 // Length of the word to guess
	MaxPlays   = 3 // Maximum attempts per calendar day
)

// Attempt lifecycle timing
const (
	IdleTimeout       = 30 * time.Minute        // Inactivity after which an active attempt expires
	IdleCheckInterval = 30 * time.Second        // Cadence of the background idle sweeper
	FinishClearDelay  = 1200 * time.Millisecond // How long a finished grid stays visible before clearing
)

// Guess status constants
const (
	GuessStatusCorrect = "correct"
	GuessStatusPresent = "present"
	GuessStatusAbsent  = "absent"
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteState      = "/state"
	RouteKey        = "/key"
	RouteNewAttempt = "/new-attempt"
	RouteShare      = "/share"
)

// User-facing message constants
const (
	MsgAlreadyPlayed = "You've played today's puzzle. Come back tomorrow!"
	MsgNotEnough     = "Not enough letters."
	MsgLettersOnly   = "Letters only (A–Z)."
	MsgExpired       = "Your previous game expired after 30 minutes of inactivity. Click “New Game” to try again."
	ToastExpired     = "Game expired after 30 minutes of inactivity."
)

// Telemetry event names
const (
	EvtAppLoaded      = "app-loaded"
	EvtAttemptStarted = "attempt-started"
	EvtGuessSubmitted = "guess-submitted"
	EvtAttemptWon     = "attempt-won"
	EvtAttemptFailed  = "attempt-failed"
	EvtShareClicked   = "share-clicked"
)

// Key input constants
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
