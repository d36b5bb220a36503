package main

// WordEntry is one playable word together with its verse citation.
type WordEntry struct {
	Word      string `json:"word"`
	Reference string `json:"reference"`
	Verse     string `json:"verse"`
}

// WordList represents the JSON structure for loading the daily word rotation
type WordList struct {
	Words []WordEntry `json:"words"`
}

// GuessResult represents a single letter's evaluation
type GuessResult struct {
	Letter string `json:"letter"`
	Status string `json:"status"` // "correct", "present" or "absent"
}

// DayRecord is the persisted play state for one calendar day. Timestamps are
// epoch milliseconds; zero means no attempt has been started.
type DayRecord struct {
	Rows             [][]string `json:"rows"`
	Reveals          [][]string `json:"reveals"`
	Message          string     `json:"msg"`
	Finished         bool       `json:"finished"`
	Expired          bool       `json:"expired"`
	PlayCount        int        `json:"playCount"`
	AttemptStartedAt int64      `json:"attemptStartedAt"`
	LastActivityAt   int64      `json:"lastActivityAt"`
}

// gridCursor tracks the active cell of the in-memory grid. The lifecycle
// controller owns it and hands a pointer to the input handler.
type gridCursor struct {
	Row int
	Col int
}

// SubmitResult describes the outcome of a guess submission.
type SubmitResult struct {
	Advanced bool   `json:"advanced"`
	NextRow  int    `json:"nextRow,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Won      bool   `json:"won,omitempty"`
	Message  string `json:"message,omitempty"`
}

// StateView is the engine state handed to the rendering layer.
type StateView struct {
	DayKey         string            `json:"dayKey"`
	Guesses        [][]string        `json:"guesses"`
	Reveals        [][]string        `json:"reveals"`
	CurrentRow     int               `json:"currentRow"`
	CurrentCol     int               `json:"currentCol"`
	Message        string            `json:"message"`
	Finished       bool              `json:"finished"`
	Expired        bool              `json:"expired"`
	PlayCount      int               `json:"playCount"`
	PlaysRemaining int               `json:"playsRemaining"`
	HasActive      bool              `json:"hasActiveAttempt"`
	InputLocked    bool              `json:"inputLocked"`
	KeyHints       map[string]string `json:"keyHints"`
	Reference      string            `json:"reference,omitempty"`
	Verse          string            `json:"verse,omitempty"`
	NextRotationMs int64             `json:"nextRotationMs"`
	Countdown      string            `json:"countdown"`
	QuotaMessage   string            `json:"quotaMessage"`
}
