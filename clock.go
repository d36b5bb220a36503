package main

import (
	"fmt"
	"math"
	"time"
)

// The word rotation starts from this local calendar day.
const (
	rotationEpochYear  = 2025
	rotationEpochMonth = time.January
	rotationEpochDay   = 1
)

// dateKey returns the calendar-day identifier YYYY-MM-DD in local time.
func dateKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// dailyIndex rotates through n words by whole calendar days elapsed since the
// rotation epoch, reduced with a non-negative modulo so dates before the epoch
// still map into [0, n). Only the calendar date matters: every timestamp on
// the same local day yields the same index.
func dailyIndex(now time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	loc := now.Location()
	base := time.Date(rotationEpochYear, rotationEpochMonth, rotationEpochDay, 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	// Round instead of truncating so DST-shortened days still count as one.
	diff := int(math.Round(today.Sub(base).Hours() / 24))
	return ((diff % n) + n) % n
}

// nextResetTime returns the next local midnight after now.
func nextResetTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

// msUntilNextRotation returns milliseconds until the next local midnight.
func msUntilNextRotation(now time.Time) int64 {
	ms := nextResetTime(now).Sub(now).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// fmtCountdown formats a millisecond countdown as "Hh MMm SSs".
func fmtCountdown(ms int64) string {
	s := ms / 1000
	if s < 0 {
		s = 0
	}
	h := s / 3600
	m := (s % 3600) / 60
	ss := s % 60
	return fmt.Sprintf("%dh %02dm %02ds", h, m, ss)
}

// formatResetTime renders the daily reset moment for quota messages.
func formatResetTime(t time.Time) string {
	return t.Format("3:04 PM MST")
}
