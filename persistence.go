package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DayStore persists one player's mapping of day-key to DayRecord as a single
// JSON blob. Loading is fail-soft: a missing or corrupt blob comes back as an
// empty mapping so damaged state can never take the game down.
type DayStore struct {
	path string
}

// NewDayStore returns a store backed by the given file path.
func NewDayStore(path string) *DayStore {
	return &DayStore{path: path}
}

// Path returns the backing file path.
func (s *DayStore) Path() string {
	return s.path
}

// Load deserializes the persisted blob, returning an empty mapping on any
// read or parse failure.
func (s *DayStore) Load() map[string]*DayRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logWarn("Failed to read day store %s: %v", s.path, err)
		}
		return map[string]*DayRecord{}
	}
	var state map[string]*DayRecord
	if err := json.Unmarshal(data, &state); err != nil {
		logWarn("Day store %s is corrupt, starting empty: %v", s.path, err)
		return map[string]*DayRecord{}
	}
	if state == nil {
		state = map[string]*DayRecord{}
	}
	return state
}

// Save serializes and persists the full mapping in a single write.
func (s *DayStore) Save(state map[string]*DayRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logWarn("Failed to create store directory for %s: %v", s.path, err)
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		logWarn("Failed to marshal day store %s: %v", s.path, err)
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logWarn("Failed to write day store %s: %v", s.path, err)
		return err
	}
	return nil
}

// ensureDay returns the record for dayKey, inserting a freshly defaulted one
// if missing. Records written before the quota and idle-expiry fields existed
// are upgraded in place; the upgrade is idempotent and never overwrites a
// field that already has a value.
func ensureDay(state map[string]*DayRecord, dayKey string) *DayRecord {
	day, ok := state[dayKey]
	if !ok || day == nil {
		day = &DayRecord{
			Rows:    [][]string{},
			Reveals: [][]string{},
		}
		state[dayKey] = day
	}
	backfillDayRecord(day)
	return day
}

// backfillDayRecord repairs records from older schema versions. Absent JSON
// fields already decode to their zero values, so the only repairs needed are
// nil slices and out-of-range counters.
func backfillDayRecord(day *DayRecord) {
	if day.Rows == nil {
		day.Rows = [][]string{}
	}
	if day.Reveals == nil {
		day.Reveals = [][]string{}
	}
	if day.PlayCount < 0 {
		day.PlayCount = 0
	}
	if day.AttemptStartedAt < 0 {
		day.AttemptStartedAt = 0
	}
	if day.LastActivityAt < 0 {
		day.LastActivityAt = 0
	}
}

// playerStorePath maps a session ID to its store file, rejecting anything
// that is not a UUID so a crafted cookie cannot escape the data directory.
func playerStorePath(dataDir, sessionID string) (string, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "players", sessionID+".json"), nil
}

// cleanupOldPlayerStores removes player store files older than maxAge.
func cleanupOldPlayerStores(dataDir string, maxAge time.Duration) error {
	playerDir := filepath.Join(dataDir, "players")
	entries, err := os.ReadDir(playerDir)
	if err != nil {
		if os.IsNotExist(err) {
			logInfo("Player store directory doesn't exist, skipping cleanup")
			return nil
		}
		logWarn("Failed to read player store directory: %v", err)
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removedCount := 0
	errorCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logWarn("Failed to get info for player store %s: %v", entry.Name(), err)
			errorCount++
			continue
		}
		if info.ModTime().Before(cutoff) {
			storeFile := filepath.Join(playerDir, entry.Name())
			if err := os.Remove(storeFile); err != nil {
				logWarn("Failed to remove old player store %s: %v", storeFile, err)
				errorCount++
			} else {
				removedCount++
			}
		}
	}

	logInfo("Player store cleanup completed: removed %d files, %d errors", removedCount, errorCount)
	return nil
}
