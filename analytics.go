package main

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
)

// Telemetry receives named game events with a small property bag. Sinks are
// fire-and-forget: they must never block game logic and never surface errors
// to the caller.
type Telemetry interface {
	Track(name string, props map[string]any)
}

// noopTelemetry is used when no sink is configured.
type noopTelemetry struct{}

func (noopTelemetry) Track(string, map[string]any) {}

// sqliteTelemetry records events into a local SQLite database.
type sqliteTelemetry struct {
	db *sql.DB
}

// openTelemetryDB opens the event database at dsn and creates the events
// table if needed.
func openTelemetryDB(dsn string) (*sqliteTelemetry, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		props TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteTelemetry{db: db}, nil
}

// Track inserts the event, swallowing any storage error.
func (t *sqliteTelemetry) Track(name string, props map[string]any) {
	if props == nil {
		props = map[string]any{}
	}
	blob, err := json.Marshal(props)
	if err != nil {
		logWarn("Failed to encode telemetry props for %s: %v", name, err)
		blob = []byte("{}")
	}
	if _, err := t.db.Exec("INSERT INTO events(name, props) VALUES(?, ?)", name, string(blob)); err != nil {
		logWarn("Failed to record telemetry event %s: %v", name, err)
	}
}

// EventCount returns how many events with the given name have been recorded.
func (t *sqliteTelemetry) EventCount(name string) (int, error) {
	var cnt int
	err := t.db.QueryRow("SELECT COUNT(1) FROM events WHERE name = ?", name).Scan(&cnt)
	return cnt, err
}

// Close releases the underlying database handle.
func (t *sqliteTelemetry) Close() error {
	return t.db.Close()
}
