package main

import (
	"path/filepath"
	"testing"
)

func TestSQLiteTelemetry_TrackAndCount(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "events.db")
	sink, err := openTelemetryDB(dsn)
	if err != nil {
		t.Fatalf("openTelemetryDB: %v", err)
	}
	defer sink.Close()

	sink.Track(EvtGuessSubmitted, map[string]any{"row": 0, "word": "house"})
	sink.Track(EvtGuessSubmitted, map[string]any{"row": 1, "word": "grace"})
	sink.Track(EvtAttemptWon, nil)

	got, err := sink.EventCount(EvtGuessSubmitted)
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if got != 2 {
		t.Errorf("guess-submitted count = %d, want 2", got)
	}

	got, err = sink.EventCount(EvtAttemptWon)
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if got != 1 {
		t.Errorf("attempt-won count = %d, want 1", got)
	}

	got, err = sink.EventCount("never-tracked")
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if got != 0 {
		t.Errorf("unknown event count = %d, want 0", got)
	}
}

func TestSQLiteTelemetry_ReopenKeepsEvents(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "events.db")
	sink, err := openTelemetryDB(dsn)
	if err != nil {
		t.Fatalf("openTelemetryDB: %v", err)
	}
	sink.Track(EvtAppLoaded, map[string]any{"build": "test"})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	sink, err = openTelemetryDB(dsn)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer sink.Close()
	got, err := sink.EventCount(EvtAppLoaded)
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if got != 1 {
		t.Errorf("count after reopen = %d, want 1", got)
	}
}
