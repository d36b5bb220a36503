package main

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = newLogger()

// newLogger builds the process logger. LOG_LEVEL tunes verbosity; console
// output keeps development logs human-readable.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// logInfo logs an info-level message.
func logInfo(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

// logWarn logs a warning-level message.
func logWarn(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

// logFatal logs a fatal error and exits.
func logFatal(format string, v ...any) {
	logger.Fatal().Msgf(format, v...)
}
