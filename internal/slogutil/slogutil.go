// Package slogutil provides the custom slog handler and helpers for
// reviewgate logging.
package slogutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a slog.Logger with reviewgate's line format.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewStderrLogger creates a logger writing to stderr, keeping stdout free
// for report output.
func NewStderrLogger(level slog.Level) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewDiscardLogger creates a logger that discards all output. Useful for
// tests.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts a string to a slog.Level. Supports debug,
// info, warn, error (case-insensitive); unrecognized strings read as
// info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
