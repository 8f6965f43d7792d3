// Package logging provides centralized logger creation for the concatfiles application.
package logging

import (
	"io"
	"log/slog"
)

// NewTestLogger creates a silent logger for tests.
func NewTestLogger() *Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any real level = silent
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, opts))}
}
