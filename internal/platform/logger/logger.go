// Package logger provides the structured JSON logger shared by all components.
package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog. Development runtimes log at
// debug level so gate transitions are visible while iterating.
func New(development bool) *slog.Logger {
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
