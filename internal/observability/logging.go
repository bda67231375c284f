// Package observability provides structured logging for Dugout.
// Logging is built on log/slog; every workflow run gets a logger
// carrying its run ID so interleaved runs can be told apart.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a slog.Logger from the configured level and format
// strings. Unknown values fall back to info level and text format.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return slog.New(NewJSONHandler(w, lvl))
	}
	return slog.New(NewTextHandler(w, lvl))
}

// NewJSONHandler creates a JSON log handler for production use.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// NewTextHandler creates a human-readable text log handler for development.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RunLogger returns a child logger scoped to one workflow run.
func RunLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("run_id", runID))
}
