// Package logger provides centralized slog.Logger construction with
// configurable level, output format (text or JSON), and an optional
// append-only log file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New creates a *slog.Logger configured with the given level and format.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
// Output goes to stderr.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a *slog.Logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewWithFile creates a *slog.Logger that writes to stderr and appends to
// the file at path. The returned closer releases the file. An empty path
// yields a stderr-only logger and a no-op closer.
func NewWithFile(path, level, format string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return New(level, format), io.NopCloser(nil), nil
	}

	f, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewWithWriter(io.MultiWriter(os.Stderr, f), level, format), f, nil
}

// Open opens path for appending, creating it if needed. Existing content is
// never truncated.
func Open(path string) (*os.File, error) {
	//nolint:gosec // log path from trusted config
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ParseLevel converts a level string to slog.Level.
// Recognized values: "debug", "warn", "error". Everything else returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
