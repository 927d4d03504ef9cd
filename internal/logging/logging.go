// Package logging provides the structured loggers used across cubeq.
//
// Logging is opt-in. Default returns a logger that discards everything
// unless the CUBEQ_LOG environment variable names a level (debug, info,
// warn or error), in which case records at or above that level go to stderr
// as text. Keys are snake_case.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// EnvVar is the environment variable read by Default.
const EnvVar = "CUBEQ_LOG"

var (
	defaultOnce   sync.Once
	defaultLogger *slog.Logger
)

// Default returns the process-wide logger configured from CUBEQ_LOG. The
// environment is read once.
func Default() *slog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = FromEnv(os.Getenv(EnvVar), os.Stderr)
	})
	return defaultLogger
}

// FromEnv builds a logger from an environment value. An empty or unknown
// value gives a discarding logger.
func FromEnv(value string, w io.Writer) *slog.Logger {
	level, ok := ParseLevel(value)
	if !ok {
		return Discard()
	}
	return New(w, level)
}

// New returns a text logger writing records at or above level to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels,
// ignoring case and surrounding space.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
