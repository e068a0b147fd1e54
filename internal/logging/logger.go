// Package logging builds the structured logger shared by the CLI and the
// simulation controller. It wraps log/slog with a level taken from the
// TRAJSIM_LOG_LEVEL environment variable.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const LevelEnv = "TRAJSIM_LOG_LEVEL"

// New returns a text logger writing to w at the level named by TRAJSIM_LOG_LEVEL.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func New(w io.Writer) *slog.Logger {
	return NewWithLevel(w, levelFromEnv())
}

func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Discard returns a logger that drops everything, for the live view where
// the terminal belongs to the renderer.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func levelFromEnv() slog.Level {
	level, err := ParseLevel(os.Getenv(LevelEnv))
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// WrapError adds context to err, formatting it with args when given.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
