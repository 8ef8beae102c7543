package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/bigroot/pkg/domain"
)

// New creates a configured application logger.
// It writes to Stderr so stdout carries only results.
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a configured level name to a slog level.
// "off" (or empty) reports enabled=false.
func ParseLevel(name string) (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off":
		return slog.LevelInfo, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	}
	return slog.LevelInfo, false, fmt.Errorf("unknown log level %q: %w", name, domain.ErrInvalidArgument)
}

// FromLevelName builds the logger for a configured level, writing to w.
// debug forces LevelDebug.
func FromLevelName(w io.Writer, name string, debug bool) (*slog.Logger, error) {
	if debug {
		return NewWithWriter(w, slog.LevelDebug), nil
	}
	level, enabled, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return NewNop(), nil
	}
	return NewWithWriter(w, level), nil
}
