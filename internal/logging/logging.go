// Package logging builds the structured logger shared by the CLI and engine.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// ParseLevel accepts debug, info, warn or error in any case. An empty
// string selects DefaultLevel.
func ParseLevel(level string) (slog.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: l,
	})
	return slog.New(handler), nil
}
