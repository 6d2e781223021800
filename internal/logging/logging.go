// Package logging configures the structured logging subsystem from the
// environment. Logging records interpreter state transitions (scope
// enter/leave, define/assign, calls) for debugging; it never affects the
// semantics of the interpreted program.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v6"
)

// LevelTrace is the level of the most verbose events, below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// Config is the environment configuration of the logging subsystem.
type Config struct {
	// Filter is the minimum level of events to emit: off (the default),
	// error, warn, info, debug or trace.
	Filter string `env:"NELUMBO_LOG"`
}

// FromEnv reads the configuration from the environment and returns the
// corresponding logger, writing to w.
func FromEnv(w io.Writer) (*slog.Logger, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return New(c, w), nil
}

// New returns the logger corresponding to the configuration, writing to w.
// It returns nil if logging is off, which callers treat as "do not log".
func New(c Config, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(c.Filter) {
	case "error":
		lvl = slog.LevelError
	case "warn":
		lvl = slog.LevelWarn
	case "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "trace":
		lvl = LevelTrace
	default:
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
