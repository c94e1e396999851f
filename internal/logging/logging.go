// Package logging builds the structured logger used by the calco command.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config selects the logger's level and output format.
type Config struct {
	// Level is one of debug, info, warn, or error. Anything else is info.
	Level string
	// Format is json for JSON lines. Anything else is logfmt-style text.
	Format string
	// AddSource includes the file and line of each log call.
	AddSource bool
}

// New creates a logger writing to w.
func New(w io.Writer, conf Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: conf.AddSource,
		Level:     Level(conf.Level),
	}
	return slog.New(handler(w, conf.Format, opts))
}

// Level converts a level name to a slog level.
func Level(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}
