package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// NewLogger creates a *slog.Logger from cfg writing to w (normally stderr,
// stdout carries the report) and installs it as the default logger.
//
// Format "json" produces JSON records, anything else the text handler.
// Level is one of debug, info, warn, error; verbose forces debug.
// Every record carries a "run" id.
func NewLogger(cfg LogConfig, verbose bool, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("run", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
