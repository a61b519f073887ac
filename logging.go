package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the service logger. Invalid levels fall back to info,
// since Config.Validate has already rejected them.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	lvl, err := parseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
