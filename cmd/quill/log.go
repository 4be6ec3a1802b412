package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the run logger. level is a slog level name (warn when
// empty); format is text (default) or json. Every record carries runID.
func newLogger(w io.Writer, level, format, runID string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("QUILL_LOG_FORMAT: unknown format %q: must be \"text\" or \"json\"", format)
	}
	return slog.New(h).With("run", runID), nil
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("QUILL_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
