package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	t.Parallel()
	_, err := parseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUILL_LOG_LEVEL")
}

func TestNewLogger_TextCarriesRunID(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := newLogger(&buf, "info", "", "run-1")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown", "k", "v")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "run=run-1")
	assert.Contains(t, out, "k=v")
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := newLogger(&buf, "debug", "JSON", "run-2")
	require.NoError(t, err)

	l.Debug("repair")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "repair", rec["msg"])
	assert.Equal(t, "run-2", rec["run"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNewLogger_UnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := newLogger(&bytes.Buffer{}, "", "xml", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUILL_LOG_FORMAT")
}
