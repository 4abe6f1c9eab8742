package utils

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		assert.Equal(t, c.want, got, c.in)
		assert.Equal(t, c.ok, err == nil, c.in)
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, false, "15:04:05")

	logger.Info("hidden")
	logger.Warn("shown", "batch", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "batch=2")
}

func TestApiError(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Failed to retrieve sales", cause)

	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, "Failed to retrieve sales: connection reset", err.Error())
	require.ErrorIs(t, err, cause)

	assert.Equal(t, "Something went wrong", NewApiError(400, "", nil).Error())
}
