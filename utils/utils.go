package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q", level)
}

// NewLogger builds a tint-backed logger writing to w (stderr when nil).
func NewLogger(w io.Writer, level slog.Level, colored bool, timeFormat string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    !colored,
	}))
}

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger(level string, colored bool, timeFormat string) *slog.Logger {
	lvl, err := ParseLevel(level)
	logger := NewLogger(nil, lvl, colored, timeFormat)
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}
	return logger
}
