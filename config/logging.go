package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger writes text logs to stderr and, when cfg.File is set, JSON logs
// to that file as well. The returned func closes the file.
func SetupLogger(cfg LoggingConfig) (*slog.Logger, func() error) {
	level := ParseLevel(cfg.Level)
	if cfg.File == "" {
		return newLogger(level, os.Stderr, nil), func() error { return nil }
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := newLogger(level, os.Stderr, nil)
		logger.Error("failed to open log file, using stderr only", "error", err, "file", cfg.File)
		return logger, func() error { return nil }
	}
	return newLogger(level, os.Stderr, file), file.Close
}

// newLogger writes text records to text and, when jsonOut is non-nil, fans
// the same records out as JSON to jsonOut.
func newLogger(level slog.Level, text, jsonOut io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	textHandler := slog.NewTextHandler(text, opts)
	if jsonOut == nil {
		return slog.New(textHandler)
	}
	return slog.New(slogmulti.Fanout(textHandler, slog.NewJSONHandler(jsonOut, opts)))
}
