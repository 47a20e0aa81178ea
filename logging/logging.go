package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var logger *slog.Logger

func init() {
	// Default to INFO level
	InitLogger("info")
}

// InitLogger initializes the global logger with the specified level.
// Diagnostics go to stderr so they never interleave with the console status lines on stdout.
func InitLogger(level string) {
	initWithWriter(level, os.Stderr)
}

func initWithWriter(level string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(logger)
}

// ParseLevel maps a config string to a slog level, falling back to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}
