package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the level chosen by Setup
const EnvLevel = "FIRECOMPLETE_LOG_LEVEL"

// Setup installs a text logger on w as the slog default and returns it.
// verbose selects debug level, otherwise warnings and errors are logged.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	if envLevel := os.Getenv(EnvLevel); envLevel != "" {
		level = ParseLevel(envLevel, level)
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	return log
}

// ParseLevel maps a level name to a slog level, returning fallback for unknown names
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
