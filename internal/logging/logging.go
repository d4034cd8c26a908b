package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the process-wide logger. Call once at startup, after the
// config is loaded. Logs go to stderr so report output on stdout stays clean.
func Init(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
