package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Level comes from
// MIGFLOW_LOG_LEVEL; the default is info.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("MIGFLOW_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
