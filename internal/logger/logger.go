package logger

import (
	"log/slog"
	"os"
)

// NewLogger builds the slog logger every component receives via injection.
// JSON lines on stdout, info level and up.
func NewLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}
