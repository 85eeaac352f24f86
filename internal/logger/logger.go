package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON slog.Logger writing to stdout at the named level.
// Unknown level names fall back to info.
func New(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("service", "areacheck"))
}
