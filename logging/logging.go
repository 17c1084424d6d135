// Package logging configures structured loggers.
package logging

import (
	"io"
	"log/slog"
)

// New creates a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ForComponent scopes a logger to one component so every record carries
// its name.
func ForComponent(base *slog.Logger, component string) *slog.Logger {
	return base.With(slog.String("component", component))
}
