// Package logging builds the diagnostic logger. User-facing output goes
// through package console instead.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text slog.Logger writing to w. Debug records are kept only
// when debug is set; otherwise warnings and errors pass.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
