// Package logger はslogのハンドラー構成を提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger writing to stdout. format is "json" or "text".
func New(format string, debug bool) *slog.Logger {
	return newLogger(os.Stdout, format, debug)
}

func newLogger(w io.Writer, format string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
