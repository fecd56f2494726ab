package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/phsym/console-slog"
	"golang.org/x/term"
)

// newLogger writes colored console output when f is a terminal and plain
// key=value lines otherwise, so journald and log files stay greppable.
func newLogger(f *os.File, level slog.Level) *slog.Logger {
	if term.IsTerminal(int(f.Fd())) {
		return slog.New(console.NewHandler(f, &console.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
