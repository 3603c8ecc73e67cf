package logging

import (
	"io"
	"log/slog"
)

var (
	// Logger receives the structured records of every package.
	Logger *slog.Logger

	level = new(slog.LevelVar)
)

func init() {
	Logger = newLogger(Stderr, false)
}

// Setup sends records to w, or to Stderr when w is nil. Debug records are
// kept only when verbose is set.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
	if w == nil {
		w = Stderr
	}
	Logger = newLogger(w, jsonOutput)
}

func newLogger(w io.Writer, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Session returns a logger tagging every record with a provisioner session
// and its instance. A nil base means Logger.
func Session(base *slog.Logger, id, instance string) *slog.Logger {
	if base == nil {
		base = Logger
	}
	return base.With("session", id, "instance", instance)
}
