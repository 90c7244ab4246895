// Package logging sets up the process-wide structured logger used by the
// CLI and HTTP entrypoints. It is a thin wrapper around log/slog, in the
// style used throughout the BeHierarchic codebase: a package-level logger,
// configured once at startup, called directly with key/value pairs.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs a text handler writing to stderr on the default slog
// logger, at debug level when verbose is set and info level otherwise.
// It returns the configured logger for callers that
// want to hold their own reference instead of using slog's package-level
// functions.
func Setup(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// Fail logs err at error level with the given message and exits the process
// with status 1. It is the single exit point used by cmd/huffgo so that
// every failure is surfaced the same way, per the diagnostic-and-terminate
// policy in the error handling design.
func Fail(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
