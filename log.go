package vscroll

import (
	"log/slog"
	"os"
)

// scrollLogLevel controls the log level for engine debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var scrollLogLevel = new(slog.LevelVar)

// scrollLogger is the logger for engine debugging. Debug output covers
// cold-path events only (mode transitions, cache rebuilds, compression
// recomputes), never the per-movement hot path.
var scrollLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: scrollLogLevel}))

// SetVerbose enables or disables verbose/debug logging for the engine.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		scrollLogLevel.Set(slog.LevelDebug)
	} else {
		scrollLogLevel.Set(slog.LevelInfo)
	}
}
