// Package logging provides structured logging configuration using log/slog.
//
// Pipeline runs are correlated through a run ID attached to every log entry
// a run emits, so a single failing run can be traced through interleaved
// output.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" format in production for machine parsing (ELK, CloudWatch, etc.)
// Use "text" format in development for human readability.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewRunLogger returns a logger carrying a fresh run ID, plus the ID itself
// for inclusion in errors or output names.
//
// Usage:
//
//	logger, runID := logging.NewRunLogger()
//	logger.Info("job started", "manifest", path)
func NewRunLogger() (*slog.Logger, string) {
	runID := uuid.New().String()
	return slog.Default().With("run_id", runID), runID
}
