// Package logging provides the concrete common.SimLogger backing the
// engine's structured log output, configured from
// infrastructure/config's LoggingConfig (level, format, output
// destination).
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/duskline/hexsim/internal/application/common"
)

// SlogLogger adapts log/slog to common.SimLogger, giving the engine
// leveled, structured output without pulling in a third-party logging
// dependency.
type SlogLogger struct {
	logger *slog.Logger
}

// New builds a SlogLogger writing level-filtered, formatted output to
// w (stdout/stderr/file per config).
func New(level, format string, w *os.File) *SlogLogger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	args := make([]any, 0, len(metadata)*2)
	for k, v := range metadata {
		args = append(args, k, v)
	}
	l.logger.Log(context.Background(), parseLevel(level), message, args...)
}

var _ common.SimLogger = (*SlogLogger)(nil)
