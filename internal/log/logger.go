// Package log builds the structured loggers used by every campsite job.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/helixml/campsite/internal/config"
)

// NewLogger creates a logger writing to stdout in the configured format and level.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a logger that writes to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}
	return slog.New(handler)
}

// Configure builds a logger from cfg, tags it with the job name and installs
// it as the slog default.
func Configure(cfg config.AppConfig, job config.Job) *slog.Logger {
	logger := NewLogger(cfg).With(slog.String("job", string(job)))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
