package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
)

// ServiceName is attached to every log entry.
const ServiceName = "rigcalc"

// Logger wraps slog.Logger with the rig-calc default fields.
//
// Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from the logging section of the config.
//
// Output is stdout unless cfg.Output is "stderr". Format is JSON unless
// cfg.Format is "text". Every entry carries service and version fields.
func New(cfg config.LoggingConfig, version string) *Logger {
	var output io.Writer = os.Stdout
	if strings.EqualFold(cfg.Output, "stderr") {
		output = os.Stderr
	}
	return NewWithWriter(cfg, version, output)
}

// NewWithWriter is New with an explicit destination.
// The CLI uses it to keep report output separate from logs; tests use it to
// capture entries.
func NewWithWriter(cfg config.LoggingConfig, version string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", ServiceName),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel maps debug, info, warn/warning and error to slog levels.
// Anything else is info.
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

// With returns a child Logger with additional attributes.
//
//	mqttLogger := logger.With("component", "mqtt")
//	mqttLogger.Info("connected") // Includes component=mqtt
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns a JSON info-level logger on stdout, for use before the
// config is loaded.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(config.LoggingConfig{Level: "error"}, "dev", io.Discard)
}
