package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/retail-ledger-engine/internal/config"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// NewLogger creates a JSON slog.Logger writing to stdout, tagged with the application name and env
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	if cfg.Application.Name != "" {
		logger = logger.With("app", cfg.Application.Name, "env", cfg.Application.Env)
	}

	logger.Info("logger initialized", "level", level)

	return logger
}

// ParseLevel maps a textual level to slog, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext decorates logger with the correlation ID and actor carried by ctx, if any.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := shared.CorrelationIDFromContext(ctx); id != "" {
		logger = logger.With("correlation_id", id)
	}
	if actor, ok := shared.ActorFromContext(ctx); ok {
		logger = logger.With("actor_id", actor.String())
	}
	return logger
}
