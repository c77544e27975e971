// Package logger configures the process-wide slog logger
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/KirkDiggler/horror-bot/internal/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	return setup(os.Stdout, cfg)
}

func setup(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == config.EnvironmentProduction {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	return logger
}

// WithGame scopes a logger to a single game session
func WithGame(logger *slog.Logger, gameID string) *slog.Logger {
	return logger.With("game_id", gameID)
}
