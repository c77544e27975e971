// Package config loads runtime settings from HORROR_* environment variables
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// Environment names
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Oracle providers
const (
	OracleOllama   = "ollama"
	OracleGemini   = "gemini"
	OracleDisabled = "disabled"
)

// Config holds every tunable the server reads at startup
type Config struct {
	Environment string     `env:"HORROR_ENV" envDefault:"development"`
	ServiceName string     `env:"HORROR_SERVICE_NAME" envDefault:"horror-bot"`
	LogLevel    slog.Level `env:"HORROR_LOG_LEVEL" envDefault:"INFO"`
	GRPCPort    int        `env:"HORROR_GRPC_PORT" envDefault:"50051"`

	RedisAddr    string `env:"HORROR_REDIS_ADDR" envDefault:"localhost:6379"`
	DatabasePath string `env:"HORROR_DATABASE_PATH" envDefault:"horror.db"`
	CommandQueue string `env:"HORROR_COMMAND_QUEUE" envDefault:"horror:commands"`

	OracleProvider string        `env:"HORROR_ORACLE_PROVIDER" envDefault:"ollama"`
	OracleTimeout  time.Duration `env:"HORROR_ORACLE_TIMEOUT" envDefault:"5s"`
	OllamaURL      string        `env:"HORROR_OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel    string        `env:"HORROR_OLLAMA_MODEL" envDefault:"qwen2.5:3b"`
	GeminiAPIKey   string        `env:"HORROR_GEMINI_API_KEY"`
	GeminiModel    string        `env:"HORROR_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	TurnDuration           time.Duration `env:"HORROR_TURN_DURATION" envDefault:"60s"`
	AFKSanityPenalty       int           `env:"HORROR_AFK_SANITY_PENALTY" envDefault:"5"`
	ViolationSanityPenalty int           `env:"HORROR_VIOLATION_SANITY_PENALTY" envDefault:"15"`
	HistoryLimit           int           `env:"HORROR_HISTORY_LIMIT" envDefault:"10"`
	MaxPlayers             int           `env:"HORROR_MAX_PLAYERS" envDefault:"8"`

	OtelEndpoint string `env:"HORROR_OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and provider-specific requirements
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("HORROR_ENV", c.Environment,
		[]string{EnvironmentDevelopment, EnvironmentProduction}, vb)
	errors.ValidateEnum("HORROR_ORACLE_PROVIDER", c.OracleProvider,
		[]string{OracleOllama, OracleGemini, OracleDisabled}, vb)
	errors.ValidateRange("HORROR_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidatePositiveDuration("HORROR_ORACLE_TIMEOUT", c.OracleTimeout, vb)
	errors.ValidatePositiveDuration("HORROR_TURN_DURATION", c.TurnDuration, vb)
	errors.ValidateRange("HORROR_AFK_SANITY_PENALTY", c.AFKSanityPenalty, 0, 100, vb)
	errors.ValidateRange("HORROR_VIOLATION_SANITY_PENALTY", c.ViolationSanityPenalty, 0, 100, vb)
	errors.ValidateRange("HORROR_HISTORY_LIMIT", c.HistoryLimit, 1, 100, vb)
	errors.ValidateRange("HORROR_MAX_PLAYERS", c.MaxPlayers, 1, 25, vb)
	errors.ValidateRequired("HORROR_COMMAND_QUEUE", c.CommandQueue, vb)

	if c.OracleProvider == OracleGemini && c.GeminiAPIKey == "" {
		vb.Field("HORROR_GEMINI_API_KEY", "is required when the gemini provider is selected")
	}

	return vb.Build()
}
