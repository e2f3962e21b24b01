package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// LLM provider: "anthropic", "openai", or "ollama".
	LLMProvider     string `env:"LLM_PROVIDER" env-default:"openai"`
	ModelName       string `env:"MODEL_NAME" env-default:"gpt-4o"`
	CriticModelName string `env:"CRITIC_MODEL_NAME"` // defaults to ModelName
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OllamaBaseURL   string `env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`

	// Bounded feedback retries per contract call.
	MaxRetries int `env:"AGENT_MAX_RETRIES" env-default:"3"`
	// Per-agent-call timeout in seconds.
	AgentTimeoutSeconds int `env:"AGENT_TIMEOUT_SECONDS" env-default:"60"`

	// Relational store: "sqlite" or "postgres".
	DBDriver string `env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN    string `env:"DB_DSN" env-default:"campaign.db"`

	// Optional: enables the redis-backed per-game turn lock when set.
	// Empty means the in-process lock, which is fine for a single node.
	RedisAddr string `env:"REDIS_ADDR"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.CriticModelName == "" {
		cfg.CriticModelName = cfg.ModelName
	}
	return &cfg, nil
}

// SlogLevel maps the configured log level string to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
