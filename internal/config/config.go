package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for converse-server.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// PostgreSQL
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Auth
	TokenSecret   string        `env:"TOKEN_SECRET,notEmpty"`
	TokenIssuer   string        `env:"TOKEN_ISSUER" envDefault:"converse-server"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"720h"`

	// Search provider
	SearchBaseURL    string `env:"SEARCH_BASE_URL,notEmpty"`
	SearchAPIKey     string `env:"SEARCH_API_KEY,notEmpty"`
	SearchMaxResults int    `env:"SEARCH_MAX_RESULTS" envDefault:"5"`

	// Completion provider
	CompletionBaseURL     string  `env:"COMPLETION_BASE_URL,notEmpty"`
	CompletionAPIKey      string  `env:"COMPLETION_API_KEY,notEmpty"`
	CompletionModel       string  `env:"COMPLETION_MODEL" envDefault:"mistral-tiny"`
	CompletionMaxTokens   int     `env:"COMPLETION_MAX_TOKENS" envDefault:"500"`
	CompletionTemperature float32 `env:"COMPLETION_TEMPERATURE" envDefault:"0.7"`

	// Chat prompt assembly. Stored history is unbounded; only the slice
	// replayed into the prompt is capped. 0 disables the cap.
	ChatPromptMaxMessages int `env:"CHAT_PROMPT_MAX_MESSAGES" envDefault:"40"`

	// Observability / Logging
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string        `env:"SERVICE_NAME" envDefault:"converse-api"`
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.SearchBaseURL); err != nil {
		return nil, fmt.Errorf("invalid SEARCH_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.CompletionBaseURL); err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_BASE_URL: %w", err)
	}
	if cfg.SearchMaxResults <= 0 {
		return nil, fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", cfg.SearchMaxResults)
	}
	if cfg.ChatPromptMaxMessages < 0 {
		return nil, fmt.Errorf("CHAT_PROMPT_MAX_MESSAGES must not be negative, got %d", cfg.ChatPromptMaxMessages)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, nil
}

var Version = "dev"
