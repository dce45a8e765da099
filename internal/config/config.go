package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment driven configuration for the chat service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"llm-chat-server"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"` // json or console
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenAI
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Azure OpenAI
	AzureAPIKey     string `env:"AZURE_GPT4O_MINI_API_KEY"`
	AzureEndpoint   string `env:"AZURE_GPT4O_MINI_API_ENDPOINT"`
	AzureAPIVersion string `env:"AZURE_GPT4O_MINI_API_VERSION" envDefault:"2023-07-01-preview"`
	AzureDeployment string `env:"AZURE_GPT4O_MINI_DEPLOYMENT"`

	// Google Gemini
	GeminiAPIKey string `env:"GOOGLE_GEMINI2_FLASH_API_KEY"`
	GeminiModel  string `env:"GOOGLE_GEMINI2_FLASH_MODEL" envDefault:"gemini-2.0-flash-001"`

	// Google Custom Search
	GoogleCSEID     string `env:"GOOGLE_CSE_ID"`
	GoogleCSEAPIKey string `env:"GOOGLE_CSE_API_KEY"`

	// Serper (optional secondary engine)
	SerperAPIKey string `env:"SERPER_API_KEY"`

	// Outbound HTTP budgets
	ModelTimeout  time.Duration `env:"MODEL_TIMEOUT" envDefault:"75s"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"5s"`
	FetchTimeout  time.Duration `env:"PAGE_FETCH_TIMEOUT" envDefault:"10s"`

	// Search retry knobs
	RetryMaxAttempts  int           `env:"SEARCH_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"SEARCH_RETRY_INITIAL_DELAY" envDefault:"250ms"`
	RetryMaxDelay     time.Duration `env:"SEARCH_RETRY_MAX_DELAY" envDefault:"5s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 75 * time.Second
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 5 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = 3
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
