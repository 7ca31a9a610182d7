package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client core configuration.
type Config struct {
	API     APIConfig
	Vault   VaultConfig
	Media   MediaConfig
	Logging LogConfig
}

// APIConfig holds remote API connection settings.
type APIConfig struct {
	Endpoint     string        `envconfig:"API_ENDPOINT" default:"http://localhost:8000/graphql"`
	Timeout      time.Duration `envconfig:"API_TIMEOUT" default:"0s"`
	AttachToken  bool          `envconfig:"API_ATTACH_TOKEN" default:"false"`
	UserAgent    string        `envconfig:"API_USER_AGENT" default:"PatternAssistant-Core/1.0"`
	RateLimitRPS float64       `envconfig:"API_RATE_LIMIT_RPS" default:"0"`
}

// VaultConfig holds credential storage settings.
type VaultConfig struct {
	Service  string `envconfig:"VAULT_SERVICE" default:"com.patternassistant.app"`
	TokenKey string `envconfig:"VAULT_TOKEN_KEY" default:"authToken"`
	Dir      string `envconfig:"VAULT_DIR" default:""`
	Backend  string `envconfig:"VAULT_BACKEND" default:"auto"`
}

// MediaConfig holds image transport settings.
type MediaConfig struct {
	MaxDimension int     `envconfig:"MEDIA_MAX_DIMENSION" default:"1920"`
	Quality      float64 `envconfig:"MEDIA_QUALITY" default:"0.8"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE" default:""`
	// Trace logs a span per operation at debug level.
	Trace bool `envconfig:"LOG_TRACE" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:  "http://localhost:8000/graphql",
			UserAgent: "PatternAssistant-Core/1.0",
		},
		Vault: VaultConfig{
			Service:  "com.patternassistant.app",
			TokenKey: "authToken",
			Backend:  "auto",
		},
		Media: MediaConfig{
			MaxDimension: 1920,
			Quality:      0.8,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Trace:       true,
		},
	}
}

// Validate rejects values the core cannot run with.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("API_ENDPOINT cannot be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT cannot be negative")
	}
	switch c.Vault.Backend {
	case "auto", "keyring", "file":
	default:
		return fmt.Errorf("invalid VAULT_BACKEND %q (must be: auto, keyring, or file)", c.Vault.Backend)
	}
	if c.Vault.TokenKey == "" {
		return fmt.Errorf("VAULT_TOKEN_KEY cannot be empty")
	}
	if c.Media.MaxDimension <= 0 {
		return fmt.Errorf("MEDIA_MAX_DIMENSION must be positive")
	}
	if c.Media.Quality <= 0 || c.Media.Quality > 1 {
		return fmt.Errorf("MEDIA_QUALITY must be in (0, 1]")
	}
	return nil
}
