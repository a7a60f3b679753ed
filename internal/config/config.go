package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root client configuration, loaded from CARDZ_* environment
// variables with defaults. Flags on individual commands override fields after
// loading.
type Config struct {
	API     APIConfig     `env-prefix:""`
	Session SessionConfig `env-prefix:""`
	DBPath  string        `env:"CARDZ_DB"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string        `env:"CARDZ_API_URL"     env-default:"http://localhost:8787"`
	Token   string        `env:"CARDZ_API_TOKEN"`
	Timeout time.Duration `env:"CARDZ_API_TIMEOUT" env-default:"15s"`
}

// SessionConfig holds review/practice session settings.
type SessionConfig struct {
	BatchLimit int `env:"CARDZ_BATCH_LIMIT" env-default:"10"`
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values no command could work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("CARDZ_API_URL must not be empty")
	}
	if c.Session.BatchLimit < 1 {
		return fmt.Errorf("CARDZ_BATCH_LIMIT must be at least 1, got %d", c.Session.BatchLimit)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("CARDZ_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	return nil
}
