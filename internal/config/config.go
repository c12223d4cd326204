package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"bungalowpark.db"`
	TokenSecret string `envconfig:"TOKEN_SECRET" default:"change-me-token-secret"`

	// Fallback confirmation window; the reservation settings record can
	// override it at runtime.
	ConfirmationHours int `envconfig:"CONFIRMATION_HOURS" default:"24"`

	// Cron spec for the expired-confirmation sweeper.
	ExpiryCron string `envconfig:"EXPIRY_CRON" default:"*/10 * * * *"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ConfirmationHours <= 0 {
		return fmt.Errorf("CONFIRMATION_HOURS must be > 0")
	}
	if strings.TrimSpace(c.TokenSecret) == "" {
		return fmt.Errorf("TOKEN_SECRET is empty")
	}
	return nil
}

func (c *Config) ConfirmationTTL() time.Duration {
	return time.Duration(c.ConfirmationHours) * time.Hour
}

func (c *Config) IsProd() bool {
	return strings.EqualFold(c.AppEnv, "prod") || strings.EqualFold(c.AppEnv, "production")
}
