package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process configuration, read from ADBOARD_* environment
// variables with an optional .env file for local development.
type Config struct {
	Addr         string `envconfig:"ADDR" default:":8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"adboard.db"`
	// SessionSecret signs the HMAC-SHA256 session tokens.
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	CookieSecure  bool   `envconfig:"COOKIE_SECURE" default:"true"`
	BcryptCost    int    `envconfig:"BCRYPT_COST" default:"12"`
	// StrictEmptyResults keeps the historical contract where list-style
	// reads fail on an empty result instead of returning an empty set.
	StrictEmptyResults bool   `envconfig:"STRICT_EMPTY_RESULTS" default:"true"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("adboard", &cfg); err != nil {
		return Config{}, err
	}

	if len(cfg.SessionSecret) < 32 {
		return Config{}, fmt.Errorf("ADBOARD_SESSION_SECRET must be at least 32 characters")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return Config{}, fmt.Errorf("ADBOARD_BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}
	return cfg, nil
}
