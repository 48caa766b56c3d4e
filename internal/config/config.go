package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	MigrationsPath string
	SessionSecret  string
	SessionTTL     time.Duration
	DefaultLocale  string
	// SimulatedVotersSeed enables the demo vote-noise injector when set
	// (non-zero); leave unset in production.
	SimulatedVotersSeed int64
	SimulatedVoters     bool
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment
	// (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		DefaultLocale:  os.Getenv("DEFAULT_LOCALE"),
	}

	if seed := strings.TrimSpace(os.Getenv("SIMULATED_VOTERS_SEED")); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: SIMULATED_VOTERS_SEED must be an integer: %w", err)
		}
		cfg.SimulatedVotersSeed = n
		cfg.SimulatedVoters = true
	}

	ttl := 30 * 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: SESSION_TTL invalid (%q): %w", raw, err)
		}
		ttl = parsed
	}
	cfg.SessionTTL = ttl

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies defaults and rejects unusable values.
func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		c.HTTPAddr = ":3000"
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("config: SESSION_SECRET is required and cannot be empty")
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "zh-CN"
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/rally?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}

	return nil
}
