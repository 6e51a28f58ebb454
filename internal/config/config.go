// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Port       int    `envconfig:"PORT" default:"8080"`
		LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
		StaticPath string `envconfig:"STATIC_PATH"`
		// CORSOrigins is a comma-separated list of allowed browser origins.
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	}

	DB struct {
		// Driver is "sqlite" or "postgres".
		Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path   string `envconfig:"DB_PATH" default:"./data/cashcrush.db"`
		URL    string `envconfig:"DATABASE_URL"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
		Issuer    string `envconfig:"JWT_ISSUER"`
	}

	Email struct {
		ResendAPIKey string `envconfig:"RESEND_API_KEY"`
		From         string `envconfig:"EMAIL_FROM" default:"Cash Crush <reminders@cashcrush.app>"`
		// Cooldown is the minimum time between two reminders to the same person.
		Cooldown time.Duration `envconfig:"REMINDER_COOLDOWN" default:"24h"`
	}

	Insights struct {
		GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
		Model        string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
		CacheTTL     time.Duration `envconfig:"INSIGHT_CACHE_TTL" default:"24h"`
	}

	Redis struct {
		// Addr is empty when Redis is not used. Caching and reminder
		// cooldowns are then disabled.
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == "postgres" {
		return c.DB.URL
	}
	return c.DB.Path
}

// SlogLevel parses App.LogLevel, defaulting to INFO.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Email.Cooldown < 0 || c.Insights.CacheTTL < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
