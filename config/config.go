// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"5200"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	UseMemoryStore bool     `env:"USE_MEMORY_STORE"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AdminToken     string   `env:"ADMIN_TOKEN"`

	GeminiAPIKey       string        `env:"GEMINI_API_KEY"`
	GeminiModel        string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	MaxPromptChars     int           `env:"MAX_PROMPT_CHARS" envDefault:"2800"`
	MaxSubmissionChars int           `env:"MAX_SUBMISSION_CHARS" envDefault:"5000"`
	GradingTimeout     time.Duration `env:"GRADING_TIMEOUT" envDefault:"0s"`

	OverrideRefreshInterval    time.Duration `env:"OVERRIDE_REFRESH_INTERVAL" envDefault:"1m"`
	LeaderboardPublishInterval time.Duration `env:"LEADERBOARD_PUBLISH_INTERVAL" envDefault:"5m"`

	R2 R2

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT"`
}

type R2 struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

// Load reads .env when present, then parses and validates the environment.
func Load(files ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks rules that span fields.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" && !c.UseMemoryStore {
		errs = append(errs, errors.New("DATABASE_URL is required unless USE_MEMORY_STORE is set"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.MaxPromptChars <= 0 {
		errs = append(errs, errors.New("MAX_PROMPT_CHARS must be positive"))
	}
	if c.MaxSubmissionChars <= 0 {
		errs = append(errs, errors.New("MAX_SUBMISSION_CHARS must be positive"))
	}
	if c.GradingTimeout < 0 {
		errs = append(errs, errors.New("GRADING_TIMEOUT must not be negative"))
	}
	if c.OverrideRefreshInterval <= 0 {
		errs = append(errs, errors.New("OVERRIDE_REFRESH_INTERVAL must be positive"))
	}
	if c.LeaderboardPublishInterval <= 0 {
		errs = append(errs, errors.New("LEADERBOARD_PUBLISH_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}
