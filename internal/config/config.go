// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Config holds the settings shared by all subcommands. Command-line flags
// override these values.
type Config struct {
	APIBaseURL    string        `env:"NHL_API_BASE_URL" env-default:"https://api-web.nhle.com" env-description:"Schedule API base URL"`
	AssetsBaseURL string        `env:"NHL_ASSETS_BASE_URL" env-default:"https://assets.nhle.com" env-description:"Logo assets base URL"`
	SeasonStart   string        `env:"NHL_SEASON_START" env-default:"2025-10-07" env-description:"First date of the season window (YYYY-MM-DD)"`
	SeasonEnd     string        `env:"NHL_SEASON_END" env-default:"2026-04-16" env-description:"Last date of the season window (YYYY-MM-DD)"`
	ScheduleFile  string        `env:"NHL_SCHEDULE_FILE" env-default:"nhl-schedule-2025-2026.csv" env-description:"Schedule CSV path"`
	LogoDir       string        `env:"NHL_LOGO_DIR" env-default:"public/team-icons" env-description:"Directory for downloaded logos"`
	PageDelay     time.Duration `env:"NHL_PAGE_DELAY" env-default:"500ms" env-description:"Pause between schedule page requests"`
	ProbeTimeout  time.Duration `env:"NHL_PROBE_TIMEOUT" env-default:"10s" env-description:"Timeout for each logo candidate request"`
	LogLevel      string        `env:"LOG_LEVEL" env-default:"INFO" env-description:"DEBUG, INFO, WARN or ERROR"`
	MetricsFile   string        `env:"NHL_METRICS_FILE" env-description:"Prometheus textfile written after each run"`
}

// Load reads envFile into the process environment (existing variables win)
// and then parses the environment into a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	if c.PageDelay < 0 {
		return fmt.Errorf("NHL_PAGE_DELAY must not be negative")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("NHL_PROBE_TIMEOUT must be positive")
	}
	return nil
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
