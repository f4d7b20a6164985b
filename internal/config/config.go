// Package config loads the rxn CLI configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all rxn CLI configuration.
type Config struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	ProjectID string `yaml:"project_id"`

	// Timeout for single HTTP requests, as a Go duration string.
	Timeout string `yaml:"timeout"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RateLimitConfig configures the client-side request governor.
type RateLimitConfig struct {
	MaxPerMinute int    `yaml:"max_per_minute"`
	MinInterval  string `yaml:"min_interval"`

	// Wait makes the governor block instead of failing when the budget is
	// spent.
	Wait bool `yaml:"wait"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		BaseURL: "https://rxn.res.ibm.com",
		Timeout: "60s",
		RateLimit: RateLimitConfig{
			MaxPerMinute: 100000,
			MinInterval:  "10us",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location,
// $HOME/.rxn4chemistry/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".rxn4chemistry", "config.yaml")
}

// Load reads the configuration from path, falling back to defaults when the
// file does not exist, and applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus env vars is a valid setup.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file contents.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("RXN4CHEMISTRY_API_KEY"); key != "" {
		c.APIKey = key
	}
	if base := os.Getenv("RXN4CHEMISTRY_BASE_URL"); base != "" {
		c.BaseURL = base
	}
	if project := os.Getenv("RXN4CHEMISTRY_PROJECT_ID"); project != "" {
		c.ProjectID = project
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("no api key configured; set api_key or RXN4CHEMISTRY_API_KEY")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.MinIntervalDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses the request timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 60 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// MinIntervalDuration parses the governor's minimum request spacing.
func (c *Config) MinIntervalDuration() (time.Duration, error) {
	if c.RateLimit.MinInterval == "" {
		return 10 * time.Microsecond, nil
	}
	d, err := time.ParseDuration(c.RateLimit.MinInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid min_interval %q: %w", c.RateLimit.MinInterval, err)
	}
	return d, nil
}
