// Package config loads the watcher configuration from YAML.
//
// Values of the form ${VAR} are substituted from the environment before
// parsing, so secrets (e.g. an API key) can stay out of the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WatcherConfig holds configuration for the rate watcher daemon.
type WatcherConfig struct {
	Base   string       `yaml:"base"`
	Poll   PollConfig   `yaml:"poll"`
	API    APIConfig    `yaml:"api"`
	Health HealthConfig `yaml:"health"`
}

// PollConfig configures the poll loop.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// APIConfig configures the rates provider client.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	RateLimit    float64       `yaml:"rate_limit"` // requests/second, 0 = provider default
}

// HealthConfig configures the health endpoint.
type HealthConfig struct {
	Port int `yaml:"port"`
}

// Load reads and parses the config file at path. ${VAR} references are
// expanded from the environment.
func Load(path string) (*WatcherConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg WatcherConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads the config and fills unset fields with defaults.
func LoadWithDefaults(path string) (*WatcherConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads the config, applies defaults, and validates.
func LoadAndValidate(path string) (*WatcherConfig, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
