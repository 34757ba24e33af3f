package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBase         = "USD"
	DefaultPollInterval = 1 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultAPIBaseURL   = "https://api.frankfurter.dev/v1"
	DefaultAPITimeout   = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultRateLimit    = 4 // requests per second
	DefaultHealthPort   = 8080
)

func (c *WatcherConfig) applyDefaults() {
	if c.Base == "" {
		c.Base = DefaultBase
	}

	// Poll defaults
	if c.Poll.Interval == 0 {
		c.Poll.Interval = DefaultPollInterval
	}
	if c.Poll.Timeout == 0 {
		c.Poll.Timeout = DefaultFetchTimeout
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = DefaultRateLimit
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}
