package config

import (
	"fmt"
	"net/url"
)

// FleetAPIConfig defines how the upstream fleet and feasibility service is reached.
type FleetAPIConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// MaxRetries is the number of additional attempts on transient failures.
	MaxRetries int `json:"max_retries"`
	BackoffMS  int `json:"backoff_ms"`
	// RateLimit caps upstream requests per second. Zero disables limiting.
	RateLimit   float64 `json:"rate_limit"`
	Burst       int     `json:"burst"`
	Concurrency int     `json:"concurrency"`
}

// SetDefaults applies sane defaults.
func (c *FleetAPIConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 200
	}
	if c.Burst <= 0 {
		c.Burst = 4
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
}

// Validate checks mandatory fields.
func (c FleetAPIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", c.BaseURL)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	return nil
}

// MockConfig configures the local mock of the fleet service.
type MockConfig struct {
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *MockConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8000"
	}
}
