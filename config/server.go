package config

import "fmt"

// RefreshConfig controls how often the snapshot is re-fetched.
type RefreshConfig struct {
	IntervalSeconds int `json:"interval_seconds"`
}

// SetDefaults applies sane defaults.
func (c *RefreshConfig) SetDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c RefreshConfig) Validate() error {
	if c.IntervalSeconds < 1 {
		return fmt.Errorf("interval_seconds must be at least 1")
	}
	return nil
}

// HTTPConfig defines the board API listener.
type HTTPConfig struct {
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}
