package metrics

import (
	"fmt"

	"github.com/kilianp07/evfleet/core/factory"
)

// Config selects the metrics sinks of the board service.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	// PrometheusAddr exposes /metrics on a dedicated listener when set, e.g. ":9100".
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr"`
}

// Validate checks that every sink names its type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sink %d: type is required", i)
		}
	}
	return nil
}
