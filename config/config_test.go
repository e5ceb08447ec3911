package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `fleet_api:
  base_url: "http://fleet:8000"
  max_retries: 2
  rate_limit: 5
refresh:
  interval_seconds: 15
http:
  address: ":9000"
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "board"
  max_retries: 3
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
sentry:
  dsn: ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"base_url", cfg.FleetAPI.BaseURL, "http://fleet:8000"},
		{"max_retries", cfg.FleetAPI.MaxRetries, 2},
		{"rate_limit", cfg.FleetAPI.RateLimit, 5.0},
		{"concurrency default", cfg.FleetAPI.Concurrency, 4},
		{"interval", cfg.Refresh.IntervalSeconds, 15},
		{"http", cfg.HTTP.Address, ":9000"},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "board"},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"log level default", cfg.Logging.Level, "info"},
		{"mock default", cfg.Mock.Address, ":8000"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{"fleet_api":{"base_url":"http://fleet:8000"}}`)
	t.Setenv("EVF_FLEET_API__BASE_URL", "https://override:8443")
	t.Setenv("EVF_HTTP__ADDRESS", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://override:8443", cfg.FleetAPI.BaseURL)
	assert.Equal(t, ":7000", cfg.HTTP.Address)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.FleetAPI.BaseURL)
	assert.Equal(t, 30, cfg.Refresh.IntervalSeconds)
	assert.Equal(t, "evfleet-board", cfg.MQTT.ClientID)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", ""))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeConfig(t, "bad.yaml", "fleet_api:\n  base_url: \"ftp://nope\"\n"))
	assert.ErrorContains(t, err, "fleet_api")

	_, err = Load(writeConfig(t, "bad.yaml", "refresh:\n  interval_seconds: -5\n"))
	assert.ErrorContains(t, err, "refresh")

	_, err = Load(writeConfig(t, "bad.yaml", "logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging")

	_, err = Load(writeConfig(t, "bad.yaml", "sentry:\n  traces_sample_rate: 2\n"))
	assert.ErrorContains(t, err, "sentry")

	_, err = Load(writeConfig(t, "bad.yaml", "metrics:\n  sinks:\n    - conf: {}\n"))
	assert.ErrorContains(t, err, "metrics")
}
