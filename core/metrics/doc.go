// Package metrics defines the recorder interfaces used to observe the board:
// ranking passes, snapshot refreshes, per-route summaries and dispatch orders.
// Sinks such as the Prometheus and InfluxDB implementations in infra/metrics
// register themselves in the factory registry and can be combined with
// NewMultiSink. NewMetricsSink returns a MultiSink automatically when
// several sinks are configured.
package metrics
