package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/evfleet/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records board activity in Prometheus metrics.
type PromSink struct {
	rankings   *prometheus.CounterVec
	rankingDur prometheus.Histogram
	routes     *prometheus.GaugeVec
	refreshes  *prometheus.CounterVec
	refreshDur prometheus.Histogram
	orders     *prometheus.CounterVec
}

// NewPromSink registers board metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		rankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evfleet_rankings_total",
			Help: "Total number of ranking passes per route",
		}, []string{"route_id"}),
		rankingDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evfleet_ranking_duration_seconds",
			Help:    "Time spent ranking trucks for a route",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		routes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evfleet_route_trucks",
			Help: "Trucks per feasibility status for each route",
		}, []string{"route_id", "status"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evfleet_refreshes_total",
			Help: "Snapshot refreshes by outcome",
		}, []string{"success"}),
		refreshDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evfleet_refresh_duration_seconds",
			Help:    "Time spent fetching a snapshot",
			Buckets: prometheus.DefBuckets,
		}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evfleet_dispatch_orders_total",
			Help: "Dispatch orders sent to trucks",
		}, []string{"route_id", "accepted"}),
	}
	var err error
	if s.rankings, err = register(reg, s.rankings); err != nil {
		return nil, err
	}
	if s.rankingDur, err = register(reg, s.rankingDur); err != nil {
		return nil, err
	}
	if s.routes, err = register(reg, s.routes); err != nil {
		return nil, err
	}
	if s.refreshes, err = register(reg, s.refreshes); err != nil {
		return nil, err
	}
	if s.refreshDur, err = register(reg, s.refreshDur); err != nil {
		return nil, err
	}
	if s.orders, err = register(reg, s.orders); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when one with the same
// descriptor exists, so several sinks can share the default registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRanking counts the ranking pass and observes its duration.
func (s *PromSink) RecordRanking(ev coremetrics.RankingEvent) error {
	s.rankings.WithLabelValues(ev.RouteID).Inc()
	s.rankingDur.Observe(ev.Duration.Seconds())
	return nil
}

// RecordRouteSummary sets the per-status gauges of a route.
func (s *PromSink) RecordRouteSummary(ev coremetrics.RouteSummaryEvent) error {
	s.routes.WithLabelValues(ev.RouteID, "green").Set(float64(ev.Summary.Green))
	s.routes.WithLabelValues(ev.RouteID, "yellow").Set(float64(ev.Summary.Yellow))
	s.routes.WithLabelValues(ev.RouteID, "red").Set(float64(ev.Summary.Red))
	return nil
}

// RecordRefresh counts refreshes by outcome.
func (s *PromSink) RecordRefresh(ev coremetrics.RefreshEvent) error {
	s.refreshes.WithLabelValues(strconv.FormatBool(ev.Error == "")).Inc()
	s.refreshDur.Observe(ev.Duration.Seconds())
	return nil
}

// RecordDispatchOrder counts dispatch orders.
func (s *PromSink) RecordDispatchOrder(ev coremetrics.DispatchOrderEvent) error {
	s.orders.WithLabelValues(ev.RouteID, strconv.FormatBool(ev.Accepted)).Inc()
	return nil
}
