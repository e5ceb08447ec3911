package metrics

import (
	"time"

	"github.com/kilianp07/evfleet/core/feasibility"
)

// RankingEvent records one ranking pass over the selected route.
type RankingEvent struct {
	RouteID     string
	Trucks      int
	BestMatchID string
	Summary     feasibility.Summary
	Duration    time.Duration
	Time        time.Time
}

// MetricsSink records board activity for observability purposes.
type MetricsSink interface {
	RecordRanking(ev RankingEvent) error
}

// RefreshEvent captures one snapshot fetch from the feasibility service.
type RefreshEvent struct {
	Trucks   int
	Routes   int
	Duration time.Duration
	Error    string
	Time     time.Time
}

// RefreshRecorder records snapshot refreshes.
type RefreshRecorder interface {
	RecordRefresh(ev RefreshEvent) error
}

// RouteSummaryEvent is the fleet compatibility of one route after a refresh.
type RouteSummaryEvent struct {
	RouteID string
	Summary feasibility.Summary
	Stats   feasibility.Stats
	Time    time.Time
}

// RouteSummaryRecorder records per-route compatibility tallies.
type RouteSummaryRecorder interface {
	RecordRouteSummary(ev RouteSummaryEvent) error
}

// DispatchOrderEvent represents a dispatch order sent to a truck.
type DispatchOrderEvent struct {
	OrderID  string
	TruckID  string
	RouteID  string
	Accepted bool
	Error    string
	Time     time.Time
}

// DispatchOrderRecorder records orders sent to trucks.
type DispatchOrderRecorder interface {
	RecordDispatchOrder(ev DispatchOrderEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRanking(RankingEvent) error             { return nil }
func (NopSink) RecordRefresh(RefreshEvent) error             { return nil }
func (NopSink) RecordRouteSummary(RouteSummaryEvent) error   { return nil }
func (NopSink) RecordDispatchOrder(DispatchOrderEvent) error { return nil }
