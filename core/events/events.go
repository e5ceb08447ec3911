package events

import (
	"time"

	"github.com/kilianp07/evfleet/core/feasibility"
)

// Event is implemented by every board event.
type Event interface {
	isEvent()
}

// SnapshotRefreshed is published after each attempt to refresh the snapshot.
type SnapshotRefreshed struct {
	Trucks   int
	Routes   int
	Duration time.Duration
	Err      error
	At       time.Time
}

// RouteSummarized carries the fleet compatibility of one route.
type RouteSummarized struct {
	RouteID string
	Summary feasibility.Summary
	Stats   feasibility.Stats
	At      time.Time
}

// RankingComputed is published whenever trucks are ranked for a route.
type RankingComputed struct {
	RouteID     string
	Trucks      int
	BestMatchID string
	Summary     feasibility.Summary
	Duration    time.Duration
	At          time.Time
}

// DispatchSent is published for each dispatch order.
type DispatchSent struct {
	OrderID string
	TruckID string
	RouteID string
	Err     error
	At      time.Time
}

func (SnapshotRefreshed) isEvent() {}
func (RouteSummarized) isEvent()   {}
func (RankingComputed) isEvent()   {}
func (DispatchSent) isEvent()      {}
