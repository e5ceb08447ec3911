package board

import (
	"time"

	"github.com/kilianp07/evfleet/core/feasibility"
	"github.com/kilianp07/evfleet/core/model"
)

// Snapshot is one consistent fetch of trucks, routes and per-route results.
type Snapshot struct {
	Trucks      []model.Truck                        `json:"trucks"`
	Routes      []model.Route                        `json:"routes"`
	Feasibility map[string][]model.FeasibilityResult `json:"feasibility"`
	RefreshedAt time.Time                            `json:"refreshed_at"`
}

// Complete reports whether every route has a result set. Ranking on partial
// data would silently bias the precedence rules.
func (s Snapshot) Complete() bool {
	for _, r := range s.Routes {
		if _, ok := s.Feasibility[r.ID]; !ok {
			return false
		}
	}
	return true
}

// Route looks up a route by ID.
func (s Snapshot) Route(id string) (model.Route, bool) {
	for _, r := range s.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Route{}, false
}

// Truck looks up a truck by ID.
func (s Snapshot) Truck(id string) (model.Truck, bool) {
	for _, t := range s.Trucks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Truck{}, false
}

// Index returns the result index of a route.
func (s Snapshot) Index(routeID string) feasibility.Index {
	return feasibility.NewIndex(s.Feasibility[routeID])
}

// Results returns the route's results with one entry per truck, the last
// reported result winning. Every per-route tally is computed from it.
func (s Snapshot) Results(routeID string) []model.FeasibilityResult {
	return s.Index(routeID).Results()
}
