package board

import "github.com/kilianp07/evfleet/core/feasibility"

// RouteSummary is the compatibility tally and outcome spread of one route.
type RouteSummary struct {
	RouteID string              `json:"route_id"`
	Summary feasibility.Summary `json:"summary"`
	Total   int                 `json:"total"`
	Stats   feasibility.Stats   `json:"stats"`
}

// SummarizeRoute aggregates the results of routeID. It reports false when
// the route is not part of the snapshot.
func SummarizeRoute(s Snapshot, routeID string) (RouteSummary, bool) {
	if _, ok := s.Route(routeID); !ok {
		return RouteSummary{}, false
	}
	results := s.Results(routeID)
	sum := feasibility.Summarize(results)
	return RouteSummary{
		RouteID: routeID,
		Summary: sum,
		Total:   sum.Total(),
		Stats:   feasibility.FleetStats(results),
	}, true
}
