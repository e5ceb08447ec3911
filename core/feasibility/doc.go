// Package feasibility turns externally computed feasibility results into
// dispatch decisions for a selected route.
//
// Every function is pure and works on read-only snapshots:
//   - Project, TotalWaitMinutes, ProjectAvailability, ProjectTransit: time projection
//   - NetChargeMinutes: charge time net of load/unload dwell overlap
//   - Classify: display class and badge with first-match-wins precedence
//   - Rank: deterministic multi-key ordering of trucks
//   - BestMatch: first eligible truck of a ranking
//   - Summarize, FleetStats: per-route tallies and statistics
//
// Malformed input never produces an error; it maps to a defined output.
package feasibility
