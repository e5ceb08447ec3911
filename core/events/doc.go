// Package events defines the board related events emitted on the event bus.
//
// Available event types:
//   - SnapshotRefreshed: a refresh of trucks, routes and feasibility finished
//   - RouteSummarized: compatibility tallies of one route after a refresh
//   - RankingComputed: a ranking pass for a selected route
//   - DispatchSent: a dispatch order was published (or failed to publish)
package events
