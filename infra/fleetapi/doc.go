// Package fleetapi talks to the upstream fleet and feasibility service.
//
// Client fetches trucks, routes and per-route feasibility results and
// assembles them into a board.Snapshot. A snapshot is all or nothing: any
// failed request aborts the fetch with ErrDataUnavailable so callers never
// rank on partial data.
//
// MockServer serves a small demo fleet with a simple energy model for local
// development and tests.
package fleetapi
