package board

import "errors"

var (
	// ErrNoSnapshot means no complete snapshot has been fetched yet.
	ErrNoSnapshot = errors.New("no fleet snapshot available")
	// ErrUnknownRoute is returned for route IDs absent from the snapshot.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrUnknownTruck is returned for truck IDs absent from the snapshot.
	ErrUnknownTruck = errors.New("unknown truck")
	// ErrNotDispatchable is returned when a truck cannot take the route.
	ErrNotDispatchable = errors.New("truck cannot be dispatched on route")
	// ErrDispatchDisabled is returned when no order publisher is configured.
	ErrDispatchDisabled = errors.New("dispatch disabled")
)
