package app

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/fleetapi"
)

var refreshedAt = time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

func demoSnapshot() board.Snapshot {
	trucks := fleetapi.DemoTrucks()
	routes := fleetapi.DemoRoutes()
	fz := make(map[string][]model.FeasibilityResult, len(routes))
	for _, r := range routes {
		fz[r.ID] = fleetapi.AssessRoute(trucks, r)
	}
	return board.Snapshot{Trucks: trucks, Routes: routes, Feasibility: fz, RefreshedAt: refreshedAt}
}

type stubFetcher struct {
	mu    sync.Mutex
	snap  board.Snapshot
	err   error
	calls int
}

func (s *stubFetcher) FetchSnapshot(context.Context) (board.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.snap, s.err
}

func (s *stubFetcher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubPublisher struct {
	mu     sync.Mutex
	orders []model.DispatchOrder
	err    error
}

func (p *stubPublisher) PublishOrder(_ context.Context, o model.DispatchOrder) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.orders = append(p.orders, o)
	return nil
}
