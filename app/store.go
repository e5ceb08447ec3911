package app

import (
	"sort"
	"sync"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/model"
)

// SnapshotStore holds the latest complete snapshot and the last dispatch
// order of every truck.
type SnapshotStore struct {
	mu     sync.RWMutex
	snap   board.Snapshot
	ok     bool
	orders map[string]model.DispatchOrder
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{orders: map[string]model.DispatchOrder{}}
}

// Set replaces the current snapshot.
func (s *SnapshotStore) Set(snap board.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.ok = true
	s.mu.Unlock()
}

// Get returns the current snapshot and whether one was ever stored.
func (s *SnapshotStore) Get() (board.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.ok
}

// RecordDispatch remembers the last order sent to a truck.
func (s *SnapshotStore) RecordDispatch(o model.DispatchOrder) {
	s.mu.Lock()
	s.orders[o.TruckID] = o
	s.mu.Unlock()
}

// LastDispatch returns the last order sent to truckID.
func (s *SnapshotStore) LastDispatch(truckID string) (model.DispatchOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[truckID]
	return o, ok
}

// Dispatches lists the last order of every truck, most recent first.
func (s *SnapshotStore) Dispatches() []model.DispatchOrder {
	s.mu.RLock()
	res := make([]model.DispatchOrder, 0, len(s.orders))
	for _, o := range s.orders {
		res = append(res, o)
	}
	s.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool {
		if !res[i].IssuedAt.Equal(res[j].IssuedAt) {
			return res[i].IssuedAt.After(res[j].IssuedAt)
		}
		return res[i].TruckID < res[j].TruckID
	})
	return res
}
