package app

import (
	"context"
	"time"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/events"
	"github.com/kilianp07/evfleet/core/feasibility"
	coremon "github.com/kilianp07/evfleet/core/monitoring"
	"github.com/kilianp07/evfleet/infra/logger"
	"github.com/kilianp07/evfleet/internal/eventbus"
)

// SnapshotFetcher loads a complete snapshot from upstream.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (board.Snapshot, error)
}

// Refresher polls the fleet service and keeps the store current.
type Refresher struct {
	fetcher  SnapshotFetcher
	store    *SnapshotStore
	bus      *eventbus.TypedBus[events.Event]
	log      logger.Logger
	interval time.Duration
	now      func() time.Time
}

// NewRefresher creates a refresher. A non-positive interval defaults to 30s.
func NewRefresher(f SnapshotFetcher, store *SnapshotStore, bus *eventbus.TypedBus[events.Event], interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{
		fetcher:  f,
		store:    store,
		bus:      bus,
		log:      logger.New("refresher"),
		interval: interval,
		now:      time.Now,
	}
}

// Start refreshes immediately and then on every tick until ctx is canceled.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		r.log.Errorf("refresh error: %v", err)
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.log.Errorf("refresh error: %v", err)
			}
		}
	}
}

// Refresh fetches one snapshot. On failure the previous snapshot is kept.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := r.now()
	snap, err := r.fetcher.FetchSnapshot(ctx)
	took := r.now().Sub(start)
	if err != nil {
		coremon.CaptureException(err, map[string]string{"module": "refresher"})
		r.publish(events.SnapshotRefreshed{Duration: took, Err: err, At: r.now()})
		return err
	}
	r.store.Set(snap)
	r.log.Infow("snapshot refreshed", map[string]any{
		"trucks": len(snap.Trucks),
		"routes": len(snap.Routes),
		"took":   took.String(),
	})
	r.publish(events.SnapshotRefreshed{Trucks: len(snap.Trucks), Routes: len(snap.Routes), Duration: took, At: snap.RefreshedAt})
	for _, rt := range snap.Routes {
		results := snap.Results(rt.ID)
		r.publish(events.RouteSummarized{
			RouteID: rt.ID,
			Summary: feasibility.Summarize(results),
			Stats:   feasibility.FleetStats(results),
			At:      snap.RefreshedAt,
		})
	}
	return nil
}

func (r *Refresher) publish(ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}
