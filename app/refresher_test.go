package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evfleet/core/events"
	"github.com/kilianp07/evfleet/internal/eventbus"
)

func drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestRefreshStoresSnapshotAndPublishes(t *testing.T) {
	bus := eventbus.NewTyped[events.Event]()
	defer bus.Close()
	sub := bus.Subscribe()
	store := NewSnapshotStore()
	r := NewRefresher(&stubFetcher{snap: demoSnapshot()}, store, bus, time.Minute)

	require.NoError(t, r.Refresh(context.Background()))
	snap, ok := store.Get()
	require.True(t, ok)
	assert.Len(t, snap.Trucks, 5)

	evs := drain(sub)
	require.Len(t, evs, 4, "one refresh event and one summary per route")
	refreshed, ok := evs[0].(events.SnapshotRefreshed)
	require.True(t, ok)
	assert.NoError(t, refreshed.Err)
	assert.Equal(t, 3, refreshed.Routes)

	sum, ok := evs[1].(events.RouteSummarized)
	require.True(t, ok)
	assert.Equal(t, "R-01", sum.RouteID)
	assert.Equal(t, 3, sum.Summary.Green)
	assert.Equal(t, 1, sum.Summary.Yellow)
	assert.Equal(t, 1, sum.Summary.Red)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	bus := eventbus.NewTyped[events.Event]()
	defer bus.Close()
	sub := bus.Subscribe()
	store := NewSnapshotStore()
	store.Set(demoSnapshot())
	boom := errors.New("upstream down")
	r := NewRefresher(&stubFetcher{err: boom}, store, bus, time.Minute)

	assert.ErrorIs(t, r.Refresh(context.Background()), boom)
	snap, ok := store.Get()
	require.True(t, ok)
	assert.Len(t, snap.Routes, 3)

	evs := drain(sub)
	require.Len(t, evs, 1)
	assert.ErrorIs(t, evs[0].(events.SnapshotRefreshed).Err, boom)
}

func TestRefresherStartPollsUntilCanceled(t *testing.T) {
	f := &stubFetcher{snap: demoSnapshot()}
	r := NewRefresher(f, NewSnapshotStore(), nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	require.Eventually(t, func() bool { return f.count() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
