package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/events"
	"github.com/kilianp07/evfleet/core/feasibility"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/logger"
	"github.com/kilianp07/evfleet/internal/eventbus"
)

// OrderPublisher delivers dispatch orders to trucks.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, o model.DispatchOrder) error
}

// Board answers board queries on the current snapshot and sends dispatch orders.
type Board struct {
	store     *SnapshotStore
	bus       *eventbus.TypedBus[events.Event]
	publisher OrderPublisher
	log       logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewBoard creates a Board. A nil publisher disables dispatch.
func NewBoard(store *SnapshotStore, bus *eventbus.TypedBus[events.Event], pub OrderPublisher) *Board {
	return &Board{
		store:     store,
		bus:       bus,
		publisher: pub,
		log:       logger.New("board"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (b *Board) snapshot() (board.Snapshot, error) {
	snap, ok := b.store.Get()
	if !ok {
		return board.Snapshot{}, board.ErrNoSnapshot
	}
	return snap, nil
}

// Routes returns the route cards without any selection.
func (b *Board) Routes() ([]board.RouteCard, error) {
	snap, err := b.snapshot()
	if err != nil {
		return nil, err
	}
	return board.Build(snap, board.Selection{}).Routes, nil
}

// View builds the board for routeID. An empty routeID selects nothing.
func (b *Board) View(routeID string) (board.View, error) {
	snap, err := b.snapshot()
	if err != nil {
		return board.View{}, err
	}
	if routeID != "" {
		if _, ok := snap.Route(routeID); !ok {
			return board.View{}, fmt.Errorf("%w: %s", board.ErrUnknownRoute, routeID)
		}
	}
	start := b.now()
	v := board.Build(snap, board.Select(routeID))
	if routeID != "" {
		ev := events.RankingComputed{
			RouteID:     routeID,
			Trucks:      len(v.Trucks),
			BestMatchID: v.BestMatchID,
			Duration:    b.now().Sub(start),
			At:          b.now(),
		}
		if v.FleetSummary != nil {
			ev.Summary = *v.FleetSummary
		}
		b.publish(ev)
	}
	return v, nil
}

// Summary aggregates the results of routeID.
func (b *Board) Summary(routeID string) (board.RouteSummary, error) {
	snap, err := b.snapshot()
	if err != nil {
		return board.RouteSummary{}, err
	}
	sum, ok := board.SummarizeRoute(snap, routeID)
	if !ok {
		return board.RouteSummary{}, fmt.Errorf("%w: %s", board.ErrUnknownRoute, routeID)
	}
	return sum, nil
}

// Dispatch sends truckID on routeID when the board allows it.
func (b *Board) Dispatch(ctx context.Context, truckID, routeID string) (model.DispatchOrder, error) {
	if b.publisher == nil {
		return model.DispatchOrder{}, board.ErrDispatchDisabled
	}
	snap, err := b.snapshot()
	if err != nil {
		return model.DispatchOrder{}, err
	}
	if _, ok := snap.Route(routeID); !ok {
		return model.DispatchOrder{}, fmt.Errorf("%w: %s", board.ErrUnknownRoute, routeID)
	}
	t, ok := snap.Truck(truckID)
	if !ok {
		return model.DispatchOrder{}, fmt.Errorf("%w: %s", board.ErrUnknownTruck, truckID)
	}
	if !feasibility.CanDispatch(t, snap.Index(routeID).Lookup(truckID)) {
		return model.DispatchOrder{}, fmt.Errorf("%w: %s on %s", board.ErrNotDispatchable, truckID, routeID)
	}

	o := model.DispatchOrder{OrderID: b.newID(), TruckID: truckID, RouteID: routeID, IssuedAt: b.now()}
	err = b.publisher.PublishOrder(ctx, o)
	b.publish(events.DispatchSent{OrderID: o.OrderID, TruckID: truckID, RouteID: routeID, Err: err, At: o.IssuedAt})
	if err != nil {
		return model.DispatchOrder{}, fmt.Errorf("publish order: %w", err)
	}
	b.store.RecordDispatch(o)
	b.log.Infow("dispatch order sent", map[string]any{"order_id": o.OrderID, "truck_id": truckID, "route_id": routeID})
	return o, nil
}

// Dispatches lists the last order of every truck.
func (b *Board) Dispatches() []model.DispatchOrder { return b.store.Dispatches() }

func (b *Board) publish(ev events.Event) {
	if b.bus != nil {
		b.bus.Publish(ev)
	}
}
