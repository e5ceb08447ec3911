package metrics

import (
	"context"

	"github.com/kilianp07/evfleet/core/events"
	coremetrics "github.com/kilianp07/evfleet/core/metrics"
	"github.com/kilianp07/evfleet/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.Event], sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(sink, ev)
			}
		}
	}()
}

func record(sink coremetrics.MetricsSink, ev events.Event) {
	switch e := ev.(type) {
	case events.RankingComputed:
		_ = sink.RecordRanking(coremetrics.RankingEvent{
			RouteID:     e.RouteID,
			Trucks:      e.Trucks,
			BestMatchID: e.BestMatchID,
			Summary:     e.Summary,
			Duration:    e.Duration,
			Time:        e.At,
		})
	case events.SnapshotRefreshed:
		if r, ok := sink.(coremetrics.RefreshRecorder); ok {
			_ = r.RecordRefresh(coremetrics.RefreshEvent{
				Trucks:   e.Trucks,
				Routes:   e.Routes,
				Duration: e.Duration,
				Error:    errString(e.Err),
				Time:     e.At,
			})
		}
	case events.RouteSummarized:
		if r, ok := sink.(coremetrics.RouteSummaryRecorder); ok {
			_ = r.RecordRouteSummary(coremetrics.RouteSummaryEvent{
				RouteID: e.RouteID,
				Summary: e.Summary,
				Stats:   e.Stats,
				Time:    e.At,
			})
		}
	case events.DispatchSent:
		if r, ok := sink.(coremetrics.DispatchOrderRecorder); ok {
			_ = r.RecordDispatchOrder(coremetrics.DispatchOrderEvent{
				OrderID:  e.OrderID,
				TruckID:  e.TruckID,
				RouteID:  e.RouteID,
				Accepted: e.Err == nil,
				Error:    errString(e.Err),
				Time:     e.At,
			})
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
