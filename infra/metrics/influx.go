package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evfleet/core/metrics"
	"github.com/kilianp07/evfleet/infra/logger"
)

// InfluxSink writes board events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordRanking writes one ranking pass.
func (s *InfluxSink) RecordRanking(ev coremetrics.RankingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("ranking").
		AddTag("route_id", ev.RouteID).
		AddTag("component", "board")
	if ev.BestMatchID != "" {
		p = p.AddTag("best_match", ev.BestMatchID)
	}
	p = p.AddField("trucks", ev.Trucks).
		AddField("green", ev.Summary.Green).
		AddField("yellow", ev.Summary.Yellow).
		AddField("red", ev.Summary.Red).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRouteSummary writes the compatibility tally and arrival statistics of a route.
func (s *InfluxSink) RecordRouteSummary(ev coremetrics.RouteSummaryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("route_summary").
		AddTag("route_id", ev.RouteID).
		AddField("green", ev.Summary.Green).
		AddField("yellow", ev.Summary.Yellow).
		AddField("red", ev.Summary.Red).
		AddField("available", ev.Stats.Count).
		AddField("arrival_soc_mean", round3(ev.Stats.MeanArrivalSoC)).
		AddField("arrival_soc_min", round3(ev.Stats.MinArrivalSoC)).
		AddField("energy_kwh_mean", round3(ev.Stats.MeanEnergyKWh)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRefresh writes a snapshot refresh.
func (s *InfluxSink) RecordRefresh(ev coremetrics.RefreshEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("snapshot_refresh").
		AddTag("success", strconv.FormatBool(ev.Error == "")).
		AddField("trucks", ev.Trucks).
		AddField("routes", ev.Routes).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000))
	if ev.Error != "" {
		p = p.AddField("error", ev.Error)
	}
	p = p.SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordDispatchOrder records an order being sent.
func (s *InfluxSink) RecordDispatchOrder(ev coremetrics.DispatchOrderEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dispatch_order").
		AddTag("truck_id", ev.TruckID).
		AddTag("route_id", ev.RouteID).
		AddTag("order_id", ev.OrderID).
		AddField("accepted", ev.Accepted).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
