package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	boardapi "github.com/kilianp07/evfleet/api/board"
	"github.com/kilianp07/evfleet/config"
	"github.com/kilianp07/evfleet/core/events"
	coremetrics "github.com/kilianp07/evfleet/core/metrics"
	coremon "github.com/kilianp07/evfleet/core/monitoring"
	"github.com/kilianp07/evfleet/infra/fleetapi"
	"github.com/kilianp07/evfleet/infra/logger"
	"github.com/kilianp07/evfleet/infra/metrics"
	"github.com/kilianp07/evfleet/infra/mqtt"
	"github.com/kilianp07/evfleet/internal/eventbus"
)

// Service wires the refresher, the board API and the metrics pipeline.
type Service struct {
	Board     *Board
	Refresher *Refresher
	Publisher *mqtt.Publisher

	cfg  *config.Config
	bus  *eventbus.TypedBus[events.Event]
	sink coremetrics.MetricsSink
	log  logger.Logger
}

// New creates a Service from the configuration. The MQTT publisher is only
// connected when a broker is configured.
func New(cfg *config.Config) (*Service, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	s := &Service{
		cfg:  cfg,
		bus:  eventbus.NewTyped[events.Event](eventbus.WithBuffer(64)),
		sink: sink,
		log:  logger.New("service"),
	}
	var pub OrderPublisher
	if cfg.MQTT.Enabled() {
		p, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.Publisher, pub = p, p
	} else {
		s.log.Warnf("no MQTT broker configured, dispatch disabled")
	}
	store := NewSnapshotStore()
	s.Board = NewBoard(store, s.bus, pub)
	s.Refresher = NewRefresher(
		fleetapi.NewClient(cfg.FleetAPI),
		store,
		s.bus,
		time.Duration(cfg.Refresh.IntervalSeconds)*time.Second,
	)
	return s, nil
}

// Run serves the board API and refreshes the snapshot until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer coremon.RecoverError(&err)
		return s.Refresher.Start(ctx)
	})
	g.Go(func() error { return s.serveHTTP(ctx) })
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		g.Go(func() error { return metrics.StartPromServer(ctx, addr) })
	}
	return g.Wait()
}

func (s *Service) serveHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Address,
		Handler:           boardapi.NewHandler(s.Board),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("board API listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.Publisher != nil {
		s.Publisher.Disconnect()
	}
	s.bus.Close()
	return nil
}
