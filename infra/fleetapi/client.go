package fleetapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kilianp07/evfleet/config"
	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/logger"
)

// Client fetches board data from the fleet service.
type Client struct {
	baseURL     string
	http        *http.Client
	limiter     *rate.Limiter
	log         logger.Logger
	maxRetries  int
	backoff     time.Duration
	concurrency int
	now         func() time.Time
}

// NewClient creates a client from cfg. Defaults are applied to a copy.
func NewClient(cfg config.FleetAPIConfig) *Client {
	cfg.SetDefaults()
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		http:        &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		limiter:     rate.NewLimiter(limit, cfg.Burst),
		log:         logger.New("fleet-api"),
		maxRetries:  cfg.MaxRetries,
		backoff:     time.Duration(cfg.BackoffMS) * time.Millisecond,
		concurrency: cfg.Concurrency,
		now:         time.Now,
	}
}

// Trucks lists the fleet. Trucks without an ID are dropped.
func (c *Client) Trucks(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := c.get(ctx, "/trucks", &trucks); err != nil {
		return nil, err
	}
	out := trucks[:0]
	for _, t := range trucks {
		if err := t.Validate(); err != nil {
			c.log.Warnf("dropping truck: %v", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Routes lists the candidate routes. Routes without an ID are dropped.
func (c *Client) Routes(ctx context.Context) ([]model.Route, error) {
	var routes []model.Route
	if err := c.get(ctx, "/routes", &routes); err != nil {
		return nil, err
	}
	out := routes[:0]
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			c.log.Warnf("dropping route: %v", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Feasibility returns the results of every truck for one route.
func (c *Client) Feasibility(ctx context.Context, routeID string) ([]model.FeasibilityResult, error) {
	var results []model.FeasibilityResult
	path := "/routes/" + url.PathEscape(routeID) + "/feasibility"
	if err := c.get(ctx, path, &results); err != nil {
		return nil, err
	}
	out := results[:0]
	for _, r := range results {
		if err := r.Validate(); err != nil {
			c.log.Warnf("route %s: dropping result: %v", routeID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// FetchSnapshot loads trucks and routes in parallel, then the feasibility of
// every route with bounded concurrency. Any failure aborts the snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (board.Snapshot, error) {
	var snap board.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.Trucks(gctx)
		snap.Trucks = t
		return err
	})
	g.Go(func() error {
		r, err := c.Routes(gctx)
		snap.Routes = r
		return err
	})
	if err := g.Wait(); err != nil {
		return board.Snapshot{}, unavailable(err)
	}

	results := make([][]model.FeasibilityResult, len(snap.Routes))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, r := range snap.Routes {
		g.Go(func() error {
			res, err := c.Feasibility(gctx, r.ID)
			if err != nil {
				return fmt.Errorf("route %s: %w", r.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return board.Snapshot{}, unavailable(err)
	}

	snap.Feasibility = make(map[string][]model.FeasibilityResult, len(snap.Routes))
	for i, r := range snap.Routes {
		snap.Feasibility[r.ID] = results[i]
	}
	snap.RefreshedAt = c.now()
	return snap, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}

// get performs a GET with rate limiting and exponential backoff on
// transient failures, decoding the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<(attempt-1))
			c.log.Warnf("GET %s attempt %d failed: %v; retrying in %s", path, attempt, err, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if werr := c.limiter.Wait(ctx); werr != nil {
			return werr
		}
		err = c.do(ctx, path, out)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{Path: path, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &decodeError{path: path, err: err}
	}
	return nil
}
