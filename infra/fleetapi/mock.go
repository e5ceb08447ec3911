package fleetapi

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/kilianp07/evfleet/config"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/logger"
)

// weightFactor is the added consumption in kWh per mile per pound of cargo.
const weightFactor = 0.00004

// averageSpeedMPH is used to estimate trip durations.
const averageSpeedMPH = 55.0

func intp(v int) *int { return &v }

// DemoTrucks is the fleet served by the mock.
func DemoTrucks() []model.Truck {
	return []model.Truck{
		{ID: "T-01", Name: "Tesla Semi", SoC: 92, SoH: 98, CapacityKWh: 500, LoadLbs: 42000, Status: model.Ready},
		{ID: "T-02", Name: "Freightliner eCascadia", SoC: 61, SoH: 91, CapacityKWh: 550, LoadLbs: 68000, Status: model.Ready},
		{ID: "T-03", Name: "Volvo FH Electric", SoC: 34, SoH: 85, CapacityKWh: 480, Status: model.Charging, ChargeETAMins: intp(47)},
		{ID: "T-04", Name: "Kenworth T680E", SoC: 78, SoH: 94, CapacityKWh: 520, LoadLbs: 55000, Status: model.Ready},
		{ID: "T-05", Name: "Peterbilt 579EV", SoC: 15, SoH: 76, CapacityKWh: 460, Status: model.Maintenance},
	}
}

// DemoRoutes is the route catalog served by the mock.
func DemoRoutes() []model.Route {
	return []model.Route{
		{ID: "R-01", Name: "Local Delivery", DistanceMiles: 48, ElevationGainFt: 120, LoadLbs: 35000,
			Priority: model.Standard, TerrainMultiplier: 1.05, BaseConsumption: 1.8},
		{ID: "R-02", Name: "Cross-State Express", DistanceMiles: 382, ElevationGainFt: 800, LoadLbs: 22000,
			Priority: model.Urgent, TerrainMultiplier: 1.12, BaseConsumption: 1.8},
		{ID: "R-03", Name: "Mountain Pass", DistanceMiles: 218, ElevationGainFt: 4200, LoadLbs: 58000,
			Priority: model.Standard, TerrainMultiplier: 1.45, BaseConsumption: 1.8},
	}
}

// Assess runs the demo energy model for one truck on one route.
func Assess(t model.Truck, r model.Route) model.FeasibilityResult {
	required := (r.BaseConsumption + weightFactor*r.LoadLbs) * r.DistanceMiles * r.TerrainMultiplier
	available := t.SoC / 100 * t.CapacityKWh
	var arrival float64
	if t.CapacityKWh > 0 {
		arrival = (available - required) / t.CapacityKWh * 100
	}
	status := model.Red
	switch {
	case arrival >= 15:
		status = model.Green
	case arrival >= 0:
		status = model.Yellow
	}
	return model.FeasibilityResult{
		TruckID:               t.ID,
		Status:                status,
		ArrivalSoC:            round2(arrival),
		EnergyRequiredKWh:     round2(required),
		NoChargeNeeded:        true,
		NotAvailable:          t.Status.Is(model.TruckMaintenance),
		EstimatedTripTimeMins: intp(int(math.Round(r.DistanceMiles / averageSpeedMPH * 60))),
	}
}

// AssessRoute returns the results of every truck, best arrival SoC first.
func AssessRoute(trucks []model.Truck, r model.Route) []model.FeasibilityResult {
	out := make([]model.FeasibilityResult, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, Assess(t, r))
	}
	slices.SortStableFunc(out, func(a, b model.FeasibilityResult) int {
		return cmp.Compare(b.ArrivalSoC, a.ArrivalSoC)
	})
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// MockServer exposes the demo fleet over HTTP.
type MockServer struct {
	addr   string
	log    logger.Logger
	srv    *http.Server
	trucks []model.Truck
	routes []model.Route
}

// NewMockServer creates a mock serving the demo fleet.
func NewMockServer(cfg config.MockConfig) *MockServer {
	cfg.SetDefaults()
	return &MockServer{
		addr:   cfg.Address,
		log:    logger.New("fleet-mock"),
		trucks: DemoTrucks(),
		routes: DemoRoutes(),
	}
}

// Handler returns the HTTP routes of the mock.
func (s *MockServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /trucks", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, s.trucks)
	})
	mux.HandleFunc("GET /routes", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, s.routes)
	})
	mux.HandleFunc("GET /routes/{id}/feasibility", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		idx := slices.IndexFunc(s.routes, func(rt model.Route) bool { return rt.ID == id })
		if idx < 0 {
			s.writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Route not found"})
			return
		}
		s.writeJSON(w, http.StatusOK, AssessRoute(s.trucks, s.routes[idx]))
	})
	return mux
}

func (s *MockServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

// Start runs the HTTP server until ctx is canceled.
func (s *MockServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.srv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown: %v", err)
		}
	}()
	s.log.Infof("fleet mock listening on %s", ln.Addr())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
