package board

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreboard "github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/logger"
)

// Service is the board behaviour exposed over HTTP.
type Service interface {
	Routes() ([]coreboard.RouteCard, error)
	View(routeID string) (coreboard.View, error)
	Summary(routeID string) (coreboard.RouteSummary, error)
	Dispatch(ctx context.Context, truckID, routeID string) (model.DispatchOrder, error)
	Dispatches() []model.DispatchOrder
}

type handler struct {
	svc Service
	log logger.Logger
}

// NewHandler returns the board API:
//
//	GET  /api/routes
//	GET  /api/board?route_id=
//	GET  /api/summary?route_id=
//	GET  /api/dispatches
//	POST /api/dispatch
//	GET  /healthz
//	GET  /metrics
func NewHandler(svc Service) http.Handler {
	h := &handler{svc: svc, log: logger.New("board-api")}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/routes", h.routes)
	mux.HandleFunc("GET /api/board", h.board)
	mux.HandleFunc("GET /api/summary", h.summary)
	mux.HandleFunc("GET /api/dispatches", h.dispatches)
	mux.HandleFunc("POST /api/dispatch", h.dispatch)
	mux.HandleFunc("GET /healthz", h.health)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (h *handler) routes(w http.ResponseWriter, _ *http.Request) {
	cards, err := h.svc.Routes()
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cards)
}

func (h *handler) board(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.View(r.URL.Query().Get("route_id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("route_id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "route_id is required")
		return
	}
	sum, err := h.svc.Summary(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sum)
}

func (h *handler) dispatches(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Dispatches())
}

type dispatchRequest struct {
	TruckID string `json:"truck_id"`
	RouteID string `json:"route_id"`
}

func (h *handler) dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TruckID == "" || req.RouteID == "" {
		h.writeError(w, http.StatusBadRequest, "truck_id and route_id are required")
		return
	}
	o, err := h.svc.Dispatch(r.Context(), req.TruckID, req.RouteID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, o)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	if _, err := h.svc.Routes(); err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "waiting for data"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusOf maps board errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, coreboard.ErrNoSnapshot), errors.Is(err, coreboard.ErrDispatchDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, coreboard.ErrUnknownRoute), errors.Is(err, coreboard.ErrUnknownTruck):
		return http.StatusNotFound
	case errors.Is(err, coreboard.ErrNotDispatchable):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	code := statusOf(err)
	if code >= 500 {
		h.log.Errorf("request failed: %v", err)
	}
	h.writeError(w, code, err.Error())
}

func (h *handler) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}
