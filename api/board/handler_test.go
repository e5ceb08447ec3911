package board_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/kilianp07/evfleet/api/board"
	"github.com/kilianp07/evfleet/app"
	coreboard "github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/model"
	"github.com/kilianp07/evfleet/infra/fleetapi"
)

type capturePublisher struct{ orders []model.DispatchOrder }

func (c *capturePublisher) PublishOrder(_ context.Context, o model.DispatchOrder) error {
	c.orders = append(c.orders, o)
	return nil
}

func newServer(t *testing.T, loaded bool, pub app.OrderPublisher) *httptest.Server {
	t.Helper()
	store := app.NewSnapshotStore()
	if loaded {
		trucks, routes := fleetapi.DemoTrucks(), fleetapi.DemoRoutes()
		fz := map[string][]model.FeasibilityResult{}
		for _, r := range routes {
			fz[r.ID] = fleetapi.AssessRoute(trucks, r)
		}
		store.Set(coreboard.Snapshot{Trucks: trucks, Routes: routes, Feasibility: fz})
	}
	srv := httptest.NewServer(api.NewHandler(app.NewBoard(store, nil, pub)))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRoutesAndBoard(t *testing.T) {
	srv := newServer(t, true, nil)

	var cards []coreboard.RouteCard
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/routes", &cards))
	require.Len(t, cards, 3)
	require.NotNil(t, cards[0].Summary)
	assert.Equal(t, 3, cards[0].Summary.Green)

	var v coreboard.View
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/board?route_id=R-01", &v))
	assert.Equal(t, "R-01", v.SelectedRouteID)
	assert.Equal(t, "T-01", v.BestMatchID)
	assert.Equal(t, coreboard.RankingHint, v.RankingHint)

	var raw map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/board", &raw))
	assert.NotContains(t, raw, "best_match_id")
}

func TestBoardErrors(t *testing.T) {
	empty := newServer(t, false, nil)
	var body map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, empty.URL+"/api/board?route_id=R-01", &body))
	assert.Contains(t, body["error"], "no fleet snapshot")
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, empty.URL+"/healthz", nil))

	srv := newServer(t, true, nil)
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/board?route_id=R-99", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/summary", nil))
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", nil))
}

func TestSummary(t *testing.T) {
	srv := newServer(t, true, nil)
	var sum coreboard.RouteSummary
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/summary?route_id=R-01", &sum))
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 1, sum.Summary.Yellow)
}

func post(t *testing.T, url, body string) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestDispatch(t *testing.T) {
	pub := &capturePublisher{}
	srv := newServer(t, true, pub)

	assert.Equal(t, http.StatusAccepted, post(t, srv.URL+"/api/dispatch", `{"truck_id":"T-01","route_id":"R-01"}`))
	require.Len(t, pub.orders, 1)
	assert.Equal(t, "T-01", pub.orders[0].TruckID)
	assert.NotEmpty(t, pub.orders[0].OrderID)

	assert.Equal(t, http.StatusConflict, post(t, srv.URL+"/api/dispatch", `{"truck_id":"T-01","route_id":"R-02"}`))
	assert.Equal(t, http.StatusNotFound, post(t, srv.URL+"/api/dispatch", `{"truck_id":"T-42","route_id":"R-01"}`))
	assert.Equal(t, http.StatusBadRequest, post(t, srv.URL+"/api/dispatch", `{"truck_id":"T-01"}`))
	assert.Equal(t, http.StatusBadRequest, post(t, srv.URL+"/api/dispatch", `not json`))

	var list []model.DispatchOrder
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/dispatches", &list))
	assert.Len(t, list, 1)

	disabled := newServer(t, true, nil)
	assert.Equal(t, http.StatusServiceUnavailable, post(t, disabled.URL+"/api/dispatch", `{"truck_id":"T-01","route_id":"R-01"}`))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(t, true, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, post(t, srv.URL+"/api/routes", `{}`))
}
