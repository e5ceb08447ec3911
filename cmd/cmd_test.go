package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evfleet/config"
	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/infra/fleetapi"
)

func withMockAPI(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(fleetapi.NewMockServer(config.MockConfig{}).Handler())
	t.Cleanup(srv.Close)
	c := &config.Config{}
	c.FleetAPI.BaseURL = srv.URL
	c.FleetAPI.SetDefaults()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestRunRoutes(t *testing.T) {
	withMockAPI(t)
	var out bytes.Buffer
	routesCmd.SetOut(&out)
	routesCmd.SetContext(context.Background())
	require.NoError(t, runRoutes(routesCmd, nil))
	assert.Contains(t, out.String(), "ROUTE")
	assert.Contains(t, out.String(), "R-01")
}

func TestRunBoardUnknownRoute(t *testing.T) {
	withMockAPI(t)
	boardRoute, boardFormat = "R-404", "table"
	t.Cleanup(func() { boardRoute, boardFormat = "", "table" })
	boardCmd.SetContext(context.Background())
	err := runBoard(boardCmd, nil)
	assert.ErrorIs(t, err, board.ErrUnknownRoute)
}

func TestRunBoardCSV(t *testing.T) {
	withMockAPI(t)
	boardRoute, boardFormat = "R-01", "csv"
	t.Cleanup(func() { boardRoute, boardFormat = "", "table" })
	var out bytes.Buffer
	boardCmd.SetOut(&out)
	boardCmd.SetContext(context.Background())
	require.NoError(t, runBoard(boardCmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "1,T-01,"))
}

func TestWriteViewUnknownFormat(t *testing.T) {
	err := writeView(&bytes.Buffer{}, board.View{}, "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestApplyLoggingKeepsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_ENV", "")
	applyLogging(config.LoggingConfig{Level: "debug", Format: "console"})
	assert.Equal(t, "error", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "dev", os.Getenv("APP_ENV"))
}

func TestDispatchRequiresBroker(t *testing.T) {
	prev := cfg
	cfg = &config.Config{}
	t.Cleanup(func() { cfg = prev })
	err := runDispatch(dispatchCmd, nil)
	assert.ErrorContains(t, err, "mqtt.broker")
}
