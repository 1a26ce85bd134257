package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskline/hexsim/internal/application/common"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/sector"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/engine"
	"github.com/duskline/hexsim/internal/infrastructure/httpapi"
)

func newTestServer(t *testing.T) (*engine.Engine, *httptest.Server) {
	t.Helper()
	e := engine.New(engine.Config{TickDelta: 1}, manifest.New(), nil, shared.NewMockClock(time.Time{}))
	e.AddSector(sector.NewSector(hexgrid.Coord{Q: 0, R: 0}, 1000))

	m := common.NewMediator()
	require.NoError(t, httpapi.RegisterCommands(m, e))
	srv := httptest.NewServer(httpapi.Handler(m))
	t.Cleanup(srv.Close)
	return e, srv
}

func postCommand(t *testing.T, srv *httptest.Server, typ string, payload any) httpapi.CommandResult {
	t.Helper()
	body, err := json.Marshal(map[string]any{"type": typ, "payload": payload})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var result httpapi.CommandResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestHandler_AddShipCreatesAShipOnTheEngine(t *testing.T) {
	e, srv := newTestServer(t)

	result := postCommand(t, srv, "AddShip", httpapi.AddShipCommand{
		ID: "ship-1", ConfigID: "scout", Q: 0, R: 0, CargoCapacity: 10, Behavior: "AutoTrade",
	})
	assert.True(t, result.OK)

	s, ok := e.Ship(shared.EntityID("ship-1"))
	require.True(t, ok)
	assert.Equal(t, "scout", s.ConfigID)
	assert.Equal(t, "AutoTrade", s.Behavior.Name)
}

func TestHandler_SetRunStateTogglesTheEngine(t *testing.T) {
	e, srv := newTestServer(t)
	require.Equal(t, engine.Paused, e.State())

	result := postCommand(t, srv, "SetRunState", httpapi.SetRunStateCommand{State: "running"})
	assert.True(t, result.OK)
	assert.Equal(t, engine.Running, e.State())
}

func TestHandler_SetRunStateRejectsUnknownState(t *testing.T) {
	_, srv := newTestServer(t)
	result := postCommand(t, srv, "SetRunState", httpapi.SetRunStateCommand{State: "sideways"})
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Message)
}

func TestHandler_UnknownCommandTypeIsRejected(t *testing.T) {
	_, srv := newTestServer(t)
	body, _ := json.Marshal(map[string]any{"type": "DoesNotExist", "payload": map[string]any{}})
	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
