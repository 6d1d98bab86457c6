package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "arena-lobby/server"
)

func TestHealthz(t *testing.T) {
	hub := server.NewHub(nil)
	srv := httptest.NewServer(NewRouter(hub, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDiagnosticsReportsLobbyState(t *testing.T) {
	hub := server.NewHub(nil)
	srv := httptest.NewServer(NewRouter(hub, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/diagnostics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var diag server.Diagnostics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&diag))
	assert.Equal(t, 20, diag.TickRate)
	assert.Zero(t, diag.PlayerCount)
	assert.Empty(t, diag.Rooms)
}
