package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/fabulist/fabula/internal/adapters/http"
	"github.com/fabulist/fabula/internal/logging"
	"github.com/fabulist/fabula/internal/script"
	"github.com/fabulist/fabula/pkg/adapters/memory"
	"github.com/fabulist/fabula/pkg/domain"
)

const testScript = `@title: The Gate
! gold = 8

@chapter one
# gate
A toll gate blocks the road.
* [gold >= 5 and gold -= 5] Pay the toll -> beyond
* [gold >= 100] Bribe the captain -> beyond
* Turn back -> home

# beyond
You have __gold__ gold left.

# home
Home again.
`

type sessionResponse struct {
	ID    string              `json:"id"`
	Model *domain.RenderModel `json:"model"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	doc, err := script.NewParser().Parse(testScript)
	require.NoError(t, err)

	srv := httptest.NewServer(httpadapter.NewHandler(doc, memory.NewStore(), logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server) sessionResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/sessions", "application/json", bytes.NewBufferString(`{"id":"s1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func selectChoice(t *testing.T, srv *httptest.Server, id string, index int) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]int{"index": index})
	resp, err := http.Post(srv.URL+"/sessions/"+id+"/select", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createSession(t, srv)
	assert.Equal(t, "s1", created.ID)
	require.NotNil(t, created.Model)
	assert.Equal(t, "gate", created.Model.Title)
	require.Len(t, created.Model.Choices, 3)
	assert.True(t, created.Model.Choices[0].Enabled)
	assert.False(t, created.Model.Choices[1].Enabled)

	// Select the toll choice; gold drops and the session moves on.
	resp := selectChoice(t, srv, "s1", 0)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"You have 3 gold left."}, out.Model.Paragraphs)
	assert.True(t, out.Model.Ended)

	// State persisted: a plain GET shows the same view.
	getResp, err := http.Get(srv.URL + "/sessions/s1")
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var again sessionResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&again))
	assert.Equal(t, out.Model.Paragraphs, again.Model.Paragraphs)
}

func TestSelectErrors(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)

	t.Run("disabled choice conflicts", func(t *testing.T) {
		resp := selectChoice(t, srv, "s1", 1)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rejected select does not advance the session", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/sessions/s1")
		require.NoError(t, err)
		defer resp.Body.Close()

		var out sessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "gate", out.Model.Title)
	})

	t.Run("index out of range", func(t *testing.T) {
		resp := selectChoice(t, srv, "s1", 9)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown session", func(t *testing.T) {
		resp := selectChoice(t, srv, "ghost", 0)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/s1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(srv.URL + "/sessions/s1")
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)

	resp := selectChoice(t, srv, "s1", 2)
	resp.Body.Close()

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)

	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fabula_sessions_started_total 1")
	assert.Contains(t, string(body), "fabula_choices_selected_total 1")
}
