package worker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aescanero/dago-node-langjson/internal/eval/template"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHealthServer(t *testing.T) (*HealthServer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewHealthServer(0, client, template.NewEngine(), zap.NewNop()), mr
}

func get(t *testing.T, handler http.Handler, path string, out interface{}) int {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	return rec.Code
}

func TestHealthServer_Healthy(t *testing.T) {
	hs, _ := newTestHealthServer(t)
	handler := hs.Handler()

	var health HealthResponse
	assert.Equal(t, http.StatusOK, get(t, handler, "/health", &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Checks["redis"])
	assert.NotEqual(t, "0", health.Checks["helpers"])

	var ready HealthResponse
	assert.Equal(t, http.StatusOK, get(t, handler, "/ready", &ready))
	assert.Equal(t, "ready", ready.Status)
}

func TestHealthServer_RedisDown(t *testing.T) {
	hs, mr := newTestHealthServer(t)
	handler := hs.Handler()
	mr.Close()

	var health HealthResponse
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/health", &health))
	assert.Equal(t, "unhealthy", health.Status)
	assert.Contains(t, health.Checks["redis"], "unhealthy")

	var ready HealthResponse
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/ready", &ready))
	assert.Equal(t, "not ready", ready.Status)
}

func TestHealthServer_Helpers(t *testing.T) {
	hs, _ := newTestHealthServer(t)

	var helpers HelpersResponse
	assert.Equal(t, http.StatusOK, get(t, hs.Handler(), "/helpers", &helpers))
	assert.Equal(t, len(helpers.Helpers), helpers.Count)
	assert.Contains(t, helpers.Helpers, "each")
	assert.Contains(t, helpers.Helpers, "var")
}

func TestHealthServer_StopWithoutStart(t *testing.T) {
	hs, _ := newTestHealthServer(t)
	assert.NoError(t, hs.Stop())
}
