// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a live stack (api server + PostgreSQL + Redis with
// the seed migrations applied). They are skipped unless E2E_BASE_URL is set,
// e.g. E2E_BASE_URL=http://localhost:8080 go test ./test/e2e/...

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("E2E_BASE_URL")
	os.Exit(m.Run())
}

func requireStack(t *testing.T) {
	t.Helper()
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set, skipping e2e tests")
	}
}

func getJSON(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body), "body: %s", payload)
	return resp.StatusCode, body
}

func TestHealthEndpoint(t *testing.T) {
	requireStack(t)

	status, body := getJSON(t, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestProximityQueryAgainstSeedData(t *testing.T) {
	requireStack(t)

	status, body := getJSON(t, "/api/jobs/proximity?location=Milan")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Milan", data["location"])

	// Seeded proximity rows put Bergamo closest to Milan.
	proximityInfo := data["proximityInfo"].([]interface{})
	require.NotEmpty(t, proximityInfo)
	first := proximityInfo[0].(map[string]interface{})
	assert.Equal(t, "Bergamo", first["city"])

	suggestions := data["suggestions"].(map[string]interface{})
	nextCities := suggestions["nextCities"].([]interface{})
	assert.LessOrEqual(t, len(nextCities), 3)
}

func TestProximityQueryValidation(t *testing.T) {
	requireStack(t)

	status, body := getJSON(t, "/api/jobs/proximity")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
}

func TestProximityCacheWarmup(t *testing.T) {
	requireStack(t)

	// Two identical calls; the second should be served from Redis and return
	// the exact same payload.
	status1, body1 := getJSON(t, "/api/jobs/proximity?location=Turin")
	require.Equal(t, http.StatusOK, status1)

	status2, body2 := getJSON(t, "/api/jobs/proximity?location=Turin")
	require.Equal(t, http.StatusOK, status2)

	assert.Equal(t, body1["data"], body2["data"])
}

func TestLocationsEndpoint(t *testing.T) {
	requireStack(t)

	status, body := getJSON(t, "/api/jobs/locations")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	cities := data["cities"].([]interface{})
	assert.Contains(t, cities, "Milan")
}

func TestMetricsEndpoint(t *testing.T) {
	requireStack(t)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(fmt.Sprintf("%s/metrics", baseURL))
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(payload), "jobswipe_http_requests_total")
}
