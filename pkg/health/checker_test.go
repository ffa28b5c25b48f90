package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pass(context.Context) error { return nil }

func fail(context.Context) error { return errors.New("sqlite: database is locked") }

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCheck_AllPass(t *testing.T) {
	hc := NewChecker()
	hc.SetVersion("1.0.0")
	hc.AddCheck("connections", pass, time.Second)
	hc.AddCriticalCheck("store", pass, time.Second)

	report := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	assert.Equal(t, "1.0.0", report.Version)
	require.Len(t, report.Checks, 2)
	for name, res := range report.Checks {
		assert.Equal(t, StatusHealthy, res.Status, name)
		assert.Empty(t, res.Error, name)
	}
}

func TestCheck_NonCriticalFailureDegrades(t *testing.T) {
	hc := NewChecker()
	hc.AddCheck("store", pass, time.Second)
	hc.AddCheck("connections", fail, time.Second)

	report := hc.Check(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusHealthy, report.Checks["store"].Status)
	assert.Equal(t, StatusUnhealthy, report.Checks["connections"].Status)
	assert.Equal(t, "sqlite: database is locked", report.Checks["connections"].Error)
}

func TestCheck_CriticalFailureIsUnhealthy(t *testing.T) {
	hc := NewChecker()
	hc.AddCheck("connections", fail, time.Second)
	hc.AddCriticalCheck("store", fail, time.Second)

	assert.Equal(t, StatusUnhealthy, hc.Check(context.Background()).Status)
}

func TestCheck_Timeout(t *testing.T) {
	hc := NewChecker()
	hc.AddCheck("slow", func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}, 50*time.Millisecond)

	start := time.Now()
	report := hc.Check(context.Background())

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, StatusUnhealthy, report.Checks["slow"].Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Checks["slow"].Error)
}

func TestAddCheck_DefaultTimeout(t *testing.T) {
	hc := NewChecker()
	hc.AddCheck("store", pass, 0)

	require.Len(t, hc.probes, 1)
	assert.Equal(t, DefaultTimeout, hc.probes[0].timeout)
}

func TestLivenessHandler(t *testing.T) {
	rec := serve(NewChecker().LivenessHandler(), "/livez")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alive", body["status"])
}

func TestReadinessHandler(t *testing.T) {
	healthy := NewChecker()
	healthy.AddCriticalCheck("store", pass, time.Second)
	assert.Equal(t, http.StatusOK, serve(healthy.ReadinessHandler(), "/readyz").Code)

	degraded := NewChecker()
	degraded.AddCheck("connections", fail, time.Second)
	assert.Equal(t, http.StatusOK, serve(degraded.ReadinessHandler(), "/readyz").Code)

	down := NewChecker()
	down.AddCriticalCheck("store", fail, time.Second)
	assert.Equal(t, http.StatusServiceUnavailable, serve(down.ReadinessHandler(), "/readyz").Code)
}

func TestHealthHandler(t *testing.T) {
	hc := NewChecker()
	hc.SetVersion("2.0.0")
	hc.AddCriticalCheck("store", fail, time.Second)

	rec := serve(hc.HealthHandler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "2.0.0", report.Version)
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Contains(t, report.Checks, "store")
	assert.NotEmpty(t, report.Uptime)
}

func TestStoreCheck(t *testing.T) {
	store := state.NewMemoryStore()
	check := StoreCheck(store)

	assert.NoError(t, check(context.Background()))

	store.Close()
	assert.ErrorIs(t, check(context.Background()), state.ErrStoreClosed)
}

func TestConnectionsCheck(t *testing.T) {
	current := 50
	check := ConnectionsCheck(func() int { return current }, 100)
	assert.NoError(t, check(context.Background()))

	current = 100
	var ce *CapacityError
	require.ErrorAs(t, check(context.Background()), &ce)
	assert.Equal(t, 100, ce.Current)
	assert.Equal(t, "live connections at capacity", ce.Error())

	unlimited := ConnectionsCheck(func() int { return 1 << 20 }, 0)
	assert.NoError(t, unlimited(context.Background()))
}

func TestCheck_CapacityDetails(t *testing.T) {
	hc := NewChecker()
	hc.AddCheck("connections", ConnectionsCheck(func() int { return 3 }, 3), time.Second)

	details, ok := hc.Check(context.Background()).Checks["connections"].Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, details["max"])
	assert.Equal(t, 3, details["current"])
}
