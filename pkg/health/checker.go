// Package health serves the liveness and readiness probes of the portfolio
// server.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/state"
)

// Status is the outcome of a probe or of a whole report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// DefaultTimeout bounds probes registered without a timeout.
const DefaultTimeout = 5 * time.Second

// Probe reports a dependency failure as a non-nil error.
type Probe func(ctx context.Context) error

// Result is one probe's entry in a Report. Duration is in milliseconds.
type Result struct {
	Status   Status `json:"status"`
	Duration int64  `json:"duration_ms"`
	Error    string `json:"error,omitempty"`
	Details  any    `json:"details,omitempty"`
}

// Report is the body of /healthz and /readyz.
type Report struct {
	Status    Status            `json:"status"`
	Checks    map[string]Result `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
}

type registration struct {
	name     string
	probe    Probe
	timeout  time.Duration
	critical bool
}

// Checker runs registered probes concurrently. A failing critical probe makes
// the report unhealthy; any other failure only degrades it.
type Checker struct {
	mu      sync.RWMutex
	probes  []registration
	version string
	started time.Time
	now     func() time.Time
}

// NewChecker creates a checker whose uptime starts now.
func NewChecker() *Checker {
	return &Checker{started: time.Now(), now: time.Now}
}

// SetVersion sets the build version reported by every probe endpoint.
func (hc *Checker) SetVersion(version string) {
	hc.mu.Lock()
	hc.version = version
	hc.mu.Unlock()
}

// AddCheck registers a probe whose failure degrades the report.
func (hc *Checker) AddCheck(name string, probe Probe, timeout time.Duration) {
	hc.register(registration{name: name, probe: probe, timeout: timeout})
}

// AddCriticalCheck registers a probe whose failure makes the report unhealthy.
func (hc *Checker) AddCriticalCheck(name string, probe Probe, timeout time.Duration) {
	hc.register(registration{name: name, probe: probe, timeout: timeout, critical: true})
}

func (hc *Checker) register(r registration) {
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	hc.mu.Lock()
	hc.probes = append(hc.probes, r)
	hc.mu.Unlock()
}

// Check runs every probe and folds the results into a Report.
func (hc *Checker) Check(ctx context.Context) Report {
	hc.mu.RLock()
	probes := append([]registration(nil), hc.probes...)
	version := hc.version
	hc.mu.RUnlock()

	results := make([]Result, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = hc.run(ctx, p)
		}()
	}
	wg.Wait()

	now := hc.now()
	report := Report{
		Status:    StatusHealthy,
		Checks:    make(map[string]Result, len(probes)),
		Timestamp: now,
		Version:   version,
		Uptime:    now.Sub(hc.started).Round(time.Second).String(),
	}
	for i, p := range probes {
		report.Checks[p.name] = results[i]
		if results[i].Status == StatusHealthy {
			continue
		}
		switch {
		case p.critical:
			report.Status = StatusUnhealthy
		case report.Status == StatusHealthy:
			report.Status = StatusDegraded
		}
	}
	return report
}

func (hc *Checker) run(ctx context.Context, p registration) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.probe(ctx)
	res := Result{Status: StatusHealthy, Duration: time.Since(start).Milliseconds()}
	if err == nil {
		return res
	}

	res.Status = StatusUnhealthy
	res.Error = err.Error()
	var ce *CapacityError
	if errors.As(err, &ce) {
		res.Details = map[string]any{"current": ce.Current, "max": ce.Max}
	}
	return res
}

// LivenessHandler answers 200 while the process can serve requests.
func (hc *Checker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "alive",
			"timestamp": hc.now(),
		})
	})
}

// ReadinessHandler answers 503 when a critical probe fails and 200 otherwise,
// so a degraded server still receives traffic.
func (hc *Checker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := hc.Check(r.Context())
		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	})
}

// HealthHandler always answers 200 with the full report.
func (hc *Checker) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, hc.Check(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ProbeKey is read by StoreCheck. It is never written.
const ProbeKey = "health:probe"

// StoreCheck verifies the preference store answers a lookup.
func StoreCheck(store state.Store) Probe {
	return func(ctx context.Context) error {
		_, err := store.Exists(ctx, ProbeKey)
		return err
	}
}

// CapacityError reports a resource at its limit.
type CapacityError struct {
	Resource string
	Current  int
	Max      int
}

func (e *CapacityError) Error() string {
	return e.Resource + " at capacity"
}

// ConnectionsCheck fails once the live connection count reaches max.
// A max of zero disables the limit.
func ConnectionsCheck(count func() int, max int) Probe {
	return func(ctx context.Context) error {
		if current := count(); max > 0 && current >= max {
			return &CapacityError{Resource: "live connections", Current: current, Max: max}
		}
		return nil
	}
}
