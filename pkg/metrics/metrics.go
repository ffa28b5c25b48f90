// Package metrics collects live connection and page interaction counters and
// serves them in the Prometheus text format.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds all application metrics.
// Every recording method is safe on a nil *Metrics.
type Metrics struct {
	namespace string

	// Connections
	ConnectionsActive *Gauge
	ConnectionsTotal  *Counter

	// Messages
	MessagesReceived *CounterVec
	MessagesSent     *CounterVec
	EventLatency     *Histogram

	// Renders
	RenderCount    *Counter
	RenderDuration *Histogram
	DiffSize       *Histogram

	// Errors
	ErrorsTotal *CounterVec
	PanicsTotal *Counter

	// Page interactions
	ThemeToggles   *CounterVec
	FilterSelects  *CounterVec
	ContactSubmits *CounterVec
}

// New creates a metrics set whose series are prefixed with namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		namespace: namespace,

		ConnectionsActive: NewGauge("connections_active", "Number of active live connections"),
		ConnectionsTotal:  NewCounter("connections_total", "Total live connections established"),

		MessagesReceived: NewCounterVec("messages_received_total", "Client messages received", "event"),
		MessagesSent:     NewCounterVec("messages_sent_total", "Messages sent to clients", "event"),
		EventLatency:     NewHistogram("event_latency_seconds", "Client event handling latency"),

		RenderCount:    NewCounter("render_total", "Total render operations"),
		RenderDuration: NewHistogram("render_duration_seconds", "Render duration"),
		DiffSize:       NewHistogram("diff_size_bytes", "Diff size in bytes"),

		ErrorsTotal: NewCounterVec("errors_total", "Total errors", "type"),
		PanicsTotal: NewCounter("panics_total", "Total panics recovered"),

		ThemeToggles:   NewCounterVec("theme_toggles_total", "Theme switches by resulting scheme", "scheme"),
		FilterSelects:  NewCounterVec("filter_selections_total", "Project filter selections", "category"),
		ContactSubmits: NewCounterVec("contact_submissions_total", "Contact form submissions", "outcome"),
	}
}

// Namespace returns the series prefix.
func (m *Metrics) Namespace() string {
	return m.namespace
}

// ConnectionOpened records a new live connection.
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.ConnectionsActive.Inc()
	m.ConnectionsTotal.Inc()
}

// ConnectionClosed records the end of a live connection.
func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.ConnectionsActive.Dec()
}

// MessageReceived counts an inbound message by event name.
func (m *Metrics) MessageReceived(event string) {
	if m == nil {
		return
	}
	m.MessagesReceived.Inc(event)
}

// MessageSent counts an outbound message by event name.
func (m *Metrics) MessageSent(event string) {
	if m == nil {
		return
	}
	m.MessagesSent.Inc(event)
}

// RecordError counts an error of errType.
func (m *Metrics) RecordError(errType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.Inc(errType)
}

// RecordPanic counts a recovered panic.
func (m *Metrics) RecordPanic() {
	if m == nil {
		return
	}
	m.PanicsTotal.Inc()
}

// RecordEvent observes how long an event took to handle.
func (m *Metrics) RecordEvent(d time.Duration) {
	if m == nil {
		return
	}
	m.EventLatency.ObserveDuration(d)
}

// RecordRender observes a render and the size of the diff it produced.
func (m *Metrics) RecordRender(d time.Duration, diffSize int) {
	if m == nil {
		return
	}
	m.RenderCount.Inc()
	m.RenderDuration.ObserveDuration(d)
	m.DiffSize.Observe(float64(diffSize))
}

// ThemeToggled counts a switch to scheme.
func (m *Metrics) ThemeToggled(scheme string) {
	if m == nil {
		return
	}
	m.ThemeToggles.Inc(scheme)
}

// FilterSelected counts a project filter selection.
func (m *Metrics) FilterSelected(category string) {
	if m == nil {
		return
	}
	m.FilterSelects.Inc(category)
}

// ContactSubmitted counts a contact form submission by outcome.
func (m *Metrics) ContactSubmitted(outcome string) {
	if m == nil {
		return
	}
	m.ContactSubmits.Inc(outcome)
}

// Handler returns an HTTP handler for metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.WriteTo(w)
	})
}

// WriteTo writes every series in the Prometheus text format.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	m.writeScalar(cw, "gauge", m.ConnectionsActive.name, m.ConnectionsActive.help, m.ConnectionsActive.Value())
	m.writeScalar(cw, "counter", m.ConnectionsTotal.name, m.ConnectionsTotal.help, m.ConnectionsTotal.Value())
	m.writeScalar(cw, "counter", m.RenderCount.name, m.RenderCount.help, m.RenderCount.Value())
	m.writeScalar(cw, "counter", m.PanicsTotal.name, m.PanicsTotal.help, m.PanicsTotal.Value())
	m.writeScalar(cw, "gauge", "goroutines", "Goroutines in the process", float64(runtime.NumGoroutine()))

	for _, cv := range []*CounterVec{
		m.MessagesReceived, m.MessagesSent, m.ErrorsTotal,
		m.ThemeToggles, m.FilterSelects, m.ContactSubmits,
	} {
		m.writeVec(cw, cv)
	}

	for _, h := range []*Histogram{m.EventLatency, m.RenderDuration, m.DiffSize} {
		m.writeSummary(cw, h)
	}
	return cw.n, cw.err
}

func (m *Metrics) series(name string) string {
	return m.namespace + "_" + name
}

func (m *Metrics) writeScalar(w io.Writer, kind, name, help string, value float64) {
	s := m.series(name)
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %g\n", s, help, s, kind, s, value)
}

func (m *Metrics) writeVec(w io.Writer, cv *CounterVec) {
	s := m.series(cv.name)
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n", s, cv.help, s)

	values := cv.Values()
	labels := make([]string, 0, len(values))
	for l := range values {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(w, "%s{%s=%q} %g\n", s, cv.label, l, values[l])
	}
}

func (m *Metrics) writeSummary(w io.Writer, h *Histogram) {
	s := m.series(h.name)
	stats := h.Stats()
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s summary\n", s, h.help, s)
	fmt.Fprintf(w, "%s_sum %g\n%s_count %d\n", s, stats.Sum, s, stats.Count)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value int64
}

// NewCounter creates a new counter.
func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() float64 {
	return float64(atomic.LoadInt64(&c.value))
}

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	help  string
	value int64
}

// NewGauge creates a new gauge.
func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

// Set sets the gauge to a value.
func (g *Gauge) Set(value float64) {
	atomic.StoreInt64(&g.value, int64(value))
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	atomic.AddInt64(&g.value, 1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	atomic.AddInt64(&g.value, -1)
}

// Value returns the current gauge value.
func (g *Gauge) Value() float64 {
	return float64(atomic.LoadInt64(&g.value))
}

// CounterVec is a counter partitioned by one label.
type CounterVec struct {
	name   string
	help   string
	label  string
	values map[string]*Counter
	mu     sync.RWMutex
}

// NewCounterVec creates a new counter vector.
func NewCounterVec(name, help, label string) *CounterVec {
	return &CounterVec{
		name:   name,
		help:   help,
		label:  label,
		values: make(map[string]*Counter),
	}
}

// WithLabel returns the counter for the given label value.
func (cv *CounterVec) WithLabel(value string) *Counter {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	if c, ok := cv.values[value]; ok {
		return c
	}

	c := NewCounter(cv.name, cv.help)
	cv.values[value] = c
	return c
}

// Inc increments the counter for the given label.
func (cv *CounterVec) Inc(label string) {
	cv.WithLabel(label).Inc()
}

// Values returns all counter values.
func (cv *CounterVec) Values() map[string]float64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	result := make(map[string]float64, len(cv.values))
	for label, counter := range cv.values {
		result[label] = counter.Value()
	}
	return result
}

// Histogram tracks the count, sum and range of observed values.
type Histogram struct {
	name  string
	help  string
	sum   float64
	count int64
	min   float64
	max   float64
	mu    sync.Mutex
}

// NewHistogram creates a new histogram.
func NewHistogram(name, help string) *Histogram {
	return &Histogram{name: name, help: help, min: -1}
}

// Observe records a value.
func (h *Histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += value
	h.count++

	if h.min < 0 || value < h.min {
		h.min = value
	}
	if value > h.max {
		h.max = value
	}
}

// ObserveDuration records a duration value in seconds.
func (h *Histogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Seconds())
}

// Stats returns histogram statistics.
func (h *Histogram) Stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := HistogramStats{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
	}

	if h.count > 0 {
		stats.Avg = h.sum / float64(h.count)
	}

	return stats
}

// HistogramStats contains histogram statistics.
type HistogramStats struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Avg   float64
}
