package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	CommandErrors   *prometheus.CounterVec

	// Backend metrics
	BackendCalls  *prometheus.CounterVec
	BackendErrors *prometheus.CounterVec

	// Watch metrics
	WatchesActive prometheus.Gauge
	WatchEvents   *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// Batch metrics
	BatchItems *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64
	TotalErrors       int64
	TotalCommands     int64
	ActiveWatches     int64
	ActiveConnections int64
	TotalDuration     float64 // sum of all request durations
	RequestCount      int64   // count for averaging
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navfs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navfs_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navfs_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Command metrics
		CommandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_commands_total",
				Help: "Total number of dispatched commands",
			},
			[]string{"command", "status"},
		),
		CommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navfs_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"command"},
		),
		CommandErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_command_errors_total",
				Help: "Total number of command failures by error code",
			},
			[]string{"command", "code"},
		),

		// Backend metrics
		BackendCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_backend_calls_total",
				Help: "Total number of core primitive calls by implementation",
			},
			[]string{"backend", "primitive"},
		),
		BackendErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_backend_errors_total",
				Help: "Total number of backend call failures",
			},
			[]string{"backend", "primitive"},
		),

		// Watch metrics
		WatchesActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navfs_watches_active",
				Help: "Number of active directory watches",
			},
		),
		WatchEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_watch_events_total",
				Help: "Total number of classified change events",
			},
			[]string{"action"},
		),

		// Session metrics
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navfs_sessions_active",
				Help: "Number of live navigation sessions",
			},
		),

		// Batch metrics
		BatchItems: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_batch_items_total",
				Help: "Total number of batch items by outcome",
			},
			[]string{"operation", "outcome"},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navfs_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfs_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navfs_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCommand records one dispatched command
func (m *Metrics) RecordCommand(command, status string, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(command, status).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalCommands++
	m.mu.Unlock()
}

// RecordCommandError records a command failure by taxonomy code
func (m *Metrics) RecordCommandError(command, code string) {
	m.CommandErrors.WithLabelValues(command, code).Inc()
}

// RecordBackendCall records one core primitive call
func (m *Metrics) RecordBackendCall(backend, primitive string) {
	m.BackendCalls.WithLabelValues(backend, primitive).Inc()
}

// RecordBackendError records a backend call failure
func (m *Metrics) RecordBackendError(backend, primitive string) {
	m.BackendErrors.WithLabelValues(backend, primitive).Inc()
}

// RecordWatchEvent records one classified change event
func (m *Metrics) RecordWatchEvent(action string) {
	m.WatchEvents.WithLabelValues(action).Inc()
}

// SetWatchesActive sets the number of active watches
func (m *Metrics) SetWatchesActive(count int) {
	m.WatchesActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveWatches = int64(count)
	m.mu.Unlock()
}

// SetSessionsActive sets the number of live sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// RecordBatchItem records one batch item's outcome
func (m *Metrics) RecordBatchItem(operation, outcome string) {
	m.BatchItems.WithLabelValues(operation, outcome).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns a copy of the JSON-API counters plus uptime.
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := 0.0
	if m.snapshot.RequestCount > 0 {
		avg = m.snapshot.TotalDuration / float64(m.snapshot.RequestCount)
	}
	return map[string]interface{}{
		"total_requests":       m.snapshot.TotalRequests,
		"total_errors":         m.snapshot.TotalErrors,
		"total_commands":       m.snapshot.TotalCommands,
		"active_watches":       m.snapshot.ActiveWatches,
		"active_connections":   m.snapshot.ActiveConnections,
		"avg_request_duration": avg,
		"uptime_seconds":       time.Since(m.startTime).Seconds(),
	}
}
