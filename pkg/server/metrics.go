package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for the spectator feed: connection
// churn, broadcast throughput and health-check outcomes. There is no
// per-action/per-session breakdown here, unlike a full RPC server, since
// a spectator connection never sends anything the server records.
type Metrics struct {
	activeConnections prometheus.Gauge
	wsConnections     *prometheus.CounterVec
	snapshotsSent     *prometheus.CounterVec
	serverStartTime   prometheus.Gauge
	healthChecks      *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the spectator feed's Prometheus metrics
// on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rogue_spectator_connections_active",
			Help: "Number of currently connected spectators",
		}),
		wsConnections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rogue_spectator_connections_total",
			Help: "Total spectator WebSocket connection events by type",
		}, []string{"type"}), // "connected", "disconnected", "rejected"
		snapshotsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rogue_spectator_snapshots_total",
			Help: "Total snapshot frames broadcast, by outcome",
		}, []string{"outcome"}), // "sent", "dropped"
		serverStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rogue_spectator_server_start_time_seconds",
			Help: "Unix timestamp when the spectator server started",
		}),
		healthChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rogue_spectator_health_checks_total",
			Help: "Total health checks by name and status",
		}, []string{"check_name", "status"}),
		registry: registry,
	}

	m.registry.MustRegister(
		m.activeConnections,
		m.wsConnections,
		m.snapshotsSent,
		m.serverStartTime,
		m.healthChecks,
	)
	m.serverStartTime.SetToCurrentTime()
	return m
}

// Handler returns the HTTP handler serving Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordConnection records a spectator connection lifecycle event and
// adjusts the active-connections gauge accordingly.
func (m *Metrics) RecordConnection(eventType string) {
	m.wsConnections.WithLabelValues(eventType).Inc()
	switch eventType {
	case "connected":
		m.activeConnections.Inc()
	case "disconnected":
		m.activeConnections.Dec()
	}
}

// RecordSnapshot records one broadcast attempt's outcome to one observer.
func (m *Metrics) RecordSnapshot(outcome string) {
	m.snapshotsSent.WithLabelValues(outcome).Inc()
}

// RecordHealthCheck records a health check's pass/fail outcome.
func (m *Metrics) RecordHealthCheck(checkName, status string) {
	m.healthChecks.WithLabelValues(checkName, status).Inc()
}
