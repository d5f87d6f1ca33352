package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_sessions_total",
			Help: "Sessions created and finished, by event",
		},
		[]string{"event"},
	)

	drawsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_draws_total",
			Help: "Numbers drawn across all sessions",
		},
	)

	claimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_claims_total",
			Help: "Bingo claims evaluated, by result",
		},
		[]string{"result"},
	)

	connections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bingo_ws_connections",
			Help: "Open realtime connections",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bingo_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bingo_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route"},
	)

	droppedClients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bingo_ws_dropped_clients_total",
			Help: "Clients disconnected because their send queue was full",
		},
	)
)

func RecordSessionCreated() {
	sessionsTotal.WithLabelValues("created").Inc()
}

func RecordSessionFinished(reason string) {
	sessionsTotal.WithLabelValues("finished_" + reason).Inc()
}

func RecordDraw() {
	drawsTotal.Inc()
}

func RecordClaim(valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	claimsTotal.WithLabelValues(result).Inc()
}

func ConnectionOpened() {
	connections.Inc()
}

func ConnectionClosed() {
	connections.Dec()
}

func RecordDroppedClient() {
	droppedClients.Inc()
}

func ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
