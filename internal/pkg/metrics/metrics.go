// Package metrics defines and registers all custom Prometheus metrics for the
// admin dashboard console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on import; the
// console exposes them on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// APIRequestsTotal counts calls made to the dashboard REST API.
// Labels:
//   - method:   HTTP method
//   - resource: first path segment (e.g. "users", "orders", "auth")
//   - outcome:  "ok", or the error kind ("request", "network", "server", "unauthorized")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of calls made to the dashboard API, by outcome.",
	},
	[]string{"method", "resource", "outcome"},
)

// APIRequestDuration measures round-trip time of API calls, including body decoding.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of dashboard API calls from request build to decoded payload.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "resource"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionExpiredTotal counts 401 responses that dropped the stored credential.
var SessionExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expired_total",
		Help:      "Total number of times the API rejected the credential with 401.",
	},
)

// LoginAttemptsTotal counts console login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts made through the console, by result.",
	},
	[]string{"result"},
)

// ObserveAPIRequest records one completed API call.
func ObserveAPIRequest(method, resource, outcome string, elapsed time.Duration) {
	APIRequestsTotal.WithLabelValues(method, resource, outcome).Inc()
	APIRequestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}
