// Package metrics holds the Prometheus collectors scraped from /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cursos"

// Reset request outcomes.
const (
	ResetSent         = "sent"
	ResetUnknownEmail = "unknown_email"
	ResetMailFailed   = "mail_failed"
	ResetUnavailable  = "unavailable"
)

// Reset consumption outcomes.
const (
	ConsumeOK          = "ok"
	ConsumeInvalid     = "invalid"
	ConsumeReplayed    = "replayed"
	ConsumeUnavailable = "unavailable"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method and status.",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10),
		},
		[]string{"method"},
	)

	ResetRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_requests_total",
			Help:      "Password reset requests by outcome.",
		},
		[]string{"outcome"},
	)

	ResetConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_consumed_total",
			Help:      "Password reset submissions by outcome.",
		},
		[]string{"outcome"},
	)

	PurchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Simulated purchases recorded.",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
