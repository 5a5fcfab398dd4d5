// Package metrics holds the Prometheus collectors of the web client.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cashify"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "How many HTTP requests processed, partitioned by status code, method and route.",
		},
		[]string{"code", "method", "route"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "The HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "method", "route"},
	)

	UpstreamCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Calls to the REST API, partitioned by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the REST API in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StaleDiscarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_discarded_total",
			Help:      "Load results dropped because a newer load had already been applied.",
		},
		[]string{"component"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)

	SuspiciousRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspicious_requests_total",
			Help:      "Requests matching a known probing pattern.",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Browser sessions currently held in memory.",
		},
	)
)

// Upstream call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeUnreachable = "unreachable"
)

var collectors = []prometheus.Collector{
	RequestCount,
	RequestDuration,
	UpstreamCount,
	UpstreamDuration,
	StaleDiscarded,
	RateLimited,
	SuspiciousRequests,
	ActiveSessions,
}

// Register registers all collectors with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("could not register %v with Prometheus: %w", c, err)
		}
	}
	return nil
}

// Outcome classifies an upstream HTTP status code. Zero means no response.
func Outcome(status int) string {
	switch {
	case status == 0:
		return OutcomeUnreachable
	case status >= 500:
		return OutcomeServerError
	case status >= 400:
		return OutcomeClientError
	default:
		return OutcomeOK
	}
}
