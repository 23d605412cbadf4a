// Package metrics declares the Prometheus collectors exported by the client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks wrapper calls by method, endpoint category and outcome
	// (live, offline, error).
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscatcher_api_requests_total",
			Help: "Total number of API calls made through the resilient client",
		},
		[]string{"method", "category", "outcome"},
	)

	// RetriesTotal tracks retried attempts after network-class failures
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscatcher_api_retries_total",
			Help: "Total number of retried API attempts",
		},
		[]string{"method", "category"},
	)

	// FallbacksTotal tracks offline responses by how they were reached
	// (preflight or exhausted).
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscatcher_api_fallbacks_total",
			Help: "Total number of responses served from the fallback catalog",
		},
		[]string{"category", "reason"},
	)

	// RequestLatency tracks live call latency including retries.
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newscatcher_api_request_latency_seconds",
			Help:    "Latency of live API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "category"},
	)

	// BackendReachable is 1 while the backend is considered reachable.
	BackendReachable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscatcher_backend_reachable",
			Help: "Whether the backend health probe last succeeded (1) or not (0)",
		},
	)

	// ProbesTotal tracks health probes by result (ok, failed, skipped)
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscatcher_health_probes_total",
			Help: "Total number of backend health probes",
		},
		[]string{"result"},
	)

	// TransitionsTotal tracks connectivity state changes.
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscatcher_connectivity_transitions_total",
			Help: "Total number of reachable/unreachable transitions",
		},
		[]string{"to"},
	)
)
