package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// RequestsTotal counts API round trips by method, route template, and
// numeric status ("error" when no response was received).
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of API requests issued, by method, route, and status.",
	},
	[]string{"method", "route", "status"},
)

// RequestDuration measures the round-trip time of each API call.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API round trips, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// UnauthorizedTotal counts 401 responses, each of which clears the stored
// token and forces navigation to the login view.
var UnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_unauthorized_total",
		Help:      "Total number of unauthorized responses received.",
	},
)
