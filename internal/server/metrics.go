package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts API requests by route and outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demoji_requests_total",
			Help: "Total number of API requests handled.",
		},
		[]string{"route", "status"},
	)

	// requestDuration observes request latency per route.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "demoji_request_duration_seconds",
			Help:    "API request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// sequencesMatched counts emoji occurrences reported to clients.
	sequencesMatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "demoji_sequences_matched_total",
			Help: "Total number of emoji sequence occurrences matched.",
		},
	)

	// rateLimited counts requests rejected by the rate limiter.
	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "demoji_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
	)
)
