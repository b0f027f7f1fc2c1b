// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package metrics provides Prometheus instrumentation for VibeMatch:
//   - Provider request performance and failures (Foursquare, Geoapify)
//   - Circuit breaker state per provider
//   - Venue cache efficiency, including zero-cost call accounting
//   - Recommendation pipeline latency
//   - HTTP API request latency and in-flight counts
//   - DuckDB query errors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Provider Metrics
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Duration of venue provider API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of venue provider API requests",
		},
		[]string{"provider", "result"}, // "success", "failure", "rejected"
	)

	ProviderVenuesReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_venues_returned",
			Help:    "Number of venues returned per provider search",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"breaker", "from", "to"},
	)

	// Venue Cache Metrics
	// A cache hit skips every provider call for the request; ZeroCostCalls
	// counts those skipped calls for usage accounting against provider quotas.
	VenueCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "venue_cache_hits_total",
			Help: "Total number of geo-cell venue cache hits",
		},
	)

	VenueCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "venue_cache_misses_total",
			Help: "Total number of geo-cell venue cache misses",
		},
	)

	ZeroCostCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_zero_cost_calls_total",
			Help: "Provider calls avoided by cache hits, for usage accounting",
		},
		[]string{"provider"},
	)

	// Recommendation Pipeline Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"mode"}, // "solo" or "collaborative"
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of venue recommendations returned to callers",
		},
		[]string{"mode"},
	)

	VenuesDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "venues_deduplicated_total",
			Help: "Total number of duplicate venue listings merged by the aggregator",
		},
	)

	// Weight Learner Metrics
	FeedbackIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_ingested_total",
			Help: "Total number of feedback events applied to learned weights",
		},
		[]string{"outcome"}, // "success", "failure", "neutral"
	)

	// HTTP API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of HTTP API requests currently being served",
		},
	)

	// Database Metrics
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)
)
