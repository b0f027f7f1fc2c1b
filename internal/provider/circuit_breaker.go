// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package provider

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// Ensure BreakerSearcher implements Searcher
var _ Searcher = (*BreakerSearcher)(nil)

// BreakerSearcher wraps a Searcher with the circuit breaker pattern,
// preventing cascading failures when a provider API is unavailable or slow.
// A tripped breaker makes Search fail immediately; the aggregator treats
// that like any other provider failure and falls back.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. This is intentional for
// production resilience.
type BreakerSearcher struct {
	inner Searcher
	cb    *gobreaker.CircuitBreaker[[]models.VenueRecord]
	name  string
}

// NewBreakerSearcher wraps inner with a circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerSearcher(inner Searcher) *BreakerSearcher {
	cbName := inner.Name() + "-api"

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]models.VenueRecord](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", cbName).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening provider circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] Provider state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerSearcher{
		inner: inner,
		cb:    cb,
		name:  cbName,
	}
}

// Name returns the wrapped provider's name.
func (b *BreakerSearcher) Name() string { return b.inner.Name() }

// Search performs a provider search with circuit breaker protection.
func (b *BreakerSearcher) Search(ctx context.Context, lat, lon float64, radiusM int, categoryHints []string) ([]models.VenueRecord, error) {
	venues, err := b.cb.Execute(func() ([]models.VenueRecord, error) {
		return b.inner.Search(ctx, lat, lon, radiusM, categoryHints)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ProviderRequests.WithLabelValues(b.inner.Name(), "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Provider request rejected")
		}
		return nil, err
	}
	return venues, nil
}

// State returns the current circuit breaker state.
func (b *BreakerSearcher) State() gobreaker.State {
	return b.cb.State()
}

// Counts returns the current circuit breaker counts.
func (b *BreakerSearcher) Counts() gobreaker.Counts {
	return b.cb.Counts()
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	}
	return "unknown"
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return -1
}
