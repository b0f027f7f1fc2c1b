// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package aggregator resolves candidate venues for a geographic point.
//
// The flow is cache-first: a geo-cell cache is consulted before any provider
// call, and a hit is accounted as zero provider cost. On a miss the
// configured strategy queries Foursquare and Geoapify, results are
// deduplicated and merged, newly seen venues are written through to the
// catalog, and the cell is cached. Provider failures are never fatal; total
// failure falls back to the persistent catalog and finally to an empty list.
package aggregator

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JennePenne123/vibematch/internal/cache"
	"github.com/JennePenne123/vibematch/internal/config"
	"github.com/JennePenne123/vibematch/internal/geo"
	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/provider"
)

// fallbackSampleSize bounds the unfiltered catalog sample used as the last
// resort before returning empty.
const fallbackSampleSize = 25

// VenueStore is the catalog persistence the aggregator needs. *database.DB
// satisfies it.
type VenueStore interface {
	UpsertVenue(ctx context.Context, v *models.VenueRecord) error
	QueryByRadius(ctx context.Context, lat, lon, radiusKm float64) ([]models.VenueRecord, error)
	GetActiveVenues(ctx context.Context, limit int) ([]models.VenueRecord, error)
}

// Aggregator fetches, deduplicates, merges, and caches venues. It is safe
// for concurrent use.
type Aggregator struct {
	foursquare provider.Searcher // may be nil when disabled
	geoapify   provider.Searcher // may be nil when disabled
	cache      cache.VenueCache
	store      VenueStore
	cfg        *config.AggregatorConfig
}

// New creates an Aggregator. Either provider may be nil (disabled); the
// strategy degrades to whichever providers exist.
func New(foursquare, geoapify provider.Searcher, venueCache cache.VenueCache, store VenueStore, cfg *config.AggregatorConfig) *Aggregator {
	return &Aggregator{
		foursquare: foursquare,
		geoapify:   geoapify,
		cache:      venueCache,
		store:      store,
		cfg:        cfg,
	}
}

// Aggregate returns deduplicated candidate venues near (lat, lon) for the
// given preferences. It never returns an error: every failure path
// terminates in a fallback, ultimately an empty list.
func (a *Aggregator) Aggregate(ctx context.Context, lat, lon float64, prefs *models.PreferenceProfile) []models.VenueRecord {
	cellKey := geo.CellFor(lat, lon).String()

	if venues, ok := a.cache.Get(cellKey); ok {
		metrics.VenueCacheHits.Inc()
		a.recordZeroCostCalls()
		logging.Debug().Str("cell", cellKey).Int("venues", len(venues)).Msg("Venue cache hit")
		return venues
	}
	metrics.VenueCacheMisses.Inc()

	radiusM := a.cfg.DefaultRadiusM
	if prefs != nil && prefs.MaxDistanceKm > 0 {
		radiusM = int(prefs.MaxDistanceKm * 1000)
	}
	hints := cuisineHints(prefs)

	// The budget bounds the whole provider path; on expiry the in-flight
	// searches fail and the catalog fallback takes over.
	budgetCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestBudget)
	defer cancel()

	venues := a.fetch(budgetCtx, lat, lon, radiusM, hints)

	if len(venues) == 0 {
		return a.catalogFallback(ctx, lat, lon, float64(radiusM)/1000, prefs)
	}

	// Write-through must finish before the records are published to the
	// cache: UpsertVenue stamps timestamps on each record, and concurrent
	// readers must never observe a cached slice still being mutated.
	a.writeThrough(ctx, venues)
	a.cache.Set(cellKey, venues)

	return venues
}

// fetch runs the configured provider strategy. A failing provider is treated
// as an empty result so the other provider's venues still return.
func (a *Aggregator) fetch(ctx context.Context, lat, lon float64, radiusM int, hints []string) []models.VenueRecord {
	switch a.cfg.Strategy {
	case config.StrategyFoursquareFirst:
		return a.fetchSequential(ctx, a.foursquare, a.geoapify, lat, lon, radiusM, hints)
	case config.StrategyGeoapifyFirst:
		return a.fetchSequential(ctx, a.geoapify, a.foursquare, lat, lon, radiusM, hints)
	default:
		return a.fetchParallel(ctx, lat, lon, radiusM, hints)
	}
}

// fetchParallel queries both providers concurrently and merges.
func (a *Aggregator) fetchParallel(ctx context.Context, lat, lon float64, radiusM int, hints []string) []models.VenueRecord {
	var primary, secondary []models.VenueRecord

	g := &errgroup.Group{}
	g.Go(func() error {
		primary = a.search(ctx, a.foursquare, lat, lon, radiusM, hints)
		return nil
	})
	g.Go(func() error {
		secondary = a.search(ctx, a.geoapify, lat, lon, radiusM, hints)
		return nil
	})
	_ = g.Wait()

	return a.dedupMerge(primary, secondary)
}

// fetchSequential queries primary first and consults secondary only when the
// primary came back below the configured minimum.
func (a *Aggregator) fetchSequential(ctx context.Context, primary, secondary provider.Searcher, lat, lon float64, radiusM int, hints []string) []models.VenueRecord {
	first := a.search(ctx, primary, lat, lon, radiusM, hints)
	if len(first) >= a.cfg.MinResults {
		return a.dedupMerge(first, nil)
	}

	second := a.search(ctx, secondary, lat, lon, radiusM, hints)
	return a.dedupMerge(first, second)
}

// search wraps one provider call, converting absence and failure into an
// empty list.
func (a *Aggregator) search(ctx context.Context, s provider.Searcher, lat, lon float64, radiusM int, hints []string) []models.VenueRecord {
	if s == nil {
		return nil
	}
	venues, err := s.Search(ctx, lat, lon, radiusM, hints)
	if err != nil {
		logging.Warn().Err(err).Str("provider", s.Name()).Msg("Provider search failed, continuing without it")
		return nil
	}
	return venues
}

// catalogFallback queries the persistent catalog when every provider path
// produced nothing: first geo-filtered rows matching a preferred cuisine,
// then an unfiltered active sample, then empty.
func (a *Aggregator) catalogFallback(ctx context.Context, lat, lon, radiusKm float64, prefs *models.PreferenceProfile) []models.VenueRecord {
	byRadius, err := a.store.QueryByRadius(ctx, lat, lon, radiusKm)
	if err != nil {
		logging.Warn().Err(err).Msg("Catalog radius query failed")
	}
	if len(byRadius) > 0 {
		if filtered := filterByCuisine(byRadius, prefs); len(filtered) > 0 {
			logging.Info().Int("venues", len(filtered)).Msg("Serving catalog fallback venues")
			return filtered
		}
		return byRadius
	}

	sample, err := a.store.GetActiveVenues(ctx, fallbackSampleSize)
	if err != nil {
		logging.Warn().Err(err).Msg("Catalog sample query failed")
		return []models.VenueRecord{}
	}
	if len(sample) > 0 {
		logging.Info().Int("venues", len(sample)).Msg("Serving unfiltered catalog sample")
	}
	return sample
}

// writeThrough persists newly seen venues. Failures are logged and never
// abort the request.
func (a *Aggregator) writeThrough(ctx context.Context, venues []models.VenueRecord) {
	for i := range venues {
		if err := a.store.UpsertVenue(ctx, &venues[i]); err != nil {
			logging.Warn().Err(err).Str("venue_id", venues[i].ID).Msg("Venue write-through failed")
		}
	}
}

// recordZeroCostCalls accounts the provider calls a cache hit skipped.
func (a *Aggregator) recordZeroCostCalls() {
	if a.foursquare != nil {
		metrics.ZeroCostCalls.WithLabelValues(a.foursquare.Name()).Inc()
	}
	if a.geoapify != nil {
		metrics.ZeroCostCalls.WithLabelValues(a.geoapify.Name()).Inc()
	}
}

// cuisineHints lowercases the preferred cuisines for provider category
// mapping.
func cuisineHints(prefs *models.PreferenceProfile) []string {
	if prefs == nil || len(prefs.PreferredCuisines) == 0 {
		return nil
	}
	hints := make([]string, 0, len(prefs.PreferredCuisines))
	for _, c := range prefs.PreferredCuisines {
		hints = append(hints, strings.ToLower(c))
	}
	return hints
}

// filterByCuisine keeps venues matching any preferred cuisine.
func filterByCuisine(venues []models.VenueRecord, prefs *models.PreferenceProfile) []models.VenueRecord {
	if prefs == nil || len(prefs.PreferredCuisines) == 0 {
		return venues
	}
	out := make([]models.VenueRecord, 0, len(venues))
	for _, v := range venues {
		for _, c := range prefs.PreferredCuisines {
			if strings.EqualFold(v.CuisineType, c) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}
