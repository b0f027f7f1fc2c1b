// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package cache provides the geo-cell venue cache used by the aggregator.
//
// The cache is an injected, explicitly-scoped component, never a hidden
// module-level singleton. Two implementations exist:
//
//   - Memory: in-process TTL map, used in tests and single-node deployments
//   - Badger: on-disk BadgerDB store, shareable across restarts
//
// Keys are geo-cell identifiers (see internal/geo.CellKey); values are the
// deduplicated venue lists produced by the aggregator for that cell.
package cache

import (
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
)

// VenueCache is the interface the aggregator depends on.
//
// Usage:
//
//	var c cache.VenueCache = cache.NewMemory(15 * time.Minute)
//	c.Set(cell.String(), venues)
//	if cached, ok := c.Get(cell.String()); ok {
//	    // cache hit, zero provider cost
//	}
type VenueCache interface {
	// Get retrieves the venue list for a cell key.
	// Returns the list and true if found and not expired.
	Get(key string) ([]models.VenueRecord, bool)

	// Set stores a venue list with the default TTL.
	Set(key string, venues []models.VenueRecord)

	// SetWithTTL stores a venue list with a custom TTL.
	SetWithTTL(key string, venues []models.VenueRecord, ttl time.Duration)

	// Delete removes a cell entry.
	Delete(key string)

	// Stats returns a snapshot of cache statistics.
	Stats() Stats

	// Close releases any resources held by the cache.
	Close() error
}

// Stats is a point-in-time snapshot of cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int64
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
