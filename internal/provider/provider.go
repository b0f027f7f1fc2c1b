// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch
//
// Package provider implements the venue provider clients (Foursquare Places
// and Geoapify Places) and their adapters to the normalized VenueRecord shape.
//
// Each provider returns a structurally different payload; the adapter in each
// client file is the single place that payload is normalized. Downstream code
// (the aggregator) depends only on the Searcher interface and VenueRecord.
package provider

import (
	"context"
	"errors"

	"github.com/JennePenne123/vibematch/internal/models"
)

// ErrNoPlaceID is returned by an adapter when a provider listing carries no
// usable stable identifier. Such listings cannot be cached, persisted, or
// deduplicated reliably and are dropped at the adapter boundary.
var ErrNoPlaceID = errors.New("provider listing has no usable place identifier")

// ErrUnnamedPlace is returned by an adapter when a provider listing has no
// name. Unnamed listings cannot participate in deduplication or be shown to
// users, so they are dropped at the adapter boundary.
var ErrUnnamedPlace = errors.New("provider listing has no name")

// Searcher is the interface the aggregator consumes. Both raw clients and
// their circuit-breaker wrappers implement it.
type Searcher interface {
	// Search returns venues near (lat, lon) within radiusM meters.
	// categoryHints are free-form cuisine hints ("italian", "sushi") that the
	// client maps onto its provider's category taxonomy; an empty slice
	// searches all restaurants.
	Search(ctx context.Context, lat, lon float64, radiusM int, categoryHints []string) ([]models.VenueRecord, error)

	// Name returns the provider name used in metrics, logs, and
	// VenueRecord.Source ("foursquare" or "geoapify").
	Name() string
}
