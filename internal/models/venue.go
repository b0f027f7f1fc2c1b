// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package models defines data structures used throughout the VibeMatch application.
// These models represent venues, preference profiles, learned weights, scores,
// and feedback records.

package models

import "time"

// PriceRange is the venue price tier, expressed in dollar signs.
type PriceRange string

// Price tiers, from cheapest to most expensive.
const (
	PriceCheap     PriceRange = "$"
	PriceModerate  PriceRange = "$$"
	PriceExpensive PriceRange = "$$$"
	PriceLuxury    PriceRange = "$$$$"
)

// Valid reports whether p is one of the four recognized price tiers.
func (p PriceRange) Valid() bool {
	switch p {
	case PriceCheap, PriceModerate, PriceExpensive, PriceLuxury:
		return true
	}
	return false
}

// VenueRecord is the normalized venue shape shared by every component.
//
// Records can originate from the Foursquare provider, the Geoapify provider,
// or the persistent catalog. When the aggregator merges duplicate listings,
// the first-seen record keeps its ID and accumulates photos and tags from
// later sources; provider-specific identifiers from the merged-away record
// are attached under ProviderIDs.
type VenueRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	CuisineType string     `json:"cuisine_type,omitempty"`
	PriceRange  PriceRange `json:"price_range,omitempty"`
	Rating      float64    `json:"rating,omitempty"` // 0-5, 0 means unrated
	Description string     `json:"description,omitempty"`
	Hours       string     `json:"hours,omitempty"` // e.g. "11:00-23:00", empty if unknown
	Tags        []string   `json:"tags,omitempty"`
	Photos      []string   `json:"photos,omitempty"` // photo URLs, no duplicates

	// Source is the provider the record was first seen from:
	// "foursquare", "geoapify", or "catalog".
	Source string `json:"source,omitempty"`

	// ProviderIDs maps provider name to that provider's stable place
	// identifier. Populated by the adapters and extended during merges.
	ProviderIDs map[string]string `json:"provider_ids,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ScoredVenue is a venue annotated with preference-filter scores.
// It is transient: produced per request and never persisted.
type ScoredVenue struct {
	Venue VenueRecord `json:"venue"`

	// PreferenceScore is the solo-filter score (0-100).
	PreferenceScore float64 `json:"preference_score,omitempty"`

	// Collaborative scores, set only by the two-user filter.
	UserScore          float64 `json:"user_score,omitempty"`
	PartnerScore       float64 `json:"partner_score,omitempty"`
	SharedScore        float64 `json:"shared_score,omitempty"`
	CollaborativeScore float64 `json:"collaborative_score,omitempty"`
}
