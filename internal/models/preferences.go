// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package models

import "time"

// PreferenceProfile holds one user's stated dating preferences.
//
// Profiles are owned by the user and written only through the preference
// store; the scoring pipeline treats a profile as an immutable snapshot for
// the duration of a single request.
type PreferenceProfile struct {
	UserID              string       `json:"user_id"`
	PreferredCuisines   []string     `json:"preferred_cuisines,omitempty"`
	PreferredVibes      []string     `json:"preferred_vibes,omitempty"`
	PreferredPrices     []PriceRange `json:"preferred_prices,omitempty"`
	PreferredTimes      []string     `json:"preferred_times,omitempty"` // e.g. "dinner", "lunch"
	MaxDistanceKm       float64      `json:"max_distance_km,omitempty"`
	DietaryRestrictions []string     `json:"dietary_restrictions,omitempty"`
	UpdatedAt           time.Time    `json:"updated_at,omitempty"`
}

// HasCuisine reports whether cuisine is in the preferred list (exact,
// case-insensitive handled by caller normalization).
func (p *PreferenceProfile) HasCuisine(cuisine string) bool {
	for _, c := range p.PreferredCuisines {
		if c == cuisine {
			return true
		}
	}
	return false
}

// HasPrice reports whether price is in the preferred list.
func (p *PreferenceProfile) HasPrice(price PriceRange) bool {
	for _, pr := range p.PreferredPrices {
		if pr == price {
			return true
		}
	}
	return false
}
