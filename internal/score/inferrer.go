// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package score

import (
	"strings"

	"github.com/JennePenne123/vibematch/internal/models"
)

// VibeInferrer guesses vibe matches when a venue's tags yield none directly.
// Implementations return the number of inferred matches (0 or 1 for the
// default). The engine only consults the inferrer when direct tag matching
// found nothing, so implementations never need to deduplicate against tags.
type VibeInferrer interface {
	Infer(venue *models.VenueRecord, prefs *models.PreferenceProfile) int
}

// DefaultVibeInferrer infers vibes from price range and cuisine:
//   - Upscale venues ($$$/$$$$) and fine/Italian/French kitchens read as
//     romantic for users who want romantic.
//   - Cheap venues ($/$$) read as casual for users who want casual.
type DefaultVibeInferrer struct{}

// romanticCuisineHints are cuisine substrings that suggest a romantic venue.
var romanticCuisineHints = []string{"fine", "italian", "french"}

// Infer implements VibeInferrer.
func (DefaultVibeInferrer) Infer(venue *models.VenueRecord, prefs *models.PreferenceProfile) int {
	if prefersVibe(prefs, "romantic") && looksRomantic(venue) {
		return 1
	}
	if prefersVibe(prefs, "casual") && looksCasual(venue) {
		return 1
	}
	return 0
}

func looksRomantic(v *models.VenueRecord) bool {
	if v.PriceRange == models.PriceExpensive || v.PriceRange == models.PriceLuxury {
		return true
	}
	cuisine := strings.ToLower(v.CuisineType)
	for _, hint := range romanticCuisineHints {
		if strings.Contains(cuisine, hint) {
			return true
		}
	}
	return false
}

func looksCasual(v *models.VenueRecord) bool {
	return v.PriceRange == models.PriceCheap || v.PriceRange == models.PriceModerate
}

func prefersVibe(prefs *models.PreferenceProfile, vibe string) bool {
	for _, v := range prefs.PreferredVibes {
		if strings.EqualFold(v, vibe) {
			return true
		}
	}
	return false
}

// NoVibeInference disables inference entirely; useful in tests that need
// vibe scoring driven only by explicit tags.
type NoVibeInference struct{}

// Infer implements VibeInferrer.
func (NoVibeInference) Infer(*models.VenueRecord, *models.PreferenceProfile) int { return 0 }
