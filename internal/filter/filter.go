// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package filter shortlists venues against stated preferences.
//
// Two entry points share one scoring vocabulary: Solo scores venues for one
// user, Collaborative reconciles a user and partner pair. Both are pure
// functions over in-memory data; no store access happens here.
package filter

import (
	"sort"
	"strings"

	"github.com/JennePenne123/vibematch/internal/models"
)

// Solo scoring contributions (out of 100).
const (
	cuisinePoints = 40
	pricePoints   = 30
	vibePoints    = 20
	dietaryPoints = 10

	soloCutoff = 25
	soloFloor  = 10
)

// Collaborative scoring contributions.
const (
	sharedCuisinePoints = 50
	sharedPricePoints   = 30
	sharedVibePoints    = 20

	collabCutoff = 20
	collabFloor  = 15
)

// dietaryTags are the venue tags recognized as dietary accommodations.
var dietaryTags = map[string]struct{}{
	"vegetarian":  {},
	"vegan":       {},
	"gluten-free": {},
	"gluten free": {},
	"halal":       {},
	"kosher":      {},
	"dairy-free":  {},
}

// Solo scores venues against one user's preferences, drops weak matches, and
// returns survivors sorted by score descending.
//
// A nil or empty profile passes every venue through unscored: shortlisting
// with no signal would silently hide venues from the user.
func Solo(venues []models.VenueRecord, prefs *models.PreferenceProfile) []models.ScoredVenue {
	if !hasSignal(prefs) {
		return passthrough(venues)
	}

	scored := make([]models.ScoredVenue, 0, len(venues))
	for i := range venues {
		score := soloScore(&venues[i], prefs)
		if score < soloCutoff {
			continue
		}
		scored = append(scored, models.ScoredVenue{
			Venue:           venues[i],
			PreferenceScore: score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PreferenceScore > scored[j].PreferenceScore
	})

	return truncate(scored, soloFloor)
}

// Collaborative scores venues for a user and partner pair. Individual scores
// use cuisine and price only; vibe alignment counts through the shared score.
// If either participant has no stored preferences the filter degrades to the
// solo filter for the side that has them.
func Collaborative(venues []models.VenueRecord, userPrefs, partnerPrefs *models.PreferenceProfile) []models.ScoredVenue {
	userOK := hasSignal(userPrefs)
	partnerOK := hasSignal(partnerPrefs)
	switch {
	case !userOK && !partnerOK:
		return passthrough(venues)
	case !partnerOK:
		return Solo(venues, userPrefs)
	case !userOK:
		return Solo(venues, partnerPrefs)
	}

	scored := make([]models.ScoredVenue, 0, len(venues))
	for i := range venues {
		v := &venues[i]

		userScore := individualScore(v, userPrefs)
		partnerScore := individualScore(v, partnerPrefs)

		shared := 0.0
		if cuisineMatches(v, userPrefs) && cuisineMatches(v, partnerPrefs) {
			shared += sharedCuisinePoints
		}
		if userPrefs.HasPrice(v.PriceRange) && partnerPrefs.HasPrice(v.PriceRange) {
			shared += sharedPricePoints
		}
		if vibesIntersect(matchingVibes(v, userPrefs), matchingVibes(v, partnerPrefs)) {
			shared += sharedVibePoints
		}

		collab := (shared*1.5 + (userScore+partnerScore)*0.5) / 2
		if collab < collabCutoff {
			continue
		}

		scored = append(scored, models.ScoredVenue{
			Venue:              venues[i],
			UserScore:          userScore,
			PartnerScore:       partnerScore,
			SharedScore:        shared,
			CollaborativeScore: collab,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CollaborativeScore > scored[j].CollaborativeScore
	})

	return truncate(scored, collabFloor)
}

// soloScore computes the 0-100 solo preference score for one venue.
func soloScore(v *models.VenueRecord, prefs *models.PreferenceProfile) float64 {
	score := 0.0
	if cuisineMatches(v, prefs) {
		score += cuisinePoints
	}
	if prefs.HasPrice(v.PriceRange) {
		score += pricePoints
	}
	if len(matchingVibes(v, prefs)) > 0 {
		score += vibePoints
	}
	if dietaryOK(v, prefs) {
		score += dietaryPoints
	}
	return score
}

// individualScore is the per-participant score inside the collaborative
// filter: cuisine and price only, vibes excluded.
func individualScore(v *models.VenueRecord, prefs *models.PreferenceProfile) float64 {
	score := 0.0
	if cuisineMatches(v, prefs) {
		score += cuisinePoints
	}
	if prefs.HasPrice(v.PriceRange) {
		score += pricePoints
	}
	return score
}

// cuisineMatches reports an exact, case-insensitive cuisine match.
func cuisineMatches(v *models.VenueRecord, prefs *models.PreferenceProfile) bool {
	if v.CuisineType == "" {
		return false
	}
	for _, c := range prefs.PreferredCuisines {
		if strings.EqualFold(c, v.CuisineType) {
			return true
		}
	}
	return false
}

// matchingVibes returns the preferred vibes that appear among the venue's
// tags (case-insensitive).
func matchingVibes(v *models.VenueRecord, prefs *models.PreferenceProfile) []string {
	if len(v.Tags) == 0 || len(prefs.PreferredVibes) == 0 {
		return nil
	}
	tagSet := make(map[string]struct{}, len(v.Tags))
	for _, t := range v.Tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}
	var matches []string
	for _, vibe := range prefs.PreferredVibes {
		if _, ok := tagSet[strings.ToLower(vibe)]; ok {
			matches = append(matches, strings.ToLower(vibe))
		}
	}
	return matches
}

// vibesIntersect reports whether the two matched-vibe sets share an entry.
func vibesIntersect(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// dietaryOK reports whether the venue satisfies the user's dietary needs:
// trivially true with no restrictions, otherwise the venue must expose at
// least one recognized dietary tag.
func dietaryOK(v *models.VenueRecord, prefs *models.PreferenceProfile) bool {
	if len(prefs.DietaryRestrictions) == 0 {
		return true
	}
	for _, t := range v.Tags {
		if _, ok := dietaryTags[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// hasSignal reports whether the profile carries anything to filter on.
func hasSignal(prefs *models.PreferenceProfile) bool {
	return prefs != nil &&
		(len(prefs.PreferredCuisines) > 0 || len(prefs.PreferredVibes) > 0 || len(prefs.PreferredPrices) > 0)
}

// passthrough wraps venues unscored when no preference signal exists.
func passthrough(venues []models.VenueRecord) []models.ScoredVenue {
	out := make([]models.ScoredVenue, len(venues))
	for i := range venues {
		out[i] = models.ScoredVenue{Venue: venues[i]}
	}
	return out
}

// truncate keeps the top max(floor, len) entries. The floor guarantees a
// minimum shortlist depth when enough survivors exist; with fewer survivors
// everything is returned.
func truncate(scored []models.ScoredVenue, floor int) []models.ScoredVenue {
	limit := floor
	if len(scored) > limit {
		limit = len(scored)
	}
	if len(scored) > limit {
		return scored[:limit]
	}
	return scored
}
