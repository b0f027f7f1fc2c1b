// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package filter

import (
	"testing"

	"github.com/JennePenne123/vibematch/internal/models"
)

func prefs(cuisines []string, prices []models.PriceRange, vibes []string) *models.PreferenceProfile {
	return &models.PreferenceProfile{
		UserID:            "u1",
		PreferredCuisines: cuisines,
		PreferredPrices:   prices,
		PreferredVibes:    vibes,
	}
}

func venue(id, cuisine string, price models.PriceRange, tags ...string) models.VenueRecord {
	return models.VenueRecord{
		ID:          id,
		Name:        "Venue " + id,
		CuisineType: cuisine,
		PriceRange:  price,
		Tags:        tags,
	}
}

func TestSoloScore(t *testing.T) {
	p := prefs([]string{"Italian"}, []models.PriceRange{models.PriceModerate}, []string{"romantic"})

	tests := []struct {
		name  string
		venue models.VenueRecord
		want  float64
	}{
		{"full match", venue("a", "Italian", models.PriceModerate, "romantic"), 100},
		{"cuisine only", venue("b", "Italian", models.PriceLuxury), 50},
		{"price only", venue("c", "Thai", models.PriceModerate), 40},
		{"vibe only", venue("d", "Thai", models.PriceLuxury, "romantic"), 30},
		{"cuisine case-insensitive", venue("e", "ITALIAN", models.PriceLuxury), 50},
		{"nothing", venue("f", "Thai", models.PriceLuxury), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := soloScore(&tt.venue, p); got != tt.want {
				t.Errorf("soloScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSoloFullMatchBeatsCuisineOnly(t *testing.T) {
	p := prefs([]string{"Italian"}, []models.PriceRange{models.PriceModerate}, []string{"romantic"})
	full := venue("full", "Italian", models.PriceModerate, "romantic")
	cuisineOnly := venue("cuisine", "Italian", models.PriceLuxury)

	got := Solo([]models.VenueRecord{cuisineOnly, full}, p)
	if len(got) != 2 {
		t.Fatalf("Solo() returned %d venues, want 2", len(got))
	}
	if got[0].Venue.ID != "full" {
		t.Errorf("Solo() first = %s, want the full match ranked first", got[0].Venue.ID)
	}
	if got[0].PreferenceScore <= got[1].PreferenceScore {
		t.Errorf("full match score %f not strictly above cuisine-only %f",
			got[0].PreferenceScore, got[1].PreferenceScore)
	}
}

func TestSoloDropsWeakMatches(t *testing.T) {
	p := prefs([]string{"Italian"}, nil, nil)
	weak := venue("weak", "Thai", models.PriceLuxury) // dietary 10 only, below cutoff

	got := Solo([]models.VenueRecord{weak}, p)
	if len(got) != 0 {
		t.Errorf("Solo() = %v, want weak venue dropped", got)
	}
}

func TestSoloDietary(t *testing.T) {
	p := prefs([]string{"Italian"}, nil, nil)
	p.DietaryRestrictions = []string{"vegetarian"}

	accommodating := venue("a", "Italian", models.PriceModerate, "vegetarian")
	notAccommodating := venue("b", "Italian", models.PriceModerate)

	got := Solo([]models.VenueRecord{accommodating, notAccommodating}, p)
	if len(got) != 2 {
		t.Fatalf("Solo() returned %d venues, want 2", len(got))
	}
	if got[0].Venue.ID != "a" || got[0].PreferenceScore != 50 {
		t.Errorf("accommodating venue = %s score %f, want a at 50", got[0].Venue.ID, got[0].PreferenceScore)
	}
	if got[1].PreferenceScore != 40 {
		t.Errorf("non-accommodating score = %f, want 40", got[1].PreferenceScore)
	}
}

func TestSoloNoPreferencesPassesThrough(t *testing.T) {
	venues := []models.VenueRecord{
		venue("a", "Italian", models.PriceModerate),
		venue("b", "Thai", models.PriceCheap),
	}

	for _, p := range []*models.PreferenceProfile{nil, {UserID: "u1"}} {
		got := Solo(venues, p)
		if len(got) != 2 {
			t.Errorf("Solo() with empty prefs returned %d venues, want all %d", len(got), len(venues))
		}
		for _, sv := range got {
			if sv.PreferenceScore != 0 {
				t.Errorf("passthrough venue %s has score %f, want 0", sv.Venue.ID, sv.PreferenceScore)
			}
		}
	}
}

func TestCollaborativeSharedCuisine(t *testing.T) {
	user := prefs([]string{"Italian"}, []models.PriceRange{models.PriceModerate}, []string{"romantic"})
	partner := prefs([]string{"Italian", "French"}, []models.PriceRange{models.PriceModerate}, []string{"romantic", "cozy"})

	v := venue("a", "Italian", models.PriceModerate, "romantic")
	got := Collaborative([]models.VenueRecord{v}, user, partner)
	if len(got) != 1 {
		t.Fatalf("Collaborative() returned %d venues, want 1", len(got))
	}

	sv := got[0]
	if sv.SharedScore < 50 {
		t.Errorf("SharedScore = %f, want >= 50 when both cuisine-match", sv.SharedScore)
	}
	if sv.SharedScore != 100 {
		t.Errorf("SharedScore = %f, want 100 (cuisine+price+vibe all shared)", sv.SharedScore)
	}
	if sv.UserScore != 70 || sv.PartnerScore != 70 {
		t.Errorf("individual scores = %f/%f, want 70/70 (vibes excluded)", sv.UserScore, sv.PartnerScore)
	}

	// (100*1.5 + 140*0.5) / 2 = 110
	if sv.CollaborativeScore != 110 {
		t.Errorf("CollaborativeScore = %f, want 110", sv.CollaborativeScore)
	}
}

func TestCollaborativeCutoff(t *testing.T) {
	user := prefs([]string{"Italian"}, nil, nil)
	partner := prefs([]string{"French"}, nil, nil)

	venues := []models.VenueRecord{
		venue("miss", "Thai", models.PriceCheap),       // 0 everywhere
		venue("userOnly", "Italian", models.PriceCheap), // user 40, shared 0 -> collab 10
	}

	got := Collaborative(venues, user, partner)
	for _, sv := range got {
		if sv.CollaborativeScore < collabCutoff {
			t.Errorf("output contains %s with collaborativeScore %f below cutoff", sv.Venue.ID, sv.CollaborativeScore)
		}
	}
	if len(got) != 0 {
		t.Errorf("Collaborative() = %v, want both venues dropped", got)
	}
}

func TestCollaborativeDegradesToSolo(t *testing.T) {
	user := prefs([]string{"Italian"}, []models.PriceRange{models.PriceModerate}, nil)

	v := venue("a", "Italian", models.PriceModerate)
	got := Collaborative([]models.VenueRecord{v}, user, nil)
	if len(got) != 1 {
		t.Fatalf("Collaborative() returned %d venues, want 1", len(got))
	}
	if got[0].PreferenceScore != 80 {
		t.Errorf("degraded score = %f, want solo score 80", got[0].PreferenceScore)
	}
	if got[0].CollaborativeScore != 0 {
		t.Errorf("CollaborativeScore = %f, want 0 in degraded mode", got[0].CollaborativeScore)
	}
}

func TestCollaborativeBothMissingPassesThrough(t *testing.T) {
	venues := []models.VenueRecord{venue("a", "Italian", models.PriceModerate)}
	got := Collaborative(venues, nil, nil)
	if len(got) != 1 || got[0].PreferenceScore != 0 {
		t.Errorf("Collaborative() with no prefs = %v, want unscored passthrough", got)
	}
}

func TestVibeMatchingCaseInsensitive(t *testing.T) {
	p := prefs(nil, nil, []string{"Romantic"})
	v := venue("a", "", "", "ROMANTIC", "cozy")

	matches := matchingVibes(&v, p)
	if len(matches) != 1 || matches[0] != "romantic" {
		t.Errorf("matchingVibes() = %v, want [romantic]", matches)
	}
}
