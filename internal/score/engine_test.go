// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package score

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
)

type fakePrefs struct {
	profile *models.PreferenceProfile
	err     error
}

func (f *fakePrefs) GetPreferences(ctx context.Context, userID string) (*models.PreferenceProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeWeights struct {
	profile *models.LearnedWeightProfile
	boost   float64
}

func (f *fakeWeights) Weights(ctx context.Context, userID string) *models.LearnedWeightProfile {
	if f.profile != nil {
		return f.profile
	}
	return models.DefaultLearnedWeightProfile(userID)
}

func (f *fakeWeights) ConfidenceBoost(p *models.LearnedWeightProfile) float64 { return f.boost }

type fakeScores struct {
	upserts []models.AIVenueScore
	err     error
}

func (f *fakeScores) UpsertAIScore(ctx context.Context, s *models.AIVenueScore) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, *s)
	return nil
}

// quietClock is a moment with no dinner, lunch, or winter bonus.
func quietClock() time.Time {
	return time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)
}

func datePrefs() *models.PreferenceProfile {
	return &models.PreferenceProfile{
		UserID:            "u1",
		PreferredCuisines: []string{"Italian", "French"},
		PreferredPrices:   []models.PriceRange{models.PriceModerate, models.PriceExpensive},
		PreferredVibes:    []string{"romantic", "upscale"},
	}
}

func newTestEngine(prefs *fakePrefs, weights *fakeWeights, scores *fakeScores, clock func() time.Time) *Engine {
	return NewEngine(prefs, weights, scores, WithClock(clock))
}

func TestScoreFullMatchClampsToMax(t *testing.T) {
	venue := &models.VenueRecord{
		ID:          "v1",
		Name:        "Trattoria Luna",
		CuisineType: "Italian",
		PriceRange:  models.PriceModerate,
		Tags:        []string{"romantic", "cozy"},
		Rating:      4.5,
	}

	scores := &fakeScores{}
	engine := newTestEngine(&fakePrefs{profile: datePrefs()}, &fakeWeights{}, scores, quietClock)

	got := engine.Score(context.Background(), venue, "u1")

	// 0.60 base + 0.25 cuisine + 0.15 price + 0.10 one vibe + 0.075 rating
	// = 1.175, scaled and clamped to the maximum.
	if got.AIScore != models.AIScoreMax {
		t.Errorf("AIScore = %f, want %f", got.AIScore, models.AIScoreMax)
	}
	if !got.MatchFactors.CuisineMatch || !got.MatchFactors.PriceMatch {
		t.Errorf("MatchFactors = %+v, want cuisine and price true", got.MatchFactors)
	}
	if got.MatchFactors.VibeMatches != 1 {
		t.Errorf("VibeMatches = %d, want 1 (romantic)", got.MatchFactors.VibeMatches)
	}
	if !got.MatchFactors.HighRating {
		t.Error("HighRating = false, want true for 4.5")
	}
	if got.ConfidenceLevel != models.ConfidenceMax {
		t.Errorf("ConfidenceLevel = %f, want clamped to %f", got.ConfidenceLevel, models.ConfidenceMax)
	}
	if got.Reasoning == "" {
		t.Error("Reasoning is empty")
	}

	if len(scores.upserts) != 1 {
		t.Fatalf("audit upserts = %d, want 1", len(scores.upserts))
	}
	if scores.upserts[0].VenueID != "v1" || scores.upserts[0].UserID != "u1" {
		t.Errorf("audit row keyed (%s, %s), want (v1, u1)", scores.upserts[0].VenueID, scores.upserts[0].UserID)
	}
}

func TestScoreCuisineMismatchPenalty(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1", CuisineType: "Steakhouse"}
	prefs := &models.PreferenceProfile{UserID: "u1", PreferredCuisines: []string{"Thai"}}

	engine := newTestEngine(&fakePrefs{profile: prefs}, &fakeWeights{}, &fakeScores{}, quietClock)
	got := engine.Score(context.Background(), venue, "u1")

	// 0.60 - 0.05 = 0.55
	if got.AIScore != 55 {
		t.Errorf("AIScore = %f, want 55", got.AIScore)
	}
	if got.MatchFactors.Count() != 0 {
		t.Errorf("MatchFactors = %+v, want none", got.MatchFactors)
	}
}

func TestScoreNoCuisinePreferenceNoPenalty(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1", CuisineType: "Steakhouse"}
	prefs := &models.PreferenceProfile{UserID: "u1"}

	engine := newTestEngine(&fakePrefs{profile: prefs}, &fakeWeights{}, &fakeScores{}, quietClock)
	got := engine.Score(context.Background(), venue, "u1")

	// With no stated cuisine preference the venue is neither a match nor a
	// miss, so the base fraction stands.
	if got.AIScore != 60 {
		t.Errorf("AIScore = %f, want 60", got.AIScore)
	}
	if got.MatchFactors.CuisineMatch {
		t.Error("CuisineMatch = true, want false")
	}
}

func TestScoreSubstringCuisineMatch(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1", CuisineType: "Northern Italian"}
	prefs := &models.PreferenceProfile{UserID: "u1", PreferredCuisines: []string{"Italian"}}

	engine := newTestEngine(&fakePrefs{profile: prefs}, &fakeWeights{}, &fakeScores{}, quietClock)
	got := engine.Score(context.Background(), venue, "u1")

	if !got.MatchFactors.CuisineMatch {
		t.Error("CuisineMatch = false, want substring match")
	}
	if got.AIScore != 85 {
		t.Errorf("AIScore = %f, want 85 (0.60+0.25)", got.AIScore)
	}
}

func TestScoreBoundsAlwaysHold(t *testing.T) {
	engine := newTestEngine(
		&fakePrefs{profile: datePrefs()},
		&fakeWeights{boost: 0.12},
		&fakeScores{},
		func() time.Time { return time.Date(2026, time.December, 24, 19, 30, 0, 0, time.UTC) },
	)

	venues := []*models.VenueRecord{
		{ID: "max", CuisineType: "Italian", PriceRange: models.PriceModerate, Tags: []string{"romantic", "upscale"}, Rating: 5},
		{ID: "min", CuisineType: "Fast Food", Rating: 1},
		{ID: "bare"},
	}

	for _, v := range venues {
		got := engine.Score(context.Background(), v, "u1")
		if got.AIScore < models.AIScoreMin || got.AIScore > models.AIScoreMax {
			t.Errorf("venue %s: AIScore = %f out of [%f, %f]", v.ID, got.AIScore, models.AIScoreMin, models.AIScoreMax)
		}
		if got.ConfidenceLevel < 0 || got.ConfidenceLevel > models.ConfidenceMax {
			t.Errorf("venue %s: ConfidenceLevel = %f out of [0, %f]", v.ID, got.ConfidenceLevel, models.ConfidenceMax)
		}
	}
}

func TestContextualFactors(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"dinner hour", time.Date(2026, time.June, 15, 19, 0, 0, 0, time.UTC), 0.10},
		{"lunch hour", time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC), 0.05},
		{"mid-afternoon", time.Date(2026, time.June, 15, 16, 0, 0, 0, time.UTC), 0},
		{"winter morning", time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC), 0.05},
		{"winter dinner stacks", time.Date(2026, time.December, 24, 19, 0, 0, 0, time.UTC), 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakePrefs{}, &fakeWeights{}, &fakeScores{}, func() time.Time { return tt.at })
			if got := engine.contextualFactors(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("contextualFactors() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreVibeInference(t *testing.T) {
	// No direct tag matches anywhere; only the heuristic can fire.
	tests := []struct {
		name  string
		venue models.VenueRecord
		vibes []string
		want  int
	}{
		{"upscale romantic", models.VenueRecord{PriceRange: models.PriceLuxury}, []string{"romantic"}, 1},
		{"french romantic", models.VenueRecord{CuisineType: "French", PriceRange: models.PriceCheap}, []string{"romantic"}, 1},
		{"cheap casual", models.VenueRecord{PriceRange: models.PriceCheap}, []string{"casual"}, 1},
		{"upscale casual no match", models.VenueRecord{PriceRange: models.PriceLuxury}, []string{"casual"}, 0},
		{"no vibe prefs", models.VenueRecord{PriceRange: models.PriceLuxury}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := &models.PreferenceProfile{UserID: "u1", PreferredVibes: tt.vibes}
			if got := (DefaultVibeInferrer{}).Infer(&tt.venue, prefs); got != tt.want {
				t.Errorf("Infer() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreInferenceDisabled(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1", PriceRange: models.PriceLuxury}
	prefs := &models.PreferenceProfile{UserID: "u1", PreferredVibes: []string{"romantic"}}

	engine := NewEngine(&fakePrefs{profile: prefs}, &fakeWeights{}, &fakeScores{},
		WithClock(quietClock), WithVibeInferrer(NoVibeInference{}))

	got := engine.Score(context.Background(), venue, "u1")
	if got.MatchFactors.VibeMatches != 0 {
		t.Errorf("VibeMatches = %d, want 0 with inference disabled", got.MatchFactors.VibeMatches)
	}
}

func TestScoreNeutralOnPreferenceError(t *testing.T) {
	engine := newTestEngine(&fakePrefs{err: errors.New("store down")}, &fakeWeights{}, &fakeScores{}, quietClock)

	got := engine.Score(context.Background(), &models.VenueRecord{ID: "v1"}, "u1")
	if got.AIScore != models.NeutralAIScore {
		t.Errorf("AIScore = %f, want neutral %f", got.AIScore, models.NeutralAIScore)
	}
}

func TestScoreSurvivesAuditWriteFailure(t *testing.T) {
	scores := &fakeScores{err: errors.New("disk full")}
	engine := newTestEngine(&fakePrefs{profile: datePrefs()}, &fakeWeights{}, scores, quietClock)

	venue := &models.VenueRecord{ID: "v1", CuisineType: "Italian"}
	got := engine.Score(context.Background(), venue, "u1")
	if got.AIScore == models.NeutralAIScore {
		t.Errorf("AIScore = %f, want a computed score despite the failed audit write", got.AIScore)
	}
}

func TestScoreWeightsScaleContributions(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1", CuisineType: "Italian"}
	prefs := &models.PreferenceProfile{UserID: "u1", PreferredCuisines: []string{"Italian"}}

	heavy := &models.LearnedWeightProfile{
		UserID:  "u1",
		Weights: models.FeatureWeights{Cuisine: 2.0, Vibe: 1, Price: 1, Time: 1, Rating: 1},
	}
	engine := newTestEngine(&fakePrefs{profile: prefs}, &fakeWeights{profile: heavy}, &fakeScores{}, quietClock)

	got := engine.Score(context.Background(), venue, "u1")
	// 0.60 + 0.25*2.0 = 1.10 -> clamped to 98
	if got.AIScore != models.AIScoreMax {
		t.Errorf("AIScore = %f, want %f with doubled cuisine weight", got.AIScore, models.AIScoreMax)
	}
}

func TestReasoningFallback(t *testing.T) {
	venue := &models.VenueRecord{ID: "v1"}
	prefs := &models.PreferenceProfile{UserID: "u1"}

	engine := newTestEngine(&fakePrefs{profile: prefs}, &fakeWeights{}, &fakeScores{}, quietClock)
	got := engine.Score(context.Background(), venue, "u1")

	want := "Good overall match based on your preferences (60% match)"
	if got.Reasoning != want {
		t.Errorf("Reasoning = %q, want %q", got.Reasoning, want)
	}
}
