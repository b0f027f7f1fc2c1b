// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package score computes the per-venue AI score: a bounded 35-98 number
// combining preference match, learned weights, contextual time factors, and
// a learning-confidence boost, together with match factors, a reasoning
// string, and a confidence level.
//
// The engine never fails a request: any error reading preferences or weights
// degrades to a neutral score of 50.
package score

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/models"
)

// Score fraction contributions before scaling to 100.
const (
	baseFraction = 0.60

	cuisineBonus   = 0.25
	cuisinePenalty = 0.05
	priceBonus     = 0.15
	vibeBonusEach  = 0.10

	ratingSlope = 0.05
	ratingCap   = 0.10

	dinnerBonus = 0.10
	lunchBonus  = 0.05
	winterBonus = 0.05

	highRatingThreshold = 4.0
	confidencePerFactor = 0.1
)

// PreferenceStore reads user preference profiles. *database.DB satisfies it.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*models.PreferenceProfile, error)
}

// ScoreStore persists the audit trail of computed scores. *database.DB
// satisfies it.
type ScoreStore interface {
	UpsertAIScore(ctx context.Context, s *models.AIVenueScore) error
}

// WeightSource provides learned weights and the confidence boost.
// *learn.Learner satisfies it.
type WeightSource interface {
	Weights(ctx context.Context, userID string) *models.LearnedWeightProfile
	ConfidenceBoost(p *models.LearnedWeightProfile) float64
}

// Engine computes AI scores. It is safe for concurrent use.
type Engine struct {
	prefs    PreferenceStore
	weights  WeightSource
	scores   ScoreStore
	inferrer VibeInferrer

	// now is injectable for deterministic contextual-factor tests.
	now func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithVibeInferrer replaces the default price/cuisine vibe heuristic.
func WithVibeInferrer(vi VibeInferrer) Option {
	return func(e *Engine) { e.inferrer = vi }
}

// NewEngine creates a score engine.
func NewEngine(prefs PreferenceStore, weights WeightSource, scores ScoreStore, opts ...Option) *Engine {
	e := &Engine{
		prefs:    prefs,
		weights:  weights,
		scores:   scores,
		inferrer: DefaultVibeInferrer{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the AI score for one venue and user. Preference and weight
// reads for the pass are issued concurrently and joined before computation.
// The result is always usable: a failed preference read yields the neutral
// score, and a failed audit-trail write is logged but not surfaced.
func (e *Engine) Score(ctx context.Context, venue *models.VenueRecord, userID string) *models.ScoreResult {
	if venue == nil {
		return neutralResult("")
	}

	var (
		prefs   *models.PreferenceProfile
		profile *models.LearnedWeightProfile
		boost   float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.prefs.GetPreferences(gctx, userID)
		if err != nil {
			return fmt.Errorf("preference read for %s: %w", userID, err)
		}
		prefs = p
		return nil
	})
	g.Go(func() error {
		profile = e.weights.Weights(gctx, userID)
		boost = e.weights.ConfidenceBoost(profile)
		return nil
	})
	if err := g.Wait(); err != nil || prefs == nil {
		logging.Debug().Err(err).Str("venue_id", venue.ID).Msg("Scoring degraded to neutral")
		return neutralResult(venue.ID)
	}

	result := e.compute(venue, prefs, profile.Weights, boost)

	// Best-effort audit trail; a failed write never blocks the response.
	if err := e.scores.UpsertAIScore(ctx, &models.AIVenueScore{
		VenueID:         venue.ID,
		UserID:          userID,
		AIScore:         result.AIScore,
		MatchFactors:    result.MatchFactors,
		ContextualScore: result.ContextualScore,
		UpdatedAt:       e.now().UTC(),
	}); err != nil {
		logging.Warn().Err(err).Str("venue_id", venue.ID).Str("user_id", userID).Msg("Failed to persist AI score")
	}

	return result
}

// compute runs the scoring formula over in-memory data.
func (e *Engine) compute(venue *models.VenueRecord, prefs *models.PreferenceProfile, w models.FeatureWeights, boost float64) *models.ScoreResult {
	frac := baseFraction
	var factors models.MatchFactors

	// Cuisine: exact or substring match earns the bonus, a stated cuisine
	// preference the venue misses earns a small penalty.
	if cuisineMatches(venue.CuisineType, prefs.PreferredCuisines) {
		frac += cuisineBonus * w.Cuisine
		factors.CuisineMatch = true
	} else if len(prefs.PreferredCuisines) > 0 {
		frac -= cuisinePenalty * w.Cuisine
	}

	if prefs.HasPrice(venue.PriceRange) {
		frac += priceBonus * w.Price
		factors.PriceMatch = true
	}

	vibes := countVibeMatches(venue.Tags, prefs.PreferredVibes)
	if vibes == 0 {
		vibes = e.inferrer.Infer(venue, prefs)
	}
	factors.VibeMatches = vibes
	frac += float64(vibes) * vibeBonusEach * w.Vibe

	if venue.Rating > 0 {
		frac += math.Min((venue.Rating-3.0)*ratingSlope, ratingCap) * w.Rating
		factors.HighRating = venue.Rating >= highRatingThreshold
	}

	contextual := e.contextualFactors() * w.Time
	frac += contextual

	frac += boost

	aiScore := clamp(frac*100, models.AIScoreMin, models.AIScoreMax)
	confidence := clamp(aiScore/100+confidencePerFactor*float64(factors.Count()), 0, models.ConfidenceMax)

	return &models.ScoreResult{
		VenueID:         venue.ID,
		AIScore:         aiScore,
		MatchFactors:    factors,
		ContextualScore: contextual,
		ConfidenceLevel: confidence,
		Reasoning:       buildReasoning(venue, factors, aiScore),
	}
}

// contextualFactors returns the time-of-day and season bonuses for the
// current moment: dinner hours beat lunch hours, and winter months add an
// indoor-venue bonus. The two bonuses are additive.
func (e *Engine) contextualFactors() float64 {
	now := e.now()
	bonus := 0.0

	switch hour := now.Hour(); {
	case hour >= 18 && hour <= 21:
		bonus += dinnerBonus
	case hour >= 11 && hour <= 14:
		bonus += lunchBonus
	}

	switch now.Month() {
	case time.November, time.December, time.January, time.February:
		bonus += winterBonus
	}

	return bonus
}

// cuisineMatches reports an exact or substring cuisine match, either
// direction, case-insensitive ("Italian" matches "Northern Italian").
func cuisineMatches(cuisine string, preferred []string) bool {
	if cuisine == "" {
		return false
	}
	c := strings.ToLower(cuisine)
	for _, p := range preferred {
		p = strings.ToLower(p)
		if p == "" {
			continue
		}
		if c == p || strings.Contains(c, p) || strings.Contains(p, c) {
			return true
		}
	}
	return false
}

// countVibeMatches counts preferred vibes present among the venue tags,
// case-insensitive and substring-tolerant ("romantic" matches "romantic
// rooftop").
func countVibeMatches(tags, vibes []string) int {
	if len(tags) == 0 || len(vibes) == 0 {
		return 0
	}
	count := 0
	for _, vibe := range vibes {
		v := strings.ToLower(vibe)
		for _, tag := range tags {
			t := strings.ToLower(tag)
			if t == v || strings.Contains(t, v) || strings.Contains(v, t) {
				count++
				break
			}
		}
	}
	return count
}

// buildReasoning assembles the human-readable explanation from the truthy
// match factors, falling back to a generic line when nothing matched.
func buildReasoning(venue *models.VenueRecord, f models.MatchFactors, aiScore float64) string {
	var parts []string
	if f.CuisineMatch {
		parts = append(parts, fmt.Sprintf("%s cuisine matches your taste", venue.CuisineType))
	}
	if f.PriceMatch {
		parts = append(parts, "fits your price range")
	}
	if f.VibeMatches > 0 {
		parts = append(parts, "has the vibe you're looking for")
	}
	if f.HighRating {
		parts = append(parts, fmt.Sprintf("highly rated (%.1f stars)", venue.Rating))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Good overall match based on your preferences (%.0f%% match)", aiScore)
	}

	reason := strings.Join(parts, ", ")
	return strings.ToUpper(reason[:1]) + reason[1:]
}

// neutralResult is returned when scoring inputs cannot be read.
func neutralResult(venueID string) *models.ScoreResult {
	return &models.ScoreResult{
		VenueID:         venueID,
		AIScore:         models.NeutralAIScore,
		ConfidenceLevel: models.NeutralAIScore / 100,
		Reasoning:       "Not enough information for a personalized score",
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
