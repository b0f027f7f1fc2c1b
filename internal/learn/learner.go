// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package learn maintains per-user learned feature weights and adapts them
// from post-date feedback. It is the self-tuning part of the scoring
// pipeline: the score engine reads weights and a confidence boost from here,
// and every rated date flows back through ApplyFeedback.
package learn

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/JennePenne123/vibematch/internal/database"
	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// Feedback classification thresholds. Ratings are 1-5 stars.
const (
	successRating = 4 // rating >= 4 reinforces weights
	failureRating = 3 // rating < 3 weakens weights; exactly 3 is neutral

	// successMargin is the prediction-error band (on the 0-100 scale) within
	// which a prediction counts as successful for accuracy tracking.
	successMargin = 20

	reinforceFactor = 1.05
	weakenFactor    = 0.95
)

// Confidence boost coefficients. The boost is dimensionless and added
// directly to the 0-1 score fraction before scaling to 100.
const (
	accuracyBoostFloor = 70    // accuracy below this earns no boost
	accuracyBoostRate  = 0.003 // per accuracy point above the floor
	ratingsBoostRate   = 0.005 // per ingested rating
	ratingsBoostCap    = 0.03
)

// Store is the learned-weight persistence the learner needs. *database.DB
// satisfies it.
type Store interface {
	GetWeights(ctx context.Context, userID string) (*models.LearnedWeightProfile, error)
	UpsertWeights(ctx context.Context, p *models.LearnedWeightProfile) error
	InsertFeedback(ctx context.Context, f *models.FeedbackRecord) error
}

// Learner reads and adapts per-user feature weights. It is safe for
// concurrent use: feedback updates for the same user are serialized through a
// per-user mutex, so two concurrent ratings cannot overwrite each other's
// weight adjustment within this process. Updates from separate processes
// still race (last write wins) since the store upsert is unversioned.
type Learner struct {
	store Store

	// userLocks maps userID -> *sync.Mutex.
	userLocks sync.Map
}

// NewLearner creates a Learner backed by store.
func NewLearner(store Store) *Learner {
	return &Learner{store: store}
}

// Weights returns the user's learned weight profile with every weight
// clamped to [0.5, 2.0]. A missing profile, or any fetch error, yields the
// neutral default profile; errors never propagate to scoring.
func (l *Learner) Weights(ctx context.Context, userID string) *models.LearnedWeightProfile {
	p, err := l.store.GetWeights(ctx, userID)
	if err != nil {
		if !errors.Is(err, database.ErrWeightsNotFound) {
			logging.Warn().Err(err).Str("user_id", userID).Msg("Learned-weight fetch failed, using defaults")
		}
		return models.DefaultLearnedWeightProfile(userID)
	}

	p.Weights = clampWeights(p.Weights)
	return p
}

// ConfidenceBoost converts learning state into a score-fraction boost.
// Zero until the user has learning data; afterwards accuracy above 70%
// contributes linearly and rating volume contributes up to a small cap.
func (l *Learner) ConfidenceBoost(p *models.LearnedWeightProfile) float64 {
	if p == nil || !p.HasLearningData {
		return 0
	}

	accuracyBoost := math.Max(0, p.AIAccuracy-accuracyBoostFloor) * accuracyBoostRate
	ratingsBoost := math.Min(float64(p.TotalRatings)*ratingsBoostRate, ratingsBoostCap)

	return accuracyBoost + ratingsBoost
}

// ApplyFeedback ingests one rated date: it records the feedback, adjusts the
// user's cuisine and vibe weights according to the rating, and updates the
// accuracy statistics. The returned outcome summarizes the new learner state
// for the caller.
func (l *Learner) ApplyFeedback(ctx context.Context, f *models.FeedbackRecord) (*models.FeedbackOutcome, error) {
	if f.UserID == "" {
		return nil, fmt.Errorf("feedback requires a user id")
	}
	if f.ActualRating < 1 || f.ActualRating > 5 {
		return nil, fmt.Errorf("actual rating %d out of range [1,5]", f.ActualRating)
	}

	mu := l.lockFor(f.UserID)
	mu.Lock()
	defer mu.Unlock()

	profile := l.Weights(ctx, f.UserID)

	normalizedRating := float64(f.ActualRating) * 20
	f.PredictionError = math.Abs(f.PredictedScore - normalizedRating)

	outcome := "neutral"
	switch {
	case f.ActualRating >= successRating:
		outcome = "success"
		profile.Weights.Cuisine = math.Min(profile.Weights.Cuisine*reinforceFactor, models.WeightCap)
		profile.Weights.Vibe = math.Min(profile.Weights.Vibe*reinforceFactor, models.WeightCap)
		f.SuccessFactors = factorNames(f.PredictedFactors)
	case f.ActualRating < failureRating:
		outcome = "failure"
		profile.Weights.Cuisine = math.Max(profile.Weights.Cuisine*weakenFactor, models.WeightFloor)
		profile.Weights.Vibe = math.Max(profile.Weights.Vibe*weakenFactor, models.WeightFloor)
		f.FailureFactors = factorNames(f.PredictedFactors)
	}

	profile.TotalRatings++
	if f.PredictionError < successMargin {
		profile.SuccessfulPredictions++
	}
	profile.AIAccuracy = float64(profile.SuccessfulPredictions) / float64(profile.TotalRatings) * 100
	profile.HasLearningData = true
	profile.UpdatedAt = time.Now().UTC()

	if err := l.store.UpsertWeights(ctx, profile); err != nil {
		metrics.FeedbackIngested.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist learned weights: %w", err)
	}

	// The feedback trail is an audit record; losing one entry does not
	// invalidate the weight update that already persisted.
	if err := l.store.InsertFeedback(ctx, f); err != nil {
		logging.Warn().Err(err).Str("user_id", f.UserID).Msg("Failed to persist feedback record")
	}

	metrics.FeedbackIngested.WithLabelValues(outcome).Inc()
	logging.Debug().
		Str("user_id", f.UserID).
		Str("outcome", outcome).
		Float64("prediction_error", f.PredictionError).
		Float64("ai_accuracy", profile.AIAccuracy).
		Msg("Feedback applied to learned weights")

	return &models.FeedbackOutcome{
		TotalRatings:    profile.TotalRatings,
		AIAccuracy:      profile.AIAccuracy,
		PredictionError: f.PredictionError,
	}, nil
}

// lockFor returns the mutex serializing updates for one user.
func (l *Learner) lockFor(userID string) *sync.Mutex {
	mu, _ := l.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// clampWeights bounds every weight to [0.5, 2.0] and replaces non-positive
// (unset) weights with the neutral 1.0.
func clampWeights(w models.FeatureWeights) models.FeatureWeights {
	return models.FeatureWeights{
		Cuisine: clampWeight(w.Cuisine),
		Vibe:    clampWeight(w.Vibe),
		Price:   clampWeight(w.Price),
		Time:    clampWeight(w.Time),
		Rating:  clampWeight(w.Rating),
	}
}

func clampWeight(w float64) float64 {
	if w == 0 || math.IsNaN(w) {
		return 1.0
	}
	return math.Max(models.WeightFloor, math.Min(models.WeightCap, w))
}

// factorNames lists the truthy match factors for the feedback audit trail.
func factorNames(f models.MatchFactors) []string {
	var names []string
	if f.CuisineMatch {
		names = append(names, "cuisine_match")
	}
	if f.PriceMatch {
		names = append(names, "price_match")
	}
	if f.VibeMatches > 0 {
		names = append(names, "vibe_match")
	}
	if f.HighRating {
		names = append(names, "high_rating")
	}
	return names
}
