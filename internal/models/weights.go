// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package models

import "time"

// Weight bounds applied to every learned feature weight on read.
const (
	WeightFloor = 0.5
	WeightCap   = 2.0
)

// FeatureWeights are per-feature multipliers learned from feedback.
// Each weight is clamped to [WeightFloor, WeightCap] when read; a missing
// weight defaults to 1.0 (no adjustment).
type FeatureWeights struct {
	Cuisine float64 `json:"cuisine"`
	Vibe    float64 `json:"vibe"`
	Price   float64 `json:"price"`
	Time    float64 `json:"time"`
	Rating  float64 `json:"rating"`
}

// DefaultFeatureWeights returns the all-1.0 neutral weight set.
func DefaultFeatureWeights() FeatureWeights {
	return FeatureWeights{Cuisine: 1.0, Vibe: 1.0, Price: 1.0, Time: 1.0, Rating: 1.0}
}

// LearnedWeightProfile is one user's adaptive scoring state.
// It is updated only by the weight learner after a feedback event.
type LearnedWeightProfile struct {
	UserID string `json:"user_id"`

	Weights FeatureWeights `json:"feature_weights"`

	// AIAccuracy is the percentage (0-100) of past predictions that landed
	// within the success margin of the user's actual rating.
	AIAccuracy float64 `json:"ai_accuracy"`

	TotalRatings          int `json:"total_ratings"`
	SuccessfulPredictions int `json:"successful_predictions"`

	// HasLearningData is false until at least one feedback event has been
	// ingested; the confidence boost is zero while false.
	HasLearningData bool `json:"has_learning_data"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DefaultLearnedWeightProfile returns the profile used when a user has no
// stored learning state.
func DefaultLearnedWeightProfile(userID string) *LearnedWeightProfile {
	return &LearnedWeightProfile{
		UserID:          userID,
		Weights:         DefaultFeatureWeights(),
		HasLearningData: false,
	}
}
