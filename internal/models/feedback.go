// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRecord captures one rated date. Records are append-only; each one
// drives exactly one learned-weight update for the rating user.
type FeedbackRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	PartnerID string    `json:"partner_id,omitempty"`
	VenueID   string    `json:"venue_id"`

	// PredictedScore is the AI score shown to the user before the date (0-100).
	PredictedScore   float64      `json:"predicted_score"`
	PredictedFactors MatchFactors `json:"predicted_factors"`

	// ActualRating is the user's post-date rating, 1-5 stars.
	ActualRating int `json:"actual_rating"`

	// PredictionError is |PredictedScore - ActualRating*20|.
	PredictionError float64 `json:"prediction_error"`

	SuccessFactors []string `json:"success_factors,omitempty"`
	FailureFactors []string `json:"failure_factors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FeedbackOutcome summarizes the learner state after ingesting feedback;
// it is the payload returned to the feedback endpoint caller.
type FeedbackOutcome struct {
	TotalRatings    int     `json:"total_ratings"`
	AIAccuracy      float64 `json:"ai_accuracy"`
	PredictionError float64 `json:"prediction_error"`
}
