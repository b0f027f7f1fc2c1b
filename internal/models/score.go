// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package models

import "time"

// AI score bounds. Raw fractional scores are scaled to 100 and clamped.
const (
	AIScoreMin = 35.0
	AIScoreMax = 98.0

	// NeutralAIScore is returned when preferences, weights, or the venue
	// record cannot be read; scoring never propagates those failures.
	NeutralAIScore = 50.0

	ConfidenceMax = 0.95
)

// MatchFactors records which preference dimensions contributed to a score.
// Used for reasoning assembly and for the confidence level.
type MatchFactors struct {
	CuisineMatch bool `json:"cuisine_match"`
	PriceMatch   bool `json:"price_match"`
	VibeMatches  int  `json:"vibe_matches"`
	HighRating   bool `json:"high_rating"` // venue rating >= 4.0
}

// Count returns the number of truthy factors.
func (m MatchFactors) Count() int {
	n := 0
	if m.CuisineMatch {
		n++
	}
	if m.PriceMatch {
		n++
	}
	if m.VibeMatches > 0 {
		n++
	}
	if m.HighRating {
		n++
	}
	return n
}

// AIVenueScore is the audit/cache row written after each score computation.
// Upserted by (VenueID, UserID), last write wins. Serving always recomputes;
// this row is a trail, not an authority.
type AIVenueScore struct {
	VenueID         string       `json:"venue_id"`
	UserID          string       `json:"user_id"`
	AIScore         float64      `json:"ai_score"` // in [AIScoreMin, AIScoreMax]
	MatchFactors    MatchFactors `json:"match_factors"`
	ContextualScore float64      `json:"contextual_score"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ScoreResult is the full outcome of one AI score computation.
type ScoreResult struct {
	VenueID         string       `json:"venue_id"`
	AIScore         float64      `json:"ai_score"`
	MatchFactors    MatchFactors `json:"match_factors"`
	ContextualScore float64      `json:"contextual_score"`
	ConfidenceLevel float64      `json:"confidence_level"` // in [0, ConfidenceMax]
	Reasoning       string       `json:"reasoning"`
}
