// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// ErrScoreNotFound is returned when no cached score exists for the pair.
var ErrScoreNotFound = errors.New("ai venue score not found")

// UpsertAIScore writes a score cache row keyed by (venue_id, user_id).
// Last write wins. The score engine treats failures here as non-fatal;
// scores are recomputed on every request and this row is only a trail.
func (db *DB) UpsertAIScore(ctx context.Context, s *models.AIVenueScore) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	s.UpdatedAt = time.Now()

	query := `INSERT OR REPLACE INTO ai_venue_scores (
		venue_id, user_id, ai_score, cuisine_match, price_match,
		vibe_matches, high_rating, contextual_score, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		s.VenueID, s.UserID, s.AIScore, s.MatchFactors.CuisineMatch,
		s.MatchFactors.PriceMatch, s.MatchFactors.VibeMatches,
		s.MatchFactors.HighRating, s.ContextualScore, s.UpdatedAt,
	)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "ai_venue_scores").Inc()
		return fmt.Errorf("failed to upsert ai score (%s, %s): %w", s.VenueID, s.UserID, err)
	}
	return nil
}

// GetAIScore retrieves the cached score row for a (venue, user) pair.
func (db *DB) GetAIScore(ctx context.Context, venueID, userID string) (*models.AIVenueScore, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT venue_id, user_id, ai_score, cuisine_match, price_match,
		vibe_matches, high_rating, contextual_score, updated_at
	FROM ai_venue_scores WHERE venue_id = ? AND user_id = ?`

	var s models.AIVenueScore
	var updatedAt sql.NullTime

	err := db.conn.QueryRowContext(ctx, query, venueID, userID).Scan(
		&s.VenueID, &s.UserID, &s.AIScore, &s.MatchFactors.CuisineMatch,
		&s.MatchFactors.PriceMatch, &s.MatchFactors.VibeMatches,
		&s.MatchFactors.HighRating, &s.ContextualScore, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get", "ai_venue_scores").Inc()
		return nil, fmt.Errorf("failed to get ai score (%s, %s): %w", venueID, userID, err)
	}

	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
