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

// ErrWeightsNotFound is returned when a user has no learned weight row.
// The learner substitutes the all-1.0 default profile.
var ErrWeightsNotFound = errors.New("learned weight profile not found")

// GetWeights retrieves a user's learned weight profile as stored.
// Clamping to the [0.5, 2.0] bounds is the learner's responsibility.
func (db *DB) GetWeights(ctx context.Context, userID string) (*models.LearnedWeightProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT user_id, weight_cuisine, weight_vibe, weight_price,
		weight_time, weight_rating, ai_accuracy, total_ratings,
		successful_predictions, has_learning_data, updated_at
	FROM learned_weights WHERE user_id = ?`

	var p models.LearnedWeightProfile
	var updatedAt sql.NullTime

	err := db.conn.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Weights.Cuisine, &p.Weights.Vibe, &p.Weights.Price,
		&p.Weights.Time, &p.Weights.Rating, &p.AIAccuracy, &p.TotalRatings,
		&p.SuccessfulPredictions, &p.HasLearningData, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeightsNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get", "learned_weights").Inc()
		return nil, fmt.Errorf("failed to get weights for %s: %w", userID, err)
	}

	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// UpsertWeights writes a learned weight profile keyed by user id.
// Last write wins; the learner serializes same-user updates in-process.
func (db *DB) UpsertWeights(ctx context.Context, p *models.LearnedWeightProfile) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	p.UpdatedAt = time.Now()

	query := `INSERT OR REPLACE INTO learned_weights (
		user_id, weight_cuisine, weight_vibe, weight_price, weight_time,
		weight_rating, ai_accuracy, total_ratings, successful_predictions,
		has_learning_data, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		p.UserID, p.Weights.Cuisine, p.Weights.Vibe, p.Weights.Price,
		p.Weights.Time, p.Weights.Rating, p.AIAccuracy, p.TotalRatings,
		p.SuccessfulPredictions, p.HasLearningData, p.UpdatedAt,
	)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "learned_weights").Inc()
		return fmt.Errorf("failed to upsert weights for %s: %w", p.UserID, err)
	}
	return nil
}
