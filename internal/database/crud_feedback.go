// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// InsertFeedback appends one feedback record. Records are never updated or
// deleted; each one drives exactly one learned-weight update.
func (db *DB) InsertFeedback(ctx context.Context, f *models.FeedbackRecord) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	query := `INSERT INTO date_feedback (
		id, user_id, partner_id, venue_id, predicted_score,
		predicted_factors, actual_rating, prediction_error,
		success_factors, failure_factors, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		f.ID.String(), f.UserID, nullableString(f.PartnerID), f.VenueID,
		f.PredictedScore, marshalJSON(f.PredictedFactors), f.ActualRating,
		f.PredictionError, marshalJSON(f.SuccessFactors),
		marshalJSON(f.FailureFactors), f.CreatedAt,
	)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("insert", "date_feedback").Inc()
		return fmt.Errorf("failed to insert feedback record: %w", err)
	}
	return nil
}

// ListFeedback returns a user's feedback records, newest first.
func (db *DB) ListFeedback(ctx context.Context, userID string, limit int) ([]models.FeedbackRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, user_id, partner_id, venue_id, predicted_score,
		predicted_factors, actual_rating, prediction_error,
		success_factors, failure_factors, created_at
	FROM date_feedback WHERE user_id = ?
	ORDER BY created_at DESC LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, userID, limit)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("list", "date_feedback").Inc()
		return nil, fmt.Errorf("failed to list feedback for %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.FeedbackRecord
	for rows.Next() {
		var f models.FeedbackRecord
		var id string
		var partnerID, factors, successFactors, failureFactors sql.NullString
		var createdAt sql.NullTime

		err := rows.Scan(&id, &f.UserID, &partnerID, &f.VenueID,
			&f.PredictedScore, &factors, &f.ActualRating, &f.PredictionError,
			&successFactors, &failureFactors, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			logging.Warn().Str("id", id).Msg("feedback row has malformed id")
		} else {
			f.ID = parsed
		}
		f.PartnerID = partnerID.String
		if factors.Valid && factors.String != "" {
			if err := json.Unmarshal([]byte(factors.String), &f.PredictedFactors); err != nil {
				logging.Warn().Err(err).Msg("failed to unmarshal predicted factors")
			}
		}
		f.SuccessFactors = unmarshalStrings(successFactors)
		f.FailureFactors = unmarshalStrings(failureFactors)
		f.CreatedAt = createdAt.Time

		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedback row iteration failed: %w", err)
	}
	return records, nil
}
