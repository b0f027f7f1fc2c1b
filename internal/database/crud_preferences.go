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

// ErrPreferencesNotFound is returned when a user has no stored preference
// profile. Callers degrade gracefully (neutral scores, unfiltered venues)
// rather than treating this as fatal.
var ErrPreferencesNotFound = errors.New("preference profile not found")

// GetPreferences retrieves a user's preference profile.
// The core treats the result as an immutable snapshot for one request.
func (db *DB) GetPreferences(ctx context.Context, userID string) (*models.PreferenceProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT user_id, preferred_cuisines, preferred_vibes,
		preferred_prices, preferred_times, max_distance_km,
		dietary_restrictions, updated_at
	FROM user_preferences WHERE user_id = ?`

	var p models.PreferenceProfile
	var cuisines, vibes, prices, times, dietary sql.NullString
	var maxDistance sql.NullFloat64
	var updatedAt sql.NullTime

	err := db.conn.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &cuisines, &vibes, &prices, &times, &maxDistance,
		&dietary, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get", "user_preferences").Inc()
		return nil, fmt.Errorf("failed to get preferences for %s: %w", userID, err)
	}

	p.PreferredCuisines = unmarshalStrings(cuisines)
	p.PreferredVibes = unmarshalStrings(vibes)
	for _, pr := range unmarshalStrings(prices) {
		p.PreferredPrices = append(p.PreferredPrices, models.PriceRange(pr))
	}
	p.PreferredTimes = unmarshalStrings(times)
	p.MaxDistanceKm = maxDistance.Float64
	p.DietaryRestrictions = unmarshalStrings(dietary)
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// UpsertPreferences writes a preference profile. The surrounding app owns
// profile editing; this exists for seeding and tests.
func (db *DB) UpsertPreferences(ctx context.Context, p *models.PreferenceProfile) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	prices := make([]string, 0, len(p.PreferredPrices))
	for _, pr := range p.PreferredPrices {
		prices = append(prices, string(pr))
	}

	query := `INSERT OR REPLACE INTO user_preferences (
		user_id, preferred_cuisines, preferred_vibes, preferred_prices,
		preferred_times, max_distance_km, dietary_restrictions, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		p.UserID, marshalJSON(p.PreferredCuisines), marshalJSON(p.PreferredVibes),
		marshalJSON(prices), marshalJSON(p.PreferredTimes), p.MaxDistanceKm,
		marshalJSON(p.DietaryRestrictions), time.Now(),
	)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "user_preferences").Inc()
		return fmt.Errorf("failed to upsert preferences for %s: %w", p.UserID, err)
	}
	return nil
}
