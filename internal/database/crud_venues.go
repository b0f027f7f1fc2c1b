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
	"math"
	"time"

	"github.com/JennePenne123/vibematch/internal/geo"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// ErrVenueNotFound is returned when a venue id has no catalog row.
var ErrVenueNotFound = errors.New("venue not found")

// venueColumns is the shared column list for venue SELECTs.
const venueColumns = `id, name, address, latitude, longitude, cuisine_type,
	price_range, rating, description, hours, tags, photos, source,
	provider_ids, created_at, updated_at`

// UpsertVenue writes a venue to the catalog, replacing any existing row with
// the same id. Newly discovered provider venues are written through here.
func (db *DB) UpsertVenue(ctx context.Context, v *models.VenueRecord) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	query := `INSERT OR REPLACE INTO venues (
		id, name, address, latitude, longitude, cuisine_type, price_range,
		rating, description, hours, tags, photos, source, provider_ids,
		active, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		v.ID, v.Name, nullableString(v.Address), v.Latitude, v.Longitude,
		nullableString(v.CuisineType), nullableString(string(v.PriceRange)),
		v.Rating, nullableString(v.Description), nullableString(v.Hours),
		marshalJSON(v.Tags), marshalJSON(v.Photos), nullableString(v.Source),
		marshalJSON(v.ProviderIDs), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "venues").Inc()
		return fmt.Errorf("failed to upsert venue %s: %w", v.ID, err)
	}
	return nil
}

// GetVenue retrieves one venue by id.
func (db *DB) GetVenue(ctx context.Context, id string) (*models.VenueRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = ? AND active`
	row := db.conn.QueryRowContext(ctx, query, id)

	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get", "venues").Inc()
		return nil, fmt.Errorf("failed to get venue %s: %w", id, err)
	}
	return v, nil
}

// GetActiveVenues returns up to limit active venues, most recently updated
// first. Used as the last catalog fallback when no location is known.
func (db *DB) GetActiveVenues(ctx context.Context, limit int) ([]models.VenueRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + venueColumns + ` FROM venues WHERE active
		ORDER BY updated_at DESC LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("list", "venues").Inc()
		return nil, fmt.Errorf("failed to list active venues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectVenues(rows)
}

// QueryByRadius returns active venues within radiusKm of the given point.
//
// The SQL predicate is a fast bounding box; results are then filtered by
// precise great-circle distance. One degree of latitude is ~111km, while a
// degree of longitude shrinks by cos(lat) toward the poles, so the
// longitude span is widened accordingly. The 1.5 safety factor over-selects
// slightly; the distance filter discards the excess.
func (db *DB) QueryByRadius(ctx context.Context, lat, lon, radiusKm float64) ([]models.VenueRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if radiusKm <= 0 {
		radiusKm = 10
	}

	latSpan := radiusKm / 111.0 * 1.5
	lonSpan := 180.0
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lonSpan = latSpan / cosLat
	}

	query := `SELECT ` + venueColumns + ` FROM venues WHERE active
		AND latitude BETWEEN ? AND ?
		AND longitude BETWEEN ? AND ?`

	rows, err := db.conn.QueryContext(ctx, query,
		lat-latSpan, lat+latSpan, lon-lonSpan, lon+lonSpan)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("radius", "venues").Inc()
		return nil, fmt.Errorf("failed to query venues by radius: %w", err)
	}
	defer func() { _ = rows.Close() }()

	candidates, err := collectVenues(rows)
	if err != nil {
		return nil, err
	}

	within := make([]models.VenueRecord, 0, len(candidates))
	for _, v := range candidates {
		if geo.DistanceKm(lat, lon, v.Latitude, v.Longitude) <= radiusKm {
			within = append(within, v)
		}
	}
	return within, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanVenue.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.VenueRecord, error) {
	var v models.VenueRecord
	var address, cuisine, price, description, hours, source sql.NullString
	var tags, photos, providerIDs sql.NullString
	var rating sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&v.ID, &v.Name, &address, &v.Latitude, &v.Longitude, &cuisine,
		&price, &rating, &description, &hours, &tags, &photos, &source,
		&providerIDs, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Address = address.String
	v.CuisineType = cuisine.String
	v.PriceRange = models.PriceRange(price.String)
	v.Rating = rating.Float64
	v.Description = description.String
	v.Hours = hours.String
	v.Source = source.String
	v.Tags = unmarshalStrings(tags)
	v.Photos = unmarshalStrings(photos)
	v.ProviderIDs = unmarshalStringMap(providerIDs)
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return &v, nil
}

func collectVenues(rows *sql.Rows) ([]models.VenueRecord, error) {
	var venues []models.VenueRecord
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		venues = append(venues, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("venue row iteration failed: %w", err)
	}
	return venues, nil
}
