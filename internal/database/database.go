// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package database provides DuckDB-backed persistence for the VibeMatch core:
// the venue catalog, user preference profiles, learned weight profiles, the
// AI score cache, and the append-only feedback log.
//
// CRUD operations are split across files by entity:
//   - crud_venues.go: venue catalog (read, write-through, radius queries)
//   - crud_preferences.go: preference profiles (read-only to the core)
//   - crud_weights.go: learned weight profiles
//   - crud_scores.go: AI score cache (best-effort audit trail)
//   - crud_feedback.go: feedback records (append-only)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/JennePenne123/vibematch/internal/config"
)

// DB wraps the DuckDB connection and query configuration.
type DB struct {
	conn         *sql.DB
	queryTimeout time.Duration
}

// New opens (or creates) the DuckDB database at cfg.Path and initializes
// the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure parent directory exists for database file
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments; the schema uses core SQL only.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	db := &DB{conn: conn, queryTimeout: timeout}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// NewMemory opens an in-memory database. Used by tests.
func NewMemory() (*DB, error) {
	return New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "256MB",
		Threads:      1,
		QueryTimeout: 5 * time.Second,
	})
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// ensureContext guarantees every query runs under a bounded deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), db.queryTimeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, db.queryTimeout)
	}
	return ctx, func() {}
}

// initSchema creates all tables if they do not exist.
func (db *DB) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			cuisine_type TEXT,
			price_range TEXT,
			rating DOUBLE,
			description TEXT,
			hours TEXT,
			tags TEXT,          -- JSON array
			photos TEXT,        -- JSON array
			source TEXT,
			provider_ids TEXT,  -- JSON object
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id TEXT PRIMARY KEY,
			preferred_cuisines TEXT,    -- JSON array
			preferred_vibes TEXT,       -- JSON array
			preferred_prices TEXT,      -- JSON array
			preferred_times TEXT,       -- JSON array
			max_distance_km DOUBLE,
			dietary_restrictions TEXT,  -- JSON array
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS learned_weights (
			user_id TEXT PRIMARY KEY,
			weight_cuisine DOUBLE,
			weight_vibe DOUBLE,
			weight_price DOUBLE,
			weight_time DOUBLE,
			weight_rating DOUBLE,
			ai_accuracy DOUBLE,
			total_ratings INTEGER,
			successful_predictions INTEGER,
			has_learning_data BOOLEAN,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ai_venue_scores (
			venue_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			ai_score DOUBLE NOT NULL,
			cuisine_match BOOLEAN,
			price_match BOOLEAN,
			vibe_matches INTEGER,
			high_rating BOOLEAN,
			contextual_score DOUBLE,
			updated_at TIMESTAMP,
			PRIMARY KEY (venue_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS date_feedback (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			partner_id TEXT,
			venue_id TEXT NOT NULL,
			predicted_score DOUBLE,
			predicted_factors TEXT,  -- JSON object
			actual_rating INTEGER,
			prediction_error DOUBLE,
			success_factors TEXT,    -- JSON array
			failure_factors TEXT,    -- JSON array
			created_at TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
