// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package config loads and validates application configuration via Koanf v2
// with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Aggregation strategies. See AggregatorConfig.Strategy.
const (
	StrategyParallel        = "parallel"
	StrategyFoursquareFirst = "foursquare-first"
	StrategyGeoapifyFirst   = "geoapify-first"
)

// Cache backends. See CacheConfig.Backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
)

// Config is the root configuration for the VibeMatch server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Logging    LoggingConfig    `koanf:"logging"`
	Foursquare FoursquareConfig `koanf:"foursquare"`
	Geoapify   GeoapifyConfig   `koanf:"geoapify"`
	Aggregator AggregatorConfig `koanf:"aggregator"`
	Cache      CacheConfig      `koanf:"cache"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	API        APIConfig        `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" opens an in-memory
	// database (used by tests).
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"` // 0 = runtime.NumCPU()
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// FoursquareConfig holds Foursquare Places API settings.
type FoursquareConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// GeoapifyConfig holds Geoapify Places API settings.
type GeoapifyConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// AggregatorConfig controls provider fan-out, deduplication, and fallbacks.
type AggregatorConfig struct {
	// Strategy selects how providers are queried: parallel,
	// foursquare-first, or geoapify-first.
	Strategy string `koanf:"strategy"`

	// MinResults is the primary-provider result count below which the
	// secondary provider is consulted (sequential strategies only).
	MinResults int `koanf:"min_results"`

	// DefaultRadiusM is the provider search radius in meters when the
	// caller's preferences do not bound the distance.
	DefaultRadiusM int `koanf:"default_radius_m"`

	// DedupDistanceM is the proximity threshold in meters under which two
	// similarly named listings are considered the same place.
	DedupDistanceM float64 `koanf:"dedup_distance_m"`

	// DedupSimilarity is the name-similarity threshold (0-1) that must be
	// exceeded together with the proximity threshold.
	DedupSimilarity float64 `koanf:"dedup_similarity"`

	// RequestBudget bounds the whole aggregation including the slower
	// provider path; on expiry the flow falls back to catalog-only results.
	RequestBudget time.Duration `koanf:"request_budget"`
}

// CacheConfig controls the geo-cell venue cache.
type CacheConfig struct {
	// Backend selects the cache implementation: memory (in-process TTL
	// map) or badger (shared on-disk store).
	Backend string        `koanf:"backend"`
	TTL     time.Duration `koanf:"ttl"`

	// Path is the BadgerDB directory (badger backend only).
	Path string `koanf:"path"`
}

// RecommendConfig controls recommendation output shape.
type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// APIConfig holds HTTP API settings, including the per-identifier rate
// budgets mirroring the collaborator tiers (AI, external API, database,
// validation).
type APIConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`

	AIRequestsPerMin         int `koanf:"ai_requests_per_min"`
	ProviderRequestsPerMin   int `koanf:"provider_requests_per_min"`
	DatabaseRequestsPerMin   int `koanf:"database_requests_per_min"`
	ValidationRequestsPerMin int `koanf:"validation_requests_per_min"`
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:         "/data/vibematch.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			QueryTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Foursquare: FoursquareConfig{
			Enabled: true,
			URL:     "https://api.foursquare.com",
			APIKey:  "",
			Timeout: 8 * time.Second,
		},
		Geoapify: GeoapifyConfig{
			Enabled: true,
			URL:     "https://api.geoapify.com",
			APIKey:  "",
			Timeout: 8 * time.Second,
		},
		Aggregator: AggregatorConfig{
			Strategy:        StrategyParallel,
			MinResults:      5,
			DefaultRadiusM:  5000,
			DedupDistanceM:  100,
			DedupSimilarity: 0.6,
			RequestBudget:   20 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheBackendMemory,
			TTL:     15 * time.Minute,
			Path:    "/data/venue-cache",
		},
		Recommend: RecommendConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		API: APIConfig{
			CORSOrigins:              []string{"*"},
			AIRequestsPerMin:         10,
			ProviderRequestsPerMin:   30,
			DatabaseRequestsPerMin:   120,
			ValidationRequestsPerMin: 300,
		},
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Aggregator.Strategy {
	case StrategyParallel, StrategyFoursquareFirst, StrategyGeoapifyFirst:
	default:
		return fmt.Errorf("aggregator.strategy %q is not one of %q, %q, %q",
			c.Aggregator.Strategy, StrategyParallel, StrategyFoursquareFirst, StrategyGeoapifyFirst)
	}

	if c.Aggregator.DedupSimilarity < 0 || c.Aggregator.DedupSimilarity > 1 {
		return fmt.Errorf("aggregator.dedup_similarity %f out of [0,1]", c.Aggregator.DedupSimilarity)
	}
	if c.Aggregator.DefaultRadiusM <= 0 {
		return fmt.Errorf("aggregator.default_radius_m must be positive")
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendBadger:
	default:
		return fmt.Errorf("cache.backend %q is not one of %q, %q",
			c.Cache.Backend, CacheBackendMemory, CacheBackendBadger)
	}
	if c.Cache.Backend == CacheBackendBadger && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required for the badger backend")
	}

	if c.Recommend.DefaultLimit <= 0 || c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("recommend limits invalid: default=%d max=%d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
