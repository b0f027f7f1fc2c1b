// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Command server runs the VibeMatch recommendation service: it wires the
// DuckDB store, the venue cache, the provider clients behind circuit
// breakers, the weight learner, the AI score engine, and the recommendation
// orchestrator into an HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JennePenne123/vibematch/internal/aggregator"
	"github.com/JennePenne123/vibematch/internal/api"
	"github.com/JennePenne123/vibematch/internal/cache"
	"github.com/JennePenne123/vibematch/internal/config"
	"github.com/JennePenne123/vibematch/internal/database"
	"github.com/JennePenne123/vibematch/internal/learn"
	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/provider"
	"github.com/JennePenne123/vibematch/internal/recommend"
	"github.com/JennePenne123/vibematch/internal/score"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("strategy", cfg.Aggregator.Strategy).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting VibeMatch server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	venueCache, err := buildCache(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize venue cache: %w", err)
	}
	defer func() {
		if err := venueCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close venue cache")
		}
	}()

	foursquare, geoapify := buildProviders(cfg)

	agg := aggregator.New(foursquare, geoapify, venueCache, db, &cfg.Aggregator)
	learner := learn.NewLearner(db)
	engine := score.NewEngine(db, learner, db)
	orchestrator := recommend.NewOrchestrator(agg, engine, db, recommend.Limits{
		Default: cfg.Recommend.DefaultLimit,
		Max:     cfg.Recommend.MaxLimit,
	})

	handler := api.NewHandler(orchestrator, learner, db, venueCache, cfg)
	router := api.NewRouter(handler, api.NewMiddleware(&cfg.API))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}

// buildCache selects the venue cache backend from configuration.
func buildCache(cfg *config.Config) (cache.VenueCache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendBadger:
		return cache.NewBadger(cfg.Cache.Path, cfg.Cache.TTL)
	case config.CacheBackendMemory:
		return cache.NewMemory(cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// buildProviders constructs the enabled provider clients, each wrapped in a
// circuit breaker. A disabled provider stays nil; the aggregator treats nil
// providers as permanently empty.
func buildProviders(cfg *config.Config) (foursquare, geoapify provider.Searcher) {
	if cfg.Foursquare.Enabled {
		if cfg.Foursquare.APIKey == "" {
			logging.Warn().Msg("Foursquare enabled without an API key; requests will be rejected upstream")
		}
		foursquare = provider.NewBreakerSearcher(provider.NewFoursquareClient(&cfg.Foursquare))
	} else {
		logging.Info().Msg("Foursquare provider disabled")
	}

	if cfg.Geoapify.Enabled {
		if cfg.Geoapify.APIKey == "" {
			logging.Warn().Msg("Geoapify enabled without an API key; requests will be rejected upstream")
		}
		geoapify = provider.NewBreakerSearcher(provider.NewGeoapifyClient(&cfg.Geoapify))
	} else {
		logging.Info().Msg("Geoapify provider disabled")
	}

	return foursquare, geoapify
}
