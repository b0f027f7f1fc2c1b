// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/JennePenne123/vibematch/internal/config"
)

// UserIDHeader identifies the caller for per-user rate limiting. Requests
// without it fall back to IP-based limiting.
const UserIDHeader = "X-User-ID"

// Middleware provides the router's CORS handler and the per-tier rate
// limiters. Each tier mirrors the budget of the collaborator it fronts:
// AI scoring is the most expensive operation, provider fan-out is quota
// bound, database writes are cheap, and shape validation is nearly free.
type Middleware struct {
	cfg  *config.APIConfig
	cors func(http.Handler) http.Handler
}

// NewMiddleware creates a Middleware from API configuration.
func NewMiddleware(cfg *config.APIConfig) *Middleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", UserIDHeader, "X-Request-ID"},
		MaxAge:         86400,
	})

	return &Middleware{
		cfg:  cfg,
		cors: corsHandler,
	}
}

// CORS returns the CORS middleware built from the configured origins.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// keyByUser keys rate limits by the X-User-ID header, falling back to the
// request IP for anonymous callers.
func keyByUser(r *http.Request) (string, error) {
	if id := r.Header.Get(UserIDHeader); id != "" {
		return id, nil
	}
	return httprate.KeyByIP(r)
}

// limit builds a per-minute limiter keyed by user.
func (m *Middleware) limit(requestsPerMin int) func(http.Handler) http.Handler {
	if requestsPerMin <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requestsPerMin,
		time.Minute,
		httprate.WithKeyFuncs(keyByUser),
	)
}

// RateLimitAI limits AI-backed operations (the recommendation pipeline).
func (m *Middleware) RateLimitAI() func(http.Handler) http.Handler {
	return m.limit(m.cfg.AIRequestsPerMin)
}

// RateLimitProvider limits operations that can reach external venue
// providers. Provider quotas are the scarcest resource in the system.
func (m *Middleware) RateLimitProvider() func(http.Handler) http.Handler {
	return m.limit(m.cfg.ProviderRequestsPerMin)
}

// RateLimitDatabase limits database-write operations (feedback ingestion).
func (m *Middleware) RateLimitDatabase() func(http.Handler) http.Handler {
	return m.limit(m.cfg.DatabaseRequestsPerMin)
}

// RateLimitValidation limits cheap validation-only operations (health).
func (m *Middleware) RateLimitValidation() func(http.Handler) http.Handler {
	return m.limit(m.cfg.ValidationRequestsPerMin)
}
