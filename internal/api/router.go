// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JennePenne123/vibematch/internal/middleware"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler *Handler
	mw      *Middleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, mw *Middleware) *Router {
	return &Router{
		handler: handler,
		mw:      mw,
	}
}

// Setup builds the Chi route tree.
//
// Rate limit tiers reflect what each endpoint costs downstream: the
// recommendation endpoint carries both the AI tier and the provider tier
// because one request can fan out to every venue provider; feedback only
// writes to the database; health only validates connectivity.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.mw.RateLimitProvider())
			r.Use(rt.mw.RateLimitAI())
			r.Use(middleware.Prometheus)
			r.Use(middleware.Compression)
			r.Post("/recommendations", rt.handler.Recommendations)
		})

		r.Group(func(r chi.Router) {
			r.Use(rt.mw.RateLimitDatabase())
			r.Use(middleware.Prometheus)
			r.Post("/feedback", rt.handler.Feedback)
		})

		r.Group(func(r chi.Router) {
			r.Use(rt.mw.RateLimitValidation())
			r.Get("/health", rt.handler.Health)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
