// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package api provides the VibeMatch HTTP surface: recommendation and
// feedback endpoints, health, and Prometheus metrics, routed with Chi.
package api

import (
	"context"
	"time"

	"github.com/JennePenne123/vibematch/internal/cache"
	"github.com/JennePenne123/vibematch/internal/config"
	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/recommend"
)

// maxBodyBytes bounds request body size. Feedback and recommendation
// payloads are small; anything bigger is abuse.
const maxBodyBytes = 1 << 20

// Recommender runs the recommendation pipeline. *recommend.Orchestrator
// satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req *recommend.Request) ([]recommend.Recommendation, error)
}

// FeedbackSink ingests post-date ratings. *learn.Learner satisfies it.
type FeedbackSink interface {
	ApplyFeedback(ctx context.Context, f *models.FeedbackRecord) (*models.FeedbackOutcome, error)
}

// Pinger checks database connectivity. *database.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the collaborators HTTP handlers delegate to.
type Handler struct {
	recommender Recommender
	feedback    FeedbackSink
	db          Pinger
	cache       cache.VenueCache
	config      *config.Config
	startTime   time.Time
}

// NewHandler creates a Handler. db and cache may be nil in tests; the health
// endpoint reports them as disconnected.
func NewHandler(recommender Recommender, feedback FeedbackSink, db Pinger, venueCache cache.VenueCache, cfg *config.Config) *Handler {
	return &Handler{
		recommender: recommender,
		feedback:    feedback,
		db:          db,
		cache:       venueCache,
		config:      cfg,
		startTime:   time.Now(),
	}
}
