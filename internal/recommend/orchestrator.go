// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package recommend composes the aggregation, filtering, and scoring stages
// into the ordered recommendation list returned to callers.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JennePenne123/vibematch/internal/database"
	"github.com/JennePenne123/vibematch/internal/filter"
	"github.com/JennePenne123/vibematch/internal/geo"
	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// scoreConcurrency bounds how many venue scores are computed at once for a
// single request.
const scoreConcurrency = 8

// Request is one recommendation query.
type Request struct {
	UserID    string
	PartnerID string // optional; switches to the collaborative filter
	Latitude  float64
	Longitude float64
	Limit     int // 0 uses the configured default
}

// Recommendation is one scored, display-ready venue.
type Recommendation struct {
	Venue models.VenueRecord `json:"venue"`

	AIScore         float64             `json:"ai_score"`
	MatchFactors    models.MatchFactors `json:"match_factors"`
	ConfidenceLevel float64             `json:"confidence_level"`
	Reasoning       string              `json:"reasoning"`

	// Filter-stage scores; CollaborativeScore is zero in solo mode.
	PreferenceScore    float64 `json:"preference_score,omitempty"`
	CollaborativeScore float64 `json:"collaborative_score,omitempty"`

	// Derived display fields.
	Distance     string `json:"distance"`               // "750m", "4.2km"
	OpenStatus   string `json:"open_status"`            // "open", "closed", "unknown"
	Neighborhood string `json:"neighborhood,omitempty"` // parsed from address
}

// VenueSource resolves candidate venues. *aggregator.Aggregator satisfies it.
type VenueSource interface {
	Aggregate(ctx context.Context, lat, lon float64, prefs *models.PreferenceProfile) []models.VenueRecord
}

// Scorer computes per-venue AI scores. *score.Engine satisfies it.
type Scorer interface {
	Score(ctx context.Context, venue *models.VenueRecord, userID string) *models.ScoreResult
}

// PreferenceStore reads preference profiles. *database.DB satisfies it.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*models.PreferenceProfile, error)
}

// Limits caps result counts.
type Limits struct {
	Default int
	Max     int
}

// Orchestrator runs the recommendation pipeline. It is safe for concurrent
// use.
type Orchestrator struct {
	venues VenueSource
	scorer Scorer
	prefs  PreferenceStore
	limits Limits

	// now is injectable for deterministic emergency-id and open-status tests.
	now func() time.Time
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(venues VenueSource, scorer Scorer, prefs PreferenceStore, limits Limits) *Orchestrator {
	return &Orchestrator{
		venues: venues,
		scorer: scorer,
		prefs:  prefs,
		limits: limits,
		now:    time.Now,
	}
}

// WithClock overrides the orchestrator's time source. Returns the receiver
// for chaining at construction.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Recommend produces the ordered recommendation list for one request.
// The pipeline is aggregate, shortlist, score, decorate, sort, truncate;
// every stage degrades rather than fails, so the only error cases are an
// invalid request.
func (o *Orchestrator) Recommend(ctx context.Context, req *Request) ([]Recommendation, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("recommendation request requires a user id")
	}

	mode := "solo"
	if req.PartnerID != "" {
		mode = "collaborative"
	}
	start := o.now()
	defer func() {
		metrics.RecommendationDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	userPrefs := o.loadPrefs(ctx, req.UserID)
	var partnerPrefs *models.PreferenceProfile
	if req.PartnerID != "" {
		partnerPrefs = o.loadPrefs(ctx, req.PartnerID)
	}

	candidates := o.venues.Aggregate(ctx, req.Latitude, req.Longitude, userPrefs)
	if len(candidates) == 0 {
		logging.Info().Str("user_id", req.UserID).Msg("No candidate venues found")
		return []Recommendation{}, nil
	}

	var shortlist []models.ScoredVenue
	if mode == "collaborative" {
		shortlist = filter.Collaborative(candidates, userPrefs, partnerPrefs)
	} else {
		shortlist = filter.Solo(candidates, userPrefs)
	}

	recs := o.scoreAll(ctx, shortlist, req)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].AIScore > recs[j].AIScore
	})

	limit := o.effectiveLimit(req.Limit)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	recs = o.ensureIDs(recs)

	metrics.RecommendationsServed.WithLabelValues(mode).Add(float64(len(recs)))
	logging.Debug().
		Str("user_id", req.UserID).
		Str("mode", mode).
		Int("candidates", len(candidates)).
		Int("shortlisted", len(shortlist)).
		Int("returned", len(recs)).
		Msg("Recommendations assembled")

	return recs, nil
}

// scoreAll computes AI scores for the shortlist with bounded concurrency and
// attaches the derived display fields.
func (o *Orchestrator) scoreAll(ctx context.Context, shortlist []models.ScoredVenue, req *Request) []Recommendation {
	recs := make([]Recommendation, len(shortlist))

	g := &errgroup.Group{}
	g.SetLimit(scoreConcurrency)
	for i := range shortlist {
		g.Go(func() error {
			sv := &shortlist[i]
			result := o.scorer.Score(ctx, &sv.Venue, req.UserID)

			distKm := geo.DistanceKm(req.Latitude, req.Longitude, sv.Venue.Latitude, sv.Venue.Longitude)
			recs[i] = Recommendation{
				Venue:              sv.Venue,
				AIScore:            result.AIScore,
				MatchFactors:       result.MatchFactors,
				ConfidenceLevel:    result.ConfidenceLevel,
				Reasoning:          result.Reasoning,
				PreferenceScore:    sv.PreferenceScore,
				CollaborativeScore: sv.CollaborativeScore,
				Distance:           geo.FormatDistance(distKm),
				OpenStatus:         openStatus(sv.Venue.Hours, o.now()),
				Neighborhood:       neighborhood(sv.Venue.Address),
			}
			return nil
		})
	}
	_ = g.Wait()

	return recs
}

// ensureIDs validates every result has a venue id, synthesizing an emergency
// id from the name and timestamp when missing and dropping results that
// still lack one.
func (o *Orchestrator) ensureIDs(recs []Recommendation) []Recommendation {
	out := recs[:0]
	for _, r := range recs {
		if r.Venue.ID == "" {
			r.Venue.ID = emergencyID(r.Venue.Name, o.now())
			if r.Venue.ID == "" {
				logging.Warn().Str("venue_name", r.Venue.Name).Msg("Dropping venue without usable id")
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// emergencyID builds a last-resort venue id from the name and timestamp.
// Returns empty when the name is unusable.
func emergencyID(name string, now time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	if slug == "" {
		return ""
	}
	return fmt.Sprintf("tmp_%s_%d", slug, now.Unix())
}

// loadPrefs reads a profile; absence or failure yields nil so downstream
// stages degrade instead of failing.
func (o *Orchestrator) loadPrefs(ctx context.Context, userID string) *models.PreferenceProfile {
	p, err := o.prefs.GetPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, database.ErrPreferencesNotFound) {
			logging.Warn().Err(err).Str("user_id", userID).Msg("Preference read failed")
		}
		return nil
	}
	return p
}

func (o *Orchestrator) effectiveLimit(requested int) int {
	switch {
	case requested <= 0:
		return o.limits.Default
	case requested > o.limits.Max:
		return o.limits.Max
	default:
		return requested
	}
}
