// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package learn

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/JennePenne123/vibematch/internal/database"
	"github.com/JennePenne123/vibematch/internal/models"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu       sync.Mutex
	weights  map[string]models.LearnedWeightProfile
	feedback []models.FeedbackRecord

	getErr    error
	upsertErr error
}

func newMemStore() *memStore {
	return &memStore{weights: make(map[string]models.LearnedWeightProfile)}
}

func (s *memStore) GetWeights(ctx context.Context, userID string) (*models.LearnedWeightProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.weights[userID]
	if !ok {
		return nil, database.ErrWeightsNotFound
	}
	cp := p
	return &cp, nil
}

func (s *memStore) UpsertWeights(ctx context.Context, p *models.LearnedWeightProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.weights[p.UserID] = *p
	return nil
}

func (s *memStore) InsertFeedback(ctx context.Context, f *models.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, *f)
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightsDefaultsOnMissing(t *testing.T) {
	l := NewLearner(newMemStore())

	p := l.Weights(context.Background(), "new-user")
	if p.HasLearningData {
		t.Error("HasLearningData = true for a new user, want false")
	}
	if p.Weights != models.DefaultFeatureWeights() {
		t.Errorf("Weights = %+v, want all-1.0 defaults", p.Weights)
	}
}

func TestWeightsDefaultsOnStoreError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("duckdb exploded")
	l := NewLearner(store)

	p := l.Weights(context.Background(), "u1")
	if p.Weights != models.DefaultFeatureWeights() {
		t.Errorf("Weights = %+v, want defaults when the store fails", p.Weights)
	}
}

func TestWeightsClamped(t *testing.T) {
	store := newMemStore()
	store.weights["u1"] = models.LearnedWeightProfile{
		UserID:  "u1",
		Weights: models.FeatureWeights{Cuisine: 5.0, Vibe: 0.1, Price: 0, Time: 1.3, Rating: -2},
	}
	l := NewLearner(store)

	w := l.Weights(context.Background(), "u1").Weights
	if w.Cuisine != models.WeightCap {
		t.Errorf("Cuisine = %f, want clamped to %f", w.Cuisine, models.WeightCap)
	}
	if w.Vibe != models.WeightFloor {
		t.Errorf("Vibe = %f, want clamped to %f", w.Vibe, models.WeightFloor)
	}
	if w.Price != 1.0 {
		t.Errorf("Price = %f, want unset weight defaulted to 1.0", w.Price)
	}
	if w.Time != 1.3 {
		t.Errorf("Time = %f, want in-range weight untouched", w.Time)
	}
	if w.Rating != models.WeightFloor {
		t.Errorf("Rating = %f, want negative weight clamped to floor", w.Rating)
	}
}

func TestConfidenceBoost(t *testing.T) {
	l := NewLearner(newMemStore())

	tests := []struct {
		name    string
		profile *models.LearnedWeightProfile
		want    float64
	}{
		{"nil profile", nil, 0},
		{"no learning data", &models.LearnedWeightProfile{AIAccuracy: 95, TotalRatings: 50}, 0},
		{
			"low accuracy small volume",
			&models.LearnedWeightProfile{HasLearningData: true, AIAccuracy: 65, TotalRatings: 5},
			0.025, // accuracy term 0, ratings term 5*0.005
		},
		{
			"high accuracy capped volume",
			&models.LearnedWeightProfile{HasLearningData: true, AIAccuracy: 85, TotalRatings: 10},
			0.075, // accuracy term 15*0.003=0.045, ratings term capped at 0.03
		},
		{
			"perfect accuracy",
			&models.LearnedWeightProfile{HasLearningData: true, AIAccuracy: 100, TotalRatings: 100},
			0.12, // 30*0.003 + cap 0.03
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ConfidenceBoost(tt.profile); !almostEqual(got, tt.want) {
				t.Errorf("ConfidenceBoost() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestApplyFeedbackSuccessReinforces(t *testing.T) {
	store := newMemStore()
	l := NewLearner(store)

	outcome, err := l.ApplyFeedback(context.Background(), &models.FeedbackRecord{
		UserID:         "u1",
		VenueID:        "v1",
		PredictedScore: 85,
		ActualRating:   5,
	})
	if err != nil {
		t.Fatalf("ApplyFeedback() error = %v", err)
	}

	p := store.weights["u1"]
	if !almostEqual(p.Weights.Cuisine, 1.05) || !almostEqual(p.Weights.Vibe, 1.05) {
		t.Errorf("weights = %+v, want cuisine and vibe raised to 1.05", p.Weights)
	}
	if almostEqual(p.Weights.Price, 1.05) {
		t.Error("price weight changed, want untouched")
	}
	if !p.HasLearningData {
		t.Error("HasLearningData = false after feedback")
	}

	// |85 - 100| = 15, within the success margin.
	if outcome.PredictionError != 15 {
		t.Errorf("PredictionError = %f, want 15", outcome.PredictionError)
	}
	if outcome.TotalRatings != 1 || outcome.AIAccuracy != 100 {
		t.Errorf("outcome = %+v, want 1 rating at 100%% accuracy", outcome)
	}
}

func TestApplyFeedbackFailureWeakens(t *testing.T) {
	store := newMemStore()
	l := NewLearner(store)

	outcome, err := l.ApplyFeedback(context.Background(), &models.FeedbackRecord{
		UserID:         "u1",
		VenueID:        "v1",
		PredictedScore: 90,
		ActualRating:   1,
	})
	if err != nil {
		t.Fatalf("ApplyFeedback() error = %v", err)
	}

	p := store.weights["u1"]
	if !almostEqual(p.Weights.Cuisine, 0.95) || !almostEqual(p.Weights.Vibe, 0.95) {
		t.Errorf("weights = %+v, want cuisine and vibe lowered to 0.95", p.Weights)
	}

	// |90 - 20| = 70, outside the success margin.
	if outcome.PredictionError != 70 {
		t.Errorf("PredictionError = %f, want 70", outcome.PredictionError)
	}
	if outcome.AIAccuracy != 0 {
		t.Errorf("AIAccuracy = %f, want 0", outcome.AIAccuracy)
	}
}

func TestApplyFeedbackNeutralLeavesWeights(t *testing.T) {
	store := newMemStore()
	l := NewLearner(store)

	_, err := l.ApplyFeedback(context.Background(), &models.FeedbackRecord{
		UserID:         "u1",
		VenueID:        "v1",
		PredictedScore: 70,
		ActualRating:   3,
	})
	if err != nil {
		t.Fatalf("ApplyFeedback() error = %v", err)
	}

	p := store.weights["u1"]
	if p.Weights != models.DefaultFeatureWeights() {
		t.Errorf("weights = %+v, want unchanged on neutral rating", p.Weights)
	}
	if p.TotalRatings != 1 {
		t.Errorf("TotalRatings = %d, want counted even when neutral", p.TotalRatings)
	}
}

func TestApplyFeedbackCapAndFloor(t *testing.T) {
	store := newMemStore()
	l := NewLearner(store)
	ctx := context.Background()

	// 20 successes: 1.05^20 would exceed 2.0 without the cap.
	for i := 0; i < 20; i++ {
		if _, err := l.ApplyFeedback(ctx, &models.FeedbackRecord{
			UserID: "winner", VenueID: "v1", PredictedScore: 95, ActualRating: 5,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if w := store.weights["winner"].Weights.Cuisine; w > models.WeightCap {
		t.Errorf("Cuisine = %f, want capped at %f", w, models.WeightCap)
	}

	// 20 failures: 0.95^20 would fall below 0.5 without the floor.
	for i := 0; i < 20; i++ {
		if _, err := l.ApplyFeedback(ctx, &models.FeedbackRecord{
			UserID: "loser", VenueID: "v1", PredictedScore: 95, ActualRating: 1,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if w := store.weights["loser"].Weights.Cuisine; w < models.WeightFloor {
		t.Errorf("Cuisine = %f, want floored at %f", w, models.WeightFloor)
	}
}

func TestApplyFeedbackValidation(t *testing.T) {
	l := NewLearner(newMemStore())
	ctx := context.Background()

	if _, err := l.ApplyFeedback(ctx, &models.FeedbackRecord{VenueID: "v1", ActualRating: 4}); err == nil {
		t.Error("ApplyFeedback() without user id: error = nil, want non-nil")
	}
	if _, err := l.ApplyFeedback(ctx, &models.FeedbackRecord{UserID: "u1", VenueID: "v1", ActualRating: 6}); err == nil {
		t.Error("ApplyFeedback() with rating 6: error = nil, want non-nil")
	}
}

func TestApplyFeedbackConcurrentSameUser(t *testing.T) {
	store := newMemStore()
	l := NewLearner(store)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = l.ApplyFeedback(ctx, &models.FeedbackRecord{
				UserID: "u1", VenueID: "v1", PredictedScore: 95, ActualRating: 5,
			})
		}()
	}
	wg.Wait()

	p := store.weights["u1"]
	if p.TotalRatings != n {
		t.Errorf("TotalRatings = %d, want %d (no lost updates in-process)", p.TotalRatings, n)
	}
}
