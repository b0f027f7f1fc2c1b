// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JennePenne123/vibematch/internal/cache"
	"github.com/JennePenne123/vibematch/internal/config"
	"github.com/JennePenne123/vibematch/internal/models"
)

// stubSearcher returns canned venues or an error.
type stubSearcher struct {
	name   string
	venues []models.VenueRecord
	err    error
	calls  int
}

func (s *stubSearcher) Search(ctx context.Context, lat, lon float64, radiusM int, hints []string) ([]models.VenueRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.venues, nil
}

func (s *stubSearcher) Name() string { return s.name }

// stubStore is an in-memory VenueStore.
type stubStore struct {
	upserts   []models.VenueRecord
	byRadius  []models.VenueRecord
	active    []models.VenueRecord
	upsertErr error
}

func (s *stubStore) UpsertVenue(ctx context.Context, v *models.VenueRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, *v)
	return nil
}

func (s *stubStore) QueryByRadius(ctx context.Context, lat, lon, radiusKm float64) ([]models.VenueRecord, error) {
	return s.byRadius, nil
}

func (s *stubStore) GetActiveVenues(ctx context.Context, limit int) ([]models.VenueRecord, error) {
	return s.active, nil
}

func testConfig(strategy string) *config.AggregatorConfig {
	return &config.AggregatorConfig{
		Strategy:        strategy,
		MinResults:      3,
		DefaultRadiusM:  5000,
		DedupDistanceM:  100,
		DedupSimilarity: 0.6,
		RequestBudget:   5 * time.Second,
	}
}

func fsqVenue(id, name string, lat, lon float64) models.VenueRecord {
	return models.VenueRecord{
		ID: "fsq_" + id, Name: name, Latitude: lat, Longitude: lon,
		Source: "foursquare", ProviderIDs: map[string]string{"foursquare": id},
	}
}

func gapVenue(id, name string, lat, lon float64) models.VenueRecord {
	return models.VenueRecord{
		ID: "gap_" + id, Name: name, Latitude: lat, Longitude: lon,
		Source: "geoapify", ProviderIDs: map[string]string{"geoapify": id},
	}
}

func newTestAggregator(fsq, gap *stubSearcher, store *stubStore, cfg *config.AggregatorConfig) (*Aggregator, cache.VenueCache) {
	c := cache.NewMemory(time.Minute)
	return New(fsq, gap, c, store, cfg), c
}

func TestAggregateParallelMergesBothProviders(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "Trattoria Luna", 40.7191, -73.9973),
	}}
	gap := &stubSearcher{name: "geoapify", venues: []models.VenueRecord{
		gapVenue("2", "Osteria Roma", 40.7218, -74.0027),
	}}
	store := &stubStore{}
	agg, _ := newTestAggregator(fsq, gap, store, testConfig(config.StrategyParallel))

	got := agg.Aggregate(context.Background(), 40.72, -74.0, nil)
	if len(got) != 2 {
		t.Fatalf("Aggregate() returned %d venues, want 2", len(got))
	}
	if fsq.calls != 1 || gap.calls != 1 {
		t.Errorf("provider calls = %d/%d, want 1/1", fsq.calls, gap.calls)
	}
	if len(store.upserts) != 2 {
		t.Errorf("write-through upserts = %d, want 2", len(store.upserts))
	}
}

func TestAggregateCacheHitSkipsProviders(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "Trattoria Luna", 40.7191, -73.9973),
	}}
	gap := &stubSearcher{name: "geoapify"}
	agg, _ := newTestAggregator(fsq, gap, &stubStore{}, testConfig(config.StrategyParallel))

	ctx := context.Background()
	first := agg.Aggregate(ctx, 40.72, -74.0, nil)
	second := agg.Aggregate(ctx, 40.72, -74.0, nil)

	if fsq.calls != 1 {
		t.Errorf("foursquare calls = %d, want 1 (second request served from cache)", fsq.calls)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %d vs %d venues", len(first), len(second))
	}
}

func TestAggregateProviderFailureNotFatal(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", err: errors.New("upstream down")}
	gap := &stubSearcher{name: "geoapify", venues: []models.VenueRecord{
		gapVenue("2", "Osteria Roma", 40.7218, -74.0027),
	}}
	agg, _ := newTestAggregator(fsq, gap, &stubStore{}, testConfig(config.StrategyParallel))

	got := agg.Aggregate(context.Background(), 40.72, -74.0, nil)
	if len(got) != 1 || got[0].ID != "gap_2" {
		t.Errorf("Aggregate() = %v, want the surviving provider's venue", got)
	}
}

func TestAggregateFoursquareFirstSkipsSecondary(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "A", 40.71, -74.0),
		fsqVenue("2", "B", 40.72, -74.0),
		fsqVenue("3", "C", 40.73, -74.0),
	}}
	gap := &stubSearcher{name: "geoapify"}
	agg, _ := newTestAggregator(fsq, gap, &stubStore{}, testConfig(config.StrategyFoursquareFirst))

	got := agg.Aggregate(context.Background(), 40.72, -74.0, nil)
	if len(got) != 3 {
		t.Fatalf("Aggregate() returned %d venues, want 3", len(got))
	}
	if gap.calls != 0 {
		t.Errorf("secondary provider called %d times, want 0 (primary met the minimum)", gap.calls)
	}
}

func TestAggregateFoursquareFirstConsultsSecondaryBelowMinimum(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "A", 40.71, -74.0),
	}}
	gap := &stubSearcher{name: "geoapify", venues: []models.VenueRecord{
		gapVenue("2", "B", 40.72, -74.0),
	}}
	agg, _ := newTestAggregator(fsq, gap, &stubStore{}, testConfig(config.StrategyFoursquareFirst))

	got := agg.Aggregate(context.Background(), 40.72, -74.0, nil)
	if len(got) != 2 {
		t.Errorf("Aggregate() returned %d venues, want primary+secondary", len(got))
	}
	if gap.calls != 1 {
		t.Errorf("secondary calls = %d, want 1", gap.calls)
	}
}

func TestAggregateFallbackChain(t *testing.T) {
	failing := func(name string) *stubSearcher {
		return &stubSearcher{name: name, err: errors.New("down")}
	}
	prefs := &models.PreferenceProfile{
		UserID:            "u1",
		PreferredCuisines: []string{"Italian"},
		MaxDistanceKm:     5,
	}

	t.Run("radius rows filtered by cuisine", func(t *testing.T) {
		store := &stubStore{byRadius: []models.VenueRecord{
			{ID: "c1", Name: "Trattoria", CuisineType: "Italian"},
			{ID: "c2", Name: "Noodle Bar", CuisineType: "Thai"},
		}}
		agg, _ := newTestAggregator(failing("foursquare"), failing("geoapify"), store, testConfig(config.StrategyParallel))

		got := agg.Aggregate(context.Background(), 40.72, -74.0, prefs)
		if len(got) != 1 || got[0].ID != "c1" {
			t.Errorf("Aggregate() = %v, want the Italian catalog venue only", got)
		}
	})

	t.Run("unfiltered sample when radius empty", func(t *testing.T) {
		store := &stubStore{active: []models.VenueRecord{{ID: "s1", Name: "Sample"}}}
		agg, _ := newTestAggregator(failing("foursquare"), failing("geoapify"), store, testConfig(config.StrategyParallel))

		got := agg.Aggregate(context.Background(), 40.72, -74.0, prefs)
		if len(got) != 1 || got[0].ID != "s1" {
			t.Errorf("Aggregate() = %v, want the active sample", got)
		}
	})

	t.Run("empty when catalog empty", func(t *testing.T) {
		agg, _ := newTestAggregator(failing("foursquare"), failing("geoapify"), &stubStore{}, testConfig(config.StrategyParallel))

		got := agg.Aggregate(context.Background(), 40.72, -74.0, prefs)
		if len(got) != 0 {
			t.Errorf("Aggregate() = %v, want empty", got)
		}
	})
}

// stampingStore mirrors the persistent store, which stamps timestamps on
// the record passed to UpsertVenue.
type stampingStore struct {
	stubStore
}

func (s *stampingStore) UpsertVenue(ctx context.Context, v *models.VenueRecord) error {
	v.UpdatedAt = time.Now()
	return s.stubStore.UpsertVenue(ctx, v)
}

// captureCache snapshots the venue list at the moment it is handed to Set.
type captureCache struct {
	cache.VenueCache
	published []models.VenueRecord
}

func (c *captureCache) Set(key string, venues []models.VenueRecord) {
	c.published = append([]models.VenueRecord(nil), venues...)
	c.VenueCache.Set(key, venues)
}

func TestAggregateWriteThroughCompletesBeforeCachePublish(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "Trattoria Luna", 40.7191, -73.9973),
	}}
	store := &stampingStore{}
	cc := &captureCache{VenueCache: cache.NewMemory(time.Minute)}
	agg := New(fsq, &stubSearcher{name: "geoapify"}, cc, store, testConfig(config.StrategyParallel))

	agg.Aggregate(context.Background(), 40.72, -74.0, nil)

	if len(cc.published) != 1 {
		t.Fatalf("cache received %d venues, want 1", len(cc.published))
	}
	if cc.published[0].UpdatedAt.IsZero() {
		t.Errorf("cached record was published before the write-through stamped it")
	}
}

func TestAggregateWriteThroughFailureLoggedNotFatal(t *testing.T) {
	fsq := &stubSearcher{name: "foursquare", venues: []models.VenueRecord{
		fsqVenue("1", "Trattoria Luna", 40.7191, -73.9973),
	}}
	store := &stubStore{upsertErr: errors.New("disk full")}
	agg, _ := newTestAggregator(fsq, &stubSearcher{name: "geoapify"}, store, testConfig(config.StrategyParallel))

	got := agg.Aggregate(context.Background(), 40.72, -74.0, nil)
	if len(got) != 1 {
		t.Errorf("Aggregate() returned %d venues, want 1 despite write-through failure", len(got))
	}
}
