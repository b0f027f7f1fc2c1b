// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
)

func testVenues(n int) []models.VenueRecord {
	venues := make([]models.VenueRecord, n)
	for i := range venues {
		venues[i] = models.VenueRecord{
			ID:   fmt.Sprintf("venue-%d", i),
			Name: fmt.Sprintf("Venue %d", i),
		}
	}
	return venues
}

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()

	if _, ok := c.Get("cell:40.71:-74.01"); ok {
		t.Error("Get on empty cache should miss")
	}

	want := testVenues(3)
	c.Set("cell:40.71:-74.01", want)

	got, ok := c.Get("cell:40.71:-74.01")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if len(got) != 3 || got[0].ID != "venue-0" {
		t.Errorf("Get returned %v, want %v", got, want)
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()

	c.SetWithTTL("k", testVenues(1), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()

	c.Set("k", testVenues(1))
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryStats(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()

	c.Set("a", testVenues(1))
	c.Get("a")    // hit
	c.Get("b")    // miss
	c.Get("a")    // hit

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits, 1 miss", stats)
	}
	if rate := stats.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("HitRate() = %f, want ~66.7", rate)
	}
	if stats.Keys != 1 {
		t.Errorf("Keys = %d, want 1", stats.Keys)
	}
}

func TestStatsHitRateEmpty(t *testing.T) {
	if rate := (Stats{}).HitRate(); rate != 0 {
		t.Errorf("HitRate() on empty stats = %f, want 0", rate)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("cell-%d", n%3)
			c.Set(key, testVenues(2))
			c.Get(key)
			c.Delete(key)
		}(i)
	}
	wg.Wait()
}

func TestBadgerRoundTrip(t *testing.T) {
	c, err := NewBadger(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	want := testVenues(2)
	want[0].Tags = []string{"romantic", "cozy"}
	want[0].Photos = []string{"https://example.com/p1.jpg"}
	c.Set("cell:1.00:2.00", want)

	got, ok := c.Get("cell:1.00:2.00")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if len(got) != 2 || got[0].ID != want[0].ID {
		t.Errorf("round trip mismatch: got %v", got)
	}
	if len(got[0].Tags) != 2 || got[0].Tags[0] != "romantic" {
		t.Errorf("tags not preserved: %v", got[0].Tags)
	}
}

func TestBadgerMiss(t *testing.T) {
	c, err := NewBadger(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	if _, ok := c.Get("absent"); ok {
		t.Error("Get on empty badger cache should miss")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestBadgerDelete(t *testing.T) {
	c, err := NewBadger(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	c.Set("k", testVenues(1))
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Get after Delete should miss")
	}
}
