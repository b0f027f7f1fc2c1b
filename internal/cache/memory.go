// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
)

// entry is a cached venue list with expiration.
type entry struct {
	venues    []models.VenueRecord
	expiresAt time.Time
}

// Memory is a thread-safe in-process venue cache with TTL support.
// A background goroutine removes expired entries every cleanupInterval
// until Close is called.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

const cleanupInterval = 5 * time.Minute

var _ VenueCache = (*Memory)(nil)

// NewMemory creates an in-process venue cache with the given default TTL.
//
//	c := cache.NewMemory(15 * time.Minute)
//	defer c.Close()
func NewMemory(ttl time.Duration) *Memory {
	c := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves the venue list for a cell key.
// Expired entries are removed on access and counted as misses.
func (c *Memory) Get(key string) ([]models.VenueRecord, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.misses.Add(1)
		c.evictions.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.venues, true
}

// Set stores a venue list with the default TTL.
func (c *Memory) Set(key string, venues []models.VenueRecord) {
	c.SetWithTTL(key, venues, c.ttl)
}

// SetWithTTL stores a venue list with a custom TTL.
func (c *Memory) SetWithTTL(key string, venues []models.VenueRecord, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		venues:    venues,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a cell entry.
func (c *Memory) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Stats returns a snapshot of cache statistics.
func (c *Memory) Stats() Stats {
	c.mu.RLock()
	keys := int64(len(c.entries))
	c.mu.RUnlock()

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Keys:      keys,
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *Memory) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

// cleanupLoop removes expired entries periodically.
func (c *Memory) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *Memory) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
	}
}
