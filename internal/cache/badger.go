// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package cache

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/models"
)

// cellKeyPrefix namespaces venue-cell entries inside the Badger keyspace.
const cellKeyPrefix = "venues:"

// Badger is a venue cache backed by BadgerDB. Entries survive process
// restarts and the store can be shared by multiple server instances on the
// same host. Expiration uses Badger's native per-entry TTL.
type Badger struct {
	db  *badger.DB
	ttl time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

var _ VenueCache = (*Badger)(nil)

// NewBadger opens (or creates) a Badger-backed venue cache at path.
func NewBadger(path string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // logging goes through zerolog, not badger's logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache at %s: %w", path, err)
	}

	return &Badger{db: db, ttl: ttl}, nil
}

// Get retrieves the venue list for a cell key.
func (c *Badger) Get(key string) ([]models.VenueRecord, bool) {
	var venues []models.VenueRecord

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cellKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &venues)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("badger cache read failed")
		}
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return venues, true
}

// Set stores a venue list with the default TTL.
func (c *Badger) Set(key string, venues []models.VenueRecord) {
	c.SetWithTTL(key, venues, c.ttl)
}

// SetWithTTL stores a venue list with a custom TTL.
// Write failures are logged; the cache is best-effort.
func (c *Badger) SetWithTTL(key string, venues []models.VenueRecord, ttl time.Duration) {
	data, err := json.Marshal(venues)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("badger cache marshal failed")
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cellKeyPrefix+key), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("badger cache write failed")
	}
}

// Delete removes a cell entry.
func (c *Badger) Delete(key string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(cellKeyPrefix + key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("badger cache delete failed")
	}
}

// Stats returns a snapshot of cache statistics. Badger does not expose a
// cheap key count, so Keys is left at zero.
func (c *Badger) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Close closes the underlying BadgerDB.
func (c *Badger) Close() error {
	return c.db.Close()
}
