// Package cache keeps per-user computed views (such as summaries) in a
// ristretto cache and drops them whenever the user's ledger changes.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores values of type V scoped to a user.
//
// Every user has a generation counter that is part of the stored key.
// InvalidateUser bumps the counter, so a value computed before the bump can
// never be served afterwards even if its Set lands late.
type Cache[V any] struct {
	store *ristretto.Cache[string, V]
	ttl   time.Duration

	mu          sync.Mutex
	generations map[string]uint64
	keys        map[string]map[string]struct{}
}

// New creates a cache whose entries expire after ttl.
func New[V any](ttl time.Duration) (*Cache[V], error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters:        10000, // number of keys to track frequency of
		MaxCost:            1000,  // one unit per entry
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache[V]{
		store:       store,
		ttl:         ttl,
		generations: make(map[string]uint64),
		keys:        make(map[string]map[string]struct{}),
	}, nil
}

// Get looks up key for userID. The returned generation must be handed back
// to Set when the caller computes and stores a fresh value after a miss.
func (c *Cache[V]) Get(userID, key string) (V, uint64, bool) {
	c.mu.Lock()
	gen := c.generations[userID]
	c.mu.Unlock()

	value, ok := c.store.Get(storeKey(userID, gen, key))
	return value, gen, ok
}

// Set stores value under key for userID, unless the user was invalidated
// since gen was read.
func (c *Cache[V]) Set(userID string, gen uint64, key string, value V) {
	c.mu.Lock()
	if c.generations[userID] != gen {
		c.mu.Unlock()
		return
	}
	full := storeKey(userID, gen, key)
	if c.keys[userID] == nil {
		c.keys[userID] = make(map[string]struct{})
	}
	c.keys[userID][full] = struct{}{}
	c.mu.Unlock()

	c.store.SetWithTTL(full, value, 1, c.ttl)
	c.store.Wait()
}

// InvalidateUser drops every value cached for userID.
func (c *Cache[V]) InvalidateUser(userID string) {
	c.mu.Lock()
	c.generations[userID]++
	keys := c.keys[userID]
	delete(c.keys, userID)
	c.mu.Unlock()

	for key := range keys {
		c.store.Del(key)
	}
}

// Close stops the cache's background goroutines.
func (c *Cache[V]) Close() {
	c.store.Close()
}

func storeKey(userID string, gen uint64, key string) string {
	return fmt.Sprintf("%s:%d:%s", userID, gen, key)
}
