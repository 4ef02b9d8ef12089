package wenmoon

import (
	"sync"
	"time"
)

// EvictionInterval is how often the whole market cache is dropped. The sweep
// is wholesale, not per-entry: one coarse window keeps every snapshot at most
// one interval stale.
const EvictionInterval = 180 * time.Second

// MarketCache holds the most recent snapshot per coin between refreshes.
// Mutations come from the single owning context; the mutex only guards the
// periodic sweep racing a read, where the acceptable outcome is a spurious
// miss, never a stale hit past the eviction window.
type MarketCache struct {
	mu        sync.Mutex
	snapshots map[string]Snapshot
}

// NewMarketCache returns an empty cache.
func NewMarketCache() *MarketCache {
	return &MarketCache{snapshots: make(map[string]Snapshot)}
}

// Get returns the cached snapshots for the requested ids and the ids that had
// no entry. A fetch may be skipped only when misses is empty; a partial hit
// still means a full refetch for all requested ids.
func (c *MarketCache) Get(coinIDs []string) (hits map[string]Snapshot, misses []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = make(map[string]Snapshot, len(coinIDs))
	for _, id := range coinIDs {
		snap, ok := c.snapshots[id]
		if !ok {
			misses = append(misses, id)
			continue
		}
		hits[id] = snap
	}
	return hits, misses
}

// Lookup returns the snapshot for a single coin id.
func (c *MarketCache) Lookup(coinID string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.snapshots[coinID]
	return snap, ok
}

// Put overwrites the snapshot for a coin.
func (c *MarketCache) Put(coinID string, snap Snapshot) {
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now().UTC()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[coinID] = snap
}

// Delete drops the snapshot for one coin. Called when a coin record is
// removed for good, so a re-add within the eviction window cannot be served
// the pre-delete snapshot.
func (c *MarketCache) Delete(coinID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, coinID)
}

// Clear drops every entry. Called by the periodic eviction job.
func (c *MarketCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = make(map[string]Snapshot)
}

// Len returns the number of cached snapshots.
func (c *MarketCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snapshots)
}
