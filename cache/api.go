package cache

import "context"

// Cache is a sharded, in-memory key/value cache interface.
// All methods are safe for concurrent use by multiple goroutines.
//
// Every call routes to exactly one shard (hash mod shard count) and is
// delegated unmodified to that shard's eviction engine, so the cost of an
// operation is the engine's cost under its own lock.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v. The shard's engine decides what to evict.
	// A zero capacity makes Put a no-op.
	Put(k K, v V)

	// Get returns the value for k and a boolean flag indicating presence.
	// A hit is an access for the engine (recency, frequency, admission).
	Get(k K) (V, bool)

	// Delete removes k and reports whether it was resident.
	// Explicit deletes are not evictions and do not reach OnEvict.
	Delete(k K) bool

	// Len returns the total number of resident entries across all shards.
	Len() int

	// Purge clears every shard, including ghost and history state.
	Purge()

	// GetOrLoad returns the value for k, loading it via Options.Loader on miss.
	// Concurrent loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Stats returns a snapshot of the aggregated per-shard counters.
	Stats() Stats

	// ShardFor returns the index of the shard k routes to. The result is
	// stable for the lifetime of the cache.
	ShardFor(k K) int

	// Shards returns the number of shards.
	Shards() int

	// Close marks the cache closed: Put/Delete are ignored, Get misses and
	// GetOrLoad returns ErrClosed. It always returns nil.
	Close() error
}

// Stats is a point-in-time view of hit/miss/eviction counters.
// Counters are read shard by shard without a global lock, so a snapshot
// taken under load is approximate.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Shards    int
}

// HitRatio returns Hits/(Hits+Misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
