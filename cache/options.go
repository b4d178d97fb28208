package cache

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/IvanBrykalov/evictkit/internal/util"
	"github.com/IvanBrykalov/evictkit/policy"
	"github.com/IvanBrykalov/evictkit/policy/lru"
)

// Options configures the cache behavior. Zero values are safe;
// defaults are applied in New():
//   - Capacity <= 0 => storage disabled (Put is a no-op, Get misses)
//   - Shards <= 0   => runtime.NumCPU(), clamped to [1, 256]
//   - nil Policy    => LRU
//   - nil Hash      => xxhash-based default
//   - nil Metrics   => NoopMetrics
//   - zero Logger   => logr.Discard()
type Options[K comparable, V any] struct {
	// Capacity is the total entry limit. It is split evenly across shards,
	// rounding up, so a few shards may be slightly oversized.
	Capacity int

	// Shards defines the number of shards.
	Shards int

	// Policy builds one engine per shard with the per-shard capacity,
	// e.g. arc.NewFactory[K, V](arc.DefaultThreshold).
	Policy policy.Factory[K, V]

	// Hash maps a key to a shard: shard = Hash(k) mod Shards.
	// It must be deterministic for the lifetime of the cache.
	Hash func(K) uint64

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called when an engine drops a key under capacity pressure.
	// It runs under the engine lock; keep callbacks lightweight and never
	// call back into the cache.
	OnEvict func(k K, v V)

	Metrics Metrics

	// Logger receives debug (V(1)) events from the cache and its engines.
	Logger logr.Logger
}

// withDefaults returns a copy of o with every unset field filled in.
func (o Options[K, V]) withDefaults() Options[K, V] {
	o.Capacity = policy.ClampCapacity(o.Capacity)
	o.Shards = util.ResolveShards(o.Shards)
	if o.Policy == nil {
		o.Policy = lru.NewFactory[K, V]()
	}
	if o.Hash == nil {
		o.Hash = util.Hash[K]
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	return o
}
