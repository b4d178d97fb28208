// Package cache provides a generic, sharded in-memory cache whose shards
// delegate to pluggable eviction engines (LRU by default), with optional
// singleflight loading, eviction callbacks and lightweight metrics hooks.
//
// Design
//
//   - Concurrency: the key space is split into shards. Each shard is one
//     engine instance, and each engine guards itself with a single mutex;
//     the cache adds no lock of its own. Operations on different shards
//     never contend. The default shard count is runtime.NumCPU().
//
//   - Routing: shard = Hash(k) mod Shards. Hash defaults to xxhash and can
//     be replaced through Options.Hash. ShardFor exposes the routing.
//
//   - Capacity: Options.Capacity is divided across shards rounding up, so
//     the total may exceed Capacity by less than one entry per shard.
//     Eviction is shard-local: a hot shard evicts while a cold one has
//     room. This skew is accepted, not mitigated.
//
//   - Engines: any policy.Factory works. The policy subpackages provide
//     lru, fifo, lruk (LRU-K admission), lfu, agelfu (LFU with decay) and
//     arc (adaptive recency/frequency split).
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     golang.org/x/sync/singleflight. If Loader is nil, GetOrLoad returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict signals; Stats
//     aggregates the same counters per shard. See metrics/prom for a
//     Prometheus adapter.
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Delete("a")
//
// With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        // e.g. fetch from DB
//	        return "v:" + k, nil
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Using an alternative engine (ARC)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Shards:   16,
//	    Policy:   arc.NewFactory[string, string](arc.DefaultThreshold),
//	})
//
// Exporting metrics
//
//	m := prom.New(nil, "evictkit", "demo", nil) // implements Metrics
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//	_ = m.TrackSize(c.Len)
package cache
