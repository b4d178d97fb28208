package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/IvanBrykalov/evictkit/internal/util"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("cache: no Loader provided")
	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)

// cache is a sharded in-memory KV store with a pluggable eviction engine.
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	loader func(context.Context, K) (V, error)

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group
}

// New constructs a cache with the provided Options (see Options for defaults).
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	opt = opt.withDefaults()

	perShard := util.PerShard(opt.Capacity, opt.Shards)
	cs := make([]*shard[K, V], opt.Shards)
	for i := range cs {
		cs[i] = newShard(i, perShard, opt)
	}
	opt.Logger.V(1).Info("cache created",
		"capacity", opt.Capacity, "shards", opt.Shards, "perShard", perShard)

	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return &cache[K, V]{
		shards: cs,
		hash:   opt.Hash,
		loader: opt.Loader,
	}
}

func (c *cache[K, V]) Put(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.shardOf(k).Put(k, v)
}

func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.shardOf(k).Get(k)
}

func (c *cache[K, V]) Delete(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.shardOf(k).Delete(k)
}

func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *cache[K, V]) Purge() {
	for _, s := range c.shards {
		s.Purge()
	}
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key. A waiter whose ctx ends
// stops waiting with ctx.Err(); the load itself runs on and fills the cache
// for the others. Loader failures are wrapped and match errors.Is.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	var zero V
	if c.closed.Load() {
		return zero, ErrClosed
	}
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.loader == nil {
		return zero, ErrNoLoader
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(flightKey(k), func() (any, error) {
		// double-check after flight join
		if v, ok := c.shardOf(k).store.Get(k); ok {
			return v, nil
		}
		v, err := c.loader(loadCtx, k)
		if err != nil {
			return nil, fmt.Errorf("cache: load %v: %w", k, err)
		}
		c.Put(k, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(V)
		return v, nil
	}
}

func (c *cache[K, V]) Stats() Stats {
	st := Stats{Shards: len(c.shards)}
	for _, s := range c.shards {
		st.Hits += s.hits.Load()
		st.Misses += s.misses.Load()
		st.Evictions += s.evicts.Load()
		st.Len += s.Len()
	}
	return st
}

func (c *cache[K, V]) ShardFor(k K) int {
	return util.ShardIndex(c.hash(k), len(c.shards))
}

func (c *cache[K, V]) Shards() int { return len(c.shards) }

// Close marks the cache as closed. Future operations are ignored.
func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *cache[K, V]) shardOf(k K) *shard[K, V] {
	return c.shards[c.ShardFor(k)]
}

// flightKey names a key inside the singleflight group.
func flightKey[K comparable](k K) string {
	if s, ok := any(k).(string); ok {
		return s
	}
	return fmt.Sprintf("%T:%#v", k, k)
}
