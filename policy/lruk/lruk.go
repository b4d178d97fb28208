// Package lruk implements LRU-K: an LRU main cache guarded by an admission
// gate. A key reaches the main cache only after K observed touches, which
// keeps one-off scans from flushing hot entries.
package lruk

import (
	"github.com/IvanBrykalov/evictkit/policy"
	"github.com/IvanBrykalov/evictkit/policy/lru"
)

// Cache composes two LRU engines: the main cache and a bounded history of
// access counts for keys not yet admitted.
//
// The two engines have separate locks and are never locked together, so a
// Put and a concurrent Get of the same key may interleave between history
// and promotion. That window is benign: at worst a touch is not counted.
type Cache[K comparable, V any] struct {
	main     *lru.Cache[K, V]
	history  *lru.Cache[K, int]
	k        int
	capacity int
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns an LRU-K engine. historyCapacity bounds the number of
// untracked keys whose counts are remembered; k is the admission threshold.
// Both are clamped to at least 1.
func New[K comparable, V any](capacity, historyCapacity, k int, opts ...policy.Option[K, V]) *Cache[K, V] {
	capacity = policy.ClampCapacity(capacity)
	return &Cache[K, V]{
		main:     lru.New[K, V](capacity, opts...),
		history:  lru.New[K, int](max(historyCapacity, 1)),
		k:        max(k, 1),
		capacity: capacity,
	}
}

// NewFactory returns a policy.Factory for LRU-K engines.
// historyCapacity is per engine, so size it per shard.
func NewFactory[K comparable, V any](historyCapacity, k int) policy.Factory[K, V] {
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, historyCapacity, k, opts...)
	}
}

// Put refreshes a resident key; otherwise it counts the touch and admits
// k→v into the main cache once the count reaches K.
func (c *Cache[K, V]) Put(k K, v V) {
	if c.capacity == 0 {
		return
	}
	if c.main.Replace(k, v) {
		return
	}
	if c.touch(k) >= c.k {
		c.history.Delete(k)
		c.main.Put(k, v)
	}
}

// Get counts the touch first, whether or not k is resident, then reads the
// main cache. Keys that only live in history miss.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	if c.capacity == 0 {
		var zero V
		return zero, false
	}
	c.touch(k)
	return c.main.Get(k)
}

// Delete removes k from the main cache and forgets its history.
func (c *Cache[K, V]) Delete(k K) bool {
	c.history.Delete(k)
	return c.main.Delete(k)
}

// Len returns the number of keys admitted to the main cache.
func (c *Cache[K, V]) Len() int { return c.main.Len() }

// Purge clears the main cache and the history.
func (c *Cache[K, V]) Purge() {
	c.main.Purge()
	c.history.Purge()
}

// Resident reports whether k has been admitted to the main cache.
func (c *Cache[K, V]) Resident(k K) bool { return c.main.Contains(k) }

// HistoryCount returns the touch count recorded for a not-yet-admitted key.
func (c *Cache[K, V]) HistoryCount(k K) (int, bool) { return c.history.Peek(k) }

func (c *Cache[K, V]) touch(k K) int {
	return c.history.Update(k, func(n int, _ bool) int { return n + 1 })
}
