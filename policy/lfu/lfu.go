// Package lfu implements the classic Least-Frequently-Used engine.
//
// Entries are grouped by access count; the eviction victim is the least
// recently touched entry of the lowest-count bucket. Frequency is the
// primary order, recency breaks ties.
package lfu

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/freq"
	"github.com/IvanBrykalov/evictkit/policy"
)

// Cache is a thread-safe LFU engine with O(1) Put/Get.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	idx      *freq.Index[K, V]
	capacity int
	set      policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns an LFU engine holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...policy.Option[K, V]) *Cache[K, V] {
	capacity = policy.ClampCapacity(capacity)
	return &Cache[K, V]{
		idx:      freq.New[K, V](capacity, 0),
		capacity: capacity,
		set:      policy.Apply(opts...),
	}
}

// NewFactory returns a policy.Factory that builds LFU engines.
func NewFactory[K comparable, V any]() policy.Factory[K, V] {
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, opts...)
	}
}

// Put inserts k→v at frequency 1, or updates the value of a resident key
// and counts the write as an access.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity == 0 {
		return
	}
	if e, ok := c.idx.Touch(k); ok {
		e.Value = v
		return
	}
	if c.idx.Len() >= c.capacity {
		if ek, ev, ok := c.idx.EvictMin(); ok {
			c.set.Evicted(ek, ev)
		}
	}
	c.idx.Insert(k, v)
}

// Get returns the value for k and increments its frequency on a hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.idx.Touch(k)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Delete removes k; it reports whether k was resident.
func (c *Cache[K, V]) Delete(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.idx.Remove(k)
	return ok
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.Len()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx.Reset()
}

// Frequency returns the recorded access count of k.
func (c *Cache[K, V]) Frequency(k K) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.idx.Peek(k)
	if !ok {
		return 0, false
	}
	return e.Freq, true
}

// MinFrequency returns the frequency of the current eviction bucket.
func (c *Cache[K, V]) MinFrequency() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.MinFreq()
}
