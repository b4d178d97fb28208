// Package agelfu implements an aging LFU engine: classic LFU buckets plus a
// frequency ceiling and periodic decay, so keys that were hot long ago
// eventually become evictable when the workload shifts.
package agelfu

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/freq"
	"github.com/IvanBrykalov/evictkit/policy"
)

// DefaultMaxFrequency is the frequency ceiling used by NewFactory callers
// that pass a non-positive value.
const DefaultMaxFrequency = 16

// Cache is a thread-safe aging LFU engine.
//
// An insertion counter tracks churn. When a Put must evict and at least
// capacity insertions happened since the last decay, every frequency is
// halved (floor 1) before the victim is chosen.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	idx      *freq.Index[K, V]
	capacity int
	maxFreq  int
	inserts  int
	decays   uint64
	set      policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns an aging LFU engine. maxFrequency is clamped to at least 1.
func New[K comparable, V any](capacity, maxFrequency int, opts ...policy.Option[K, V]) *Cache[K, V] {
	capacity = policy.ClampCapacity(capacity)
	maxFrequency = max(maxFrequency, 1)
	return &Cache[K, V]{
		idx:      freq.New[K, V](capacity, maxFrequency),
		capacity: capacity,
		maxFreq:  maxFrequency,
		set:      policy.Apply(opts...),
	}
}

// NewFactory returns a policy.Factory for aging LFU engines.
// maxFrequency <= 0 selects DefaultMaxFrequency.
func NewFactory[K comparable, V any](maxFrequency int) policy.Factory[K, V] {
	if maxFrequency <= 0 {
		maxFrequency = DefaultMaxFrequency
	}
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, maxFrequency, opts...)
	}
}

// Put inserts k→v at frequency 1, or updates a resident key and counts the
// write as an access.
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
		if c.inserts >= c.capacity {
			c.decayLocked()
		}
		if ek, ev, ok := c.idx.EvictMin(); ok {
			c.set.Evicted(ek, ev)
		}
	}
	c.idx.Insert(k, v)
	c.inserts++
}

// Get returns the value for k and increments its frequency (up to the
// ceiling) on a hit.
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

// Purge drops every entry and resets the churn counter.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx.Reset()
	c.inserts = 0
}

// Decay forces a decay pass. On an empty engine it does nothing.
func (c *Cache[K, V]) Decay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decayLocked()
}

// Decays returns how many decay passes have run.
func (c *Cache[K, V]) Decays() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decays
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

// MaxFrequency returns the frequency ceiling.
func (c *Cache[K, V]) MaxFrequency() int { return c.maxFreq }

// MinFrequency returns the frequency of the current eviction bucket.
func (c *Cache[K, V]) MinFrequency() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.MinFreq()
}

func (c *Cache[K, V]) decayLocked() {
	if c.idx.Len() == 0 {
		return
	}
	c.idx.Decay()
	c.inserts = 0
	c.decays++
	c.set.Logger.V(1).Info("frequency decay",
		"entries", c.idx.Len(), "buckets", c.idx.Buckets(), "minFreq", c.idx.MinFreq())
}
