// Package lru implements the LRU eviction engine.
package lru

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/recency"
	"github.com/IvanBrykalov/evictkit/policy"
)

// Cache is a classic "move-to-front" Least-Recently-Used engine.
// One mutex guards the recency list and key index; every public method is a
// single critical section.
type Cache[K comparable, V any] struct {
	mu   sync.Mutex
	list *recency.List[K, V]
	set  policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns an LRU engine holding at most capacity entries.
// A capacity <= 0 disables storage.
func New[K comparable, V any](capacity int, opts ...policy.Option[K, V]) *Cache[K, V] {
	return &Cache[K, V]{
		list: recency.New[K, V](policy.ClampCapacity(capacity)),
		set:  policy.Apply(opts...),
	}
}

// NewFactory returns a policy.Factory that builds LRU engines.
func NewFactory[K comparable, V any]() policy.Factory[K, V] {
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, opts...)
	}
}

// Put inserts or updates k→v. Updates count as a fresh access.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(k, v)
}

// Get returns the value for k and promotes it to MRU on a hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.list.Touch(k)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Update atomically replaces the value of k with fn(old, found) and
// promotes k to MRU, inserting it if absent. It returns the stored value.
// With zero capacity nothing is stored and fn's result is returned as is.
func (c *Cache[K, V]) Update(k K, fn func(old V, found bool) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	var old V
	e, found := c.list.Touch(k)
	if found {
		old = e.Value
	}
	v := fn(old, found)
	if found {
		e.Value = v
		return v
	}
	c.putLocked(k, v)
	return v
}

// Replace updates the value of a resident key and promotes it.
// Absent keys are left alone; it reports whether k was resident.
func (c *Cache[K, V]) Replace(k K, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.list.Touch(k)
	if ok {
		e.Value = v
	}
	return ok
}

// Peek returns the value for k without touching recency.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.list.Peek(k)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Contains reports residency without touching recency.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Contains(k)
}

// Delete removes k; it reports whether k was resident.
func (c *Cache[K, V]) Delete(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.list.Remove(k)
	return ok
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Cap()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Reset()
}

// Keys returns resident keys from MRU to LRU.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Keys()
}

func (c *Cache[K, V]) putLocked(k K, v V) {
	if c.list.Cap() == 0 {
		return
	}
	if e, ok := c.list.Touch(k); ok {
		e.Value = v
		return
	}
	if c.list.Full() {
		if ek, ev, ok := c.list.PopBack(); ok {
			c.set.Evicted(ek, ev)
		}
	}
	c.list.PushFront(k, v)
}
