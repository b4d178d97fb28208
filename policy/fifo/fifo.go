// Package fifo implements insertion-order eviction. Neither Get nor an
// update of an existing key changes an entry's position.
package fifo

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/recency"
	"github.com/IvanBrykalov/evictkit/policy"
)

// Cache evicts the oldest inserted key first.
type Cache[K comparable, V any] struct {
	mu   sync.Mutex
	list *recency.List[K, V]
	set  policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns a FIFO engine holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...policy.Option[K, V]) *Cache[K, V] {
	return &Cache[K, V]{
		list: recency.New[K, V](policy.ClampCapacity(capacity)),
		set:  policy.Apply(opts...),
	}
}

// NewFactory returns a policy.Factory that builds FIFO engines.
func NewFactory[K comparable, V any]() policy.Factory[K, V] {
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, opts...)
	}
}

// Put inserts k→v, or replaces the value in place if k is resident.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.list.Cap() == 0 {
		return
	}
	if e, ok := c.list.Peek(k); ok {
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

// Get returns the value for k.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.list.Peek(k)
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
	_, ok := c.list.Remove(k)
	return ok
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Reset()
}

// Keys returns resident keys from newest to oldest.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Keys()
}
