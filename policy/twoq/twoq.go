// Package twoq implements the 2Q eviction policy.
//
// Resident queues:
//   - A1in (young queue): admits first-time keys in FIFO order
//   - Am   (main queue):  keys that were hit while in A1in or came back
//     from the ghost queue, in LRU order
//
// Ghost A1out holds keys only (no values) evicted from A1in, giving them a
// second chance: re-admission bypasses A1in and goes straight to Am.
package twoq

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/arena"
	"github.com/IvanBrykalov/evictkit/internal/recency"
	"github.com/IvanBrykalov/evictkit/policy"
)

// Default queue shares of the per-shard capacity for NewFactory.
const (
	DefaultInShare    = 0.25
	DefaultGhostShare = 0.5
)

// Cache is a thread-safe 2Q engine.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	in    *recency.List[K, V] // A1in: front = newest
	am    *recency.List[K, V] // Am:   front = MRU
	ghost *recency.Ghosts[K]  // A1out

	capacity int
	capIn    int
	set      policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns a 2Q engine holding at most capacity keys. Under capacity
// pressure A1in is trimmed back to capIn keys. A1out remembers capGhost
// evicted A1in keys.
// capIn is clamped to [1, capacity] and capGhost to >= 1.
func New[K comparable, V any](capacity, capIn, capGhost int, opts ...policy.Option[K, V]) *Cache[K, V] {
	capacity = policy.ClampCapacity(capacity)
	capIn = max(1, min(capIn, capacity))
	capGhost = max(1, capGhost)
	return &Cache[K, V]{
		in:       recency.New[K, V](capIn),
		am:       recency.New[K, V](capacity),
		ghost:    recency.NewGhosts[K](capGhost),
		capacity: capacity,
		capIn:    capIn,
		set:      policy.Apply(opts...),
	}
}

// NewFactory sizes A1in and A1out as shares of each shard's capacity.
// Non-positive shares select DefaultInShare and DefaultGhostShare.
func NewFactory[K comparable, V any](inShare, ghostShare float64) policy.Factory[K, V] {
	if inShare <= 0 {
		inShare = DefaultInShare
	}
	if ghostShare <= 0 {
		ghostShare = DefaultGhostShare
	}
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, int(float64(capacity)*inShare), int(float64(capacity)*ghostShare), opts...)
	}
}

// Put inserts or updates k→v. Updates count as a use, like Get.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity == 0 {
		return
	}
	if e, ok := c.useLocked(k); ok {
		e.Value = v
		return
	}

	if c.ghost.Remove(k) {
		// Second chance: skip A1in.
		c.reclaimLocked()
		c.am.PushFront(k, v)
		return
	}
	c.reclaimLocked()
	c.in.PushFront(k, v)
}

// Get returns the value for k. A hit in A1in promotes the key to Am.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.useLocked(k); ok {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (c *Cache[K, V]) Delete(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.in.Remove(k); ok {
		return true
	}
	_, ok := c.am.Remove(k)
	return ok
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in.Len() + c.am.Len()
}

// Purge drops all entries and ghosts.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.in.Reset()
	c.am.Reset()
	c.ghost.Reset()
}

// InA1in reports whether k sits in the young queue.
func (c *Cache[K, V]) InA1in(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in.Contains(k)
}

// InAm reports whether k sits in the main queue.
func (c *Cache[K, V]) InAm(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.am.Contains(k)
}

// IsGhost reports whether k is remembered in A1out.
func (c *Cache[K, V]) IsGhost(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ghost.Contains(k)
}

// useLocked records a use of a resident key and returns its entry,
// moving A1in hits to the front of Am.
func (c *Cache[K, V]) useLocked(k K) (*arena.Entry[K, V], bool) {
	if e, ok := c.am.Touch(k); ok {
		return e, true
	}
	v, ok := c.in.Remove(k)
	if !ok {
		return nil, false
	}
	c.am.PushFront(k, v)
	e, _ := c.am.Peek(k)
	return e, true
}

// reclaimLocked makes room for one more resident key once the cache is
// full. A1in gives up its oldest key while it holds at least its share or Am
// is empty; otherwise Am drops its LRU key. A1in may exceed its share while
// free slots remain.
func (c *Cache[K, V]) reclaimLocked() {
	for c.in.Len()+c.am.Len() >= c.capacity {
		if c.in.Len() > 0 && (c.in.Full() || c.am.Len() == 0) {
			c.evictInLocked()
			continue
		}
		k, v, ok := c.am.PopBack()
		if !ok {
			return
		}
		c.set.Evicted(k, v)
	}
}

// evictInLocked drops the oldest A1in key and remembers it in A1out.
func (c *Cache[K, V]) evictInLocked() {
	k, v, ok := c.in.PopBack()
	if !ok {
		return
	}
	c.ghost.Add(k)
	c.set.Evicted(k, v)
}
