// Package arc implements an adaptive replacement engine with two cooperating
// partitions: a recency partition (LRU) and a frequency partition (LFU).
// Each partition remembers the keys it evicted in a ghost set, and a ghost
// hit moves one slot of capacity toward the partition that lost the key.
package arc

import (
	"sync"

	"github.com/IvanBrykalov/evictkit/internal/freq"
	"github.com/IvanBrykalov/evictkit/internal/recency"
	"github.com/IvanBrykalov/evictkit/policy"
)

// DefaultThreshold is the number of recency-partition accesses after which
// an entry is promoted into the frequency partition.
const DefaultThreshold = 2

const (
	inRecent uint8 = 1 << iota
	inFrequent
)

// Cache is a thread-safe ARC engine. One mutex guards both partitions,
// both ghost sets and the residency map.
//
// The partitions start at capacity/2 each (recency takes the odd slot) and
// always sum to capacity. Neither is shrunk below 1 by adaptation.
// A key may be resident in both partitions at once, as two separate entries.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	recent      *recency.List[K, V]
	recentGhost *recency.Ghosts[K]

	frequent      *freq.Index[K, V]
	frequentGhost *recency.Ghosts[K]
	frequentCap   int

	// where records which partitions hold a key; len(where) is Len().
	where map[K]uint8

	capacity  int
	threshold int
	set       policy.Settings[K, V]
}

var _ policy.Store[string, int] = (*Cache[string, int])(nil)

// New returns an ARC engine. threshold < 1 selects DefaultThreshold.
func New[K comparable, V any](capacity, threshold int, opts ...policy.Option[K, V]) *Cache[K, V] {
	capacity = policy.ClampCapacity(capacity)
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	fc := capacity / 2
	return &Cache[K, V]{
		recent:        recency.New[K, V](capacity - fc),
		recentGhost:   recency.NewGhosts[K](capacity),
		frequent:      freq.New[K, V](capacity, 0),
		frequentGhost: recency.NewGhosts[K](capacity),
		frequentCap:   fc,
		where:         make(map[K]uint8, min(capacity, 1<<16)),
		capacity:      capacity,
		threshold:     threshold,
		set:           policy.Apply(opts...),
	}
}

// NewFactory returns a policy.Factory for ARC engines.
func NewFactory[K comparable, V any](threshold int) policy.Factory[K, V] {
	return func(capacity int, opts ...policy.Option[K, V]) policy.Store[K, V] {
		return New[K, V](capacity, threshold, opts...)
	}
}

// Put evaluates ghost adaptation first, then writes k→v into the recency
// partition. A key that is new to the recency partition and was not a ghost
// is also inserted into the frequency partition at frequency 1. Any other
// frequency-partition copy of k takes the new value without an access.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity == 0 {
		return
	}
	ghost := c.adaptLocked(k)
	created := c.putRecentLocked(k, v)
	switch {
	case created && !ghost:
		c.putFrequentLocked(k, v)
	case c.where[k]&inFrequent != 0:
		if e, ok := c.frequent.Peek(k); ok {
			e.Value = v
		}
	}
}

// Get evaluates ghost adaptation (even though it is a read), then looks in
// the recency partition, promoting entries that reach the threshold, and
// falls back to the frequency partition.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero V
	if c.capacity == 0 {
		return zero, false
	}
	c.adaptLocked(k)

	if e, ok := c.recent.Touch(k); ok {
		e.Freq++
		v, promote := e.Value, e.Freq >= c.threshold
		if promote {
			c.putFrequentLocked(k, v)
		}
		return v, true
	}
	if e, ok := c.frequent.Touch(k); ok {
		return e.Value, true
	}
	return zero, false
}

// Delete removes k from both partitions. Ghost sets are left untouched.
func (c *Cache[K, V]) Delete(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.where[k]; !ok {
		return false
	}
	c.recent.Remove(k)
	c.frequent.Remove(k)
	delete(c.where, k)
	return true
}

// Len returns the number of distinct resident keys.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.where)
}

// Purge drops all entries and ghosts and restores the initial split.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent.Reset()
	c.recentGhost.Reset()
	c.frequent.Reset()
	c.frequentGhost.Reset()
	clear(c.where)
	c.frequentCap = c.capacity / 2
	c.recent.SetCap(c.capacity - c.frequentCap)
}

// Capacities returns the current recency and frequency partition sizes.
func (c *Cache[K, V]) Capacities() (recent, frequent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent.Cap(), c.frequentCap
}

// InRecency reports whether k is resident in the recency partition.
func (c *Cache[K, V]) InRecency(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.where[k]&inRecent != 0
}

// InFrequency reports whether k is resident in the frequency partition.
func (c *Cache[K, V]) InFrequency(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.where[k]&inFrequent != 0
}

// Ghost reports whether k is a tombstone of either partition. Tombstones
// stay until their ghost set overflows or the engine is purged.
func (c *Cache[K, V]) Ghost(k K) (recent, frequent bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recentGhost.Contains(k), c.frequentGhost.Contains(k)
}

// adaptLocked reports whether k is a ghost and shifts one slot of capacity
// toward the partition whose ghost set holds it, provided the other
// partition can shrink. The recency ghost set is consulted first. Ghost
// sets are not modified, so every later request for k adapts again.
func (c *Cache[K, V]) adaptLocked(k K) bool {
	if c.recentGhost.Contains(k) {
		if c.frequentCap > 1 {
			c.frequentCap--
			c.trimFrequentLocked()
			c.recent.SetCap(c.recent.Cap() + 1)
			c.logShift("recency")
		}
		return true
	}
	if !c.frequentGhost.Contains(k) {
		return false
	}
	if rc := c.recent.Cap(); rc > 1 {
		c.recent.SetCap(rc - 1)
		c.trimRecentLocked()
		c.frequentCap++
		c.logShift("frequency")
	}
	return true
}

// putRecentLocked writes into the recency partition and reports whether it
// created a new entry. Rewrites count as an access.
func (c *Cache[K, V]) putRecentLocked(k K, v V) bool {
	if c.recent.Cap() == 0 {
		return false
	}
	if e, ok := c.recent.Touch(k); ok {
		e.Value = v
		e.Freq++
		return false
	}
	for c.recent.Full() {
		c.evictRecentLocked()
	}
	c.recent.PushFront(k, v)
	c.where[k] |= inRecent
	return true
}

// putFrequentLocked inserts or updates k in the frequency partition.
// Updates increment the entry's frequency.
func (c *Cache[K, V]) putFrequentLocked(k K, v V) {
	if c.frequentCap == 0 {
		return
	}
	if e, ok := c.frequent.Touch(k); ok {
		e.Value = v
		return
	}
	for c.frequent.Len() >= c.frequentCap {
		c.evictFrequentLocked()
	}
	c.frequent.Insert(k, v)
	c.where[k] |= inFrequent
}

func (c *Cache[K, V]) trimRecentLocked() {
	for c.recent.Len() > c.recent.Cap() {
		c.evictRecentLocked()
	}
}

func (c *Cache[K, V]) trimFrequentLocked() {
	for c.frequent.Len() > c.frequentCap {
		c.evictFrequentLocked()
	}
}

func (c *Cache[K, V]) evictRecentLocked() {
	k, v, ok := c.recent.PopBack()
	if !ok {
		return
	}
	c.recentGhost.Add(k)
	c.leaveLocked(k, v, inRecent)
}

func (c *Cache[K, V]) evictFrequentLocked() {
	k, v, ok := c.frequent.EvictMin()
	if !ok {
		return
	}
	c.frequentGhost.Add(k)
	c.leaveLocked(k, v, inFrequent)
}

// leaveLocked clears one residency bit and reports an eviction once the
// key is resident in neither partition.
func (c *Cache[K, V]) leaveLocked(k K, v V, bit uint8) {
	w := c.where[k] &^ bit
	if w != 0 {
		c.where[k] = w
		return
	}
	delete(c.where, k)
	c.set.Evicted(k, v)
}

func (c *Cache[K, V]) logShift(toward string) {
	c.set.Logger.V(1).Info("arc capacity shift", "toward", toward,
		"recencyCap", c.recent.Cap(), "frequencyCap", c.frequentCap)
}
