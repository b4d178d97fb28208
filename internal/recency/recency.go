// Package recency implements the Recency List: an ordered arena list plus a
// key index, with no locking of its own. Callers hold their engine lock.
package recency

import "github.com/IvanBrykalov/evictkit/internal/arena"

// maxPrealloc bounds the up-front arena reservation for large capacities.
const maxPrealloc = 1 << 16

// List keeps the key index and the handle list in lock-step: both always
// hold exactly the same key set. Front is MRU, back is the eviction candidate.
type List[K comparable, V any] struct {
	arena    *arena.Arena[K, V]
	order    *arena.List[K, V]
	index    map[K]arena.Handle
	capacity int
}

// New returns an empty list that reports Full at capacity entries.
func New[K comparable, V any](capacity int) *List[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	hint := min(capacity, maxPrealloc)
	a := arena.New[K, V](hint)
	return &List[K, V]{
		arena:    a,
		order:    arena.NewList(a),
		index:    make(map[K]arena.Handle, hint),
		capacity: capacity,
	}
}

// Len returns the number of entries.
func (l *List[K, V]) Len() int { return l.order.Len() }

// Cap returns the configured capacity.
func (l *List[K, V]) Cap() int { return l.capacity }

// SetCap changes the capacity. It does not evict; callers trim with PopBack.
func (l *List[K, V]) SetCap(n int) {
	if n < 0 {
		n = 0
	}
	l.capacity = n
}

// Full reports whether inserting a new key requires an eviction first.
func (l *List[K, V]) Full() bool { return l.order.Len() >= l.capacity }

// Contains reports membership without reordering.
func (l *List[K, V]) Contains(k K) bool {
	_, ok := l.index[k]
	return ok
}

// Peek returns the entry for k without reordering.
// The pointer is valid until the next PushFront.
func (l *List[K, V]) Peek(k K) (*arena.Entry[K, V], bool) {
	h, ok := l.index[k]
	if !ok {
		return nil, false
	}
	return l.arena.At(h), true
}

// Touch moves k to the front and returns its entry.
// The pointer is valid until the next PushFront.
func (l *List[K, V]) Touch(k K) (*arena.Entry[K, V], bool) {
	h, ok := l.index[k]
	if !ok {
		return nil, false
	}
	l.order.MoveToFront(h)
	return l.arena.At(h), true
}

// PushFront inserts an absent key at the front with frequency 1.
// It does not enforce capacity.
func (l *List[K, V]) PushFront(k K, v V) {
	h := l.arena.Alloc(k, v, 1)
	l.order.PushFront(h)
	l.index[k] = h
}

// Remove deletes k and returns its value.
func (l *List[K, V]) Remove(k K) (V, bool) {
	h, ok := l.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := l.arena.At(h).Value
	l.order.Remove(h)
	delete(l.index, k)
	l.arena.Free(h)
	return v, true
}

// PopBack removes and returns the back entry.
func (l *List[K, V]) PopBack() (K, V, bool) {
	h := l.order.Back()
	if h == arena.Nil {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	e := l.arena.At(h)
	k, v := e.Key, e.Value
	l.order.Remove(h)
	delete(l.index, k)
	l.arena.Free(h)
	return k, v, true
}

// Keys returns the keys from front (MRU) to back.
func (l *List[K, V]) Keys() []K {
	out := make([]K, 0, l.order.Len())
	for h := l.order.Front(); h != arena.Nil; h = l.order.Next(h) {
		out = append(out, l.arena.At(h).Key)
	}
	return out
}

// Reset drops every entry.
func (l *List[K, V]) Reset() {
	l.order.Reset()
	l.arena.Reset()
	clear(l.index)
}
