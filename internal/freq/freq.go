// Package freq implements the Frequency Index shared by the LFU-family
// engines: entries grouped into per-frequency recency lists plus an O(1)
// minimum-frequency scalar. It has no locking of its own.
package freq

import (
	"maps"
	"slices"

	"github.com/IvanBrykalov/evictkit/internal/arena"
)

const maxPrealloc = 1 << 16

// Index invariants (with the caller's lock held):
//   - every entry is linked into exactly one bucket, buckets[e.Freq];
//   - no bucket is empty;
//   - minFreq is at most every bucket key, and names an existing bucket
//     unless stale (1 when the index is empty);
//   - with a ceiling, no entry's Freq exceeds it.
//
// Emptying the minimum bucket only marks minFreq stale. The evict-then-insert
// path never pays for the rescan because Insert resets minFreq to 1.
type Index[K comparable, V any] struct {
	arena   *arena.Arena[K, V]
	buckets map[int]*arena.List[K, V]
	index   map[K]arena.Handle
	minFreq int
	stale   bool
	maxFreq int // 0 = no ceiling
}

// New returns an empty index. maxFreq <= 0 disables the ceiling.
func New[K comparable, V any](capacity, maxFreq int) *Index[K, V] {
	hint := min(max(capacity, 0), maxPrealloc)
	if maxFreq < 0 {
		maxFreq = 0
	}
	return &Index[K, V]{
		arena:   arena.New[K, V](hint),
		buckets: make(map[int]*arena.List[K, V]),
		index:   make(map[K]arena.Handle, hint),
		minFreq: 1,
		maxFreq: maxFreq,
	}
}

// Len returns the number of entries.
func (x *Index[K, V]) Len() int { return len(x.index) }

// MinFreq returns the smallest non-empty bucket key (1 when empty).
func (x *Index[K, V]) MinFreq() int {
	x.resolveMin()
	return x.minFreq
}

// Buckets returns the number of non-empty buckets.
func (x *Index[K, V]) Buckets() int { return len(x.buckets) }

// Contains reports membership without touching frequency.
func (x *Index[K, V]) Contains(k K) bool {
	_, ok := x.index[k]
	return ok
}

// Peek returns the entry for k without touching it.
// The pointer is valid until the next Insert.
func (x *Index[K, V]) Peek(k K) (*arena.Entry[K, V], bool) {
	h, ok := x.index[k]
	if !ok {
		return nil, false
	}
	return x.arena.At(h), true
}

// Touch increments k's frequency (up to the ceiling) and moves it to the
// front of its new bucket. The pointer is valid until the next Insert.
func (x *Index[K, V]) Touch(k K) (*arena.Entry[K, V], bool) {
	h, ok := x.index[k]
	if !ok {
		return nil, false
	}
	x.bump(h)
	return x.arena.At(h), true
}

// Insert adds an absent key at frequency 1. It does not enforce capacity.
func (x *Index[K, V]) Insert(k K, v V) {
	h := x.arena.Alloc(k, v, 1)
	x.bucket(1).PushFront(h)
	x.index[k] = h
	x.minFreq = 1
	x.stale = false
}

// EvictMin removes the least recently touched entry of the minimum bucket.
func (x *Index[K, V]) EvictMin() (K, V, bool) {
	x.resolveMin()
	b, ok := x.buckets[x.minFreq]
	if !ok || len(x.index) == 0 {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	h := b.Back()
	e := x.arena.At(h)
	k, v := e.Key, e.Value
	x.drop(h)
	return k, v, true
}

// Remove deletes k and returns its value.
func (x *Index[K, V]) Remove(k K) (V, bool) {
	h, ok := x.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := x.arena.At(h).Value
	x.drop(h)
	return v, true
}

// Decay halves every frequency (floor 1) and rebuilds the buckets.
// Buckets that collapse onto the same frequency are merged hottest-first,
// so entries that were colder end up nearer the eviction end.
// It never changes the number of entries; on an empty index it is a no-op.
func (x *Index[K, V]) Decay() {
	if len(x.index) == 0 {
		return
	}
	freqs := slices.Sorted(maps.Keys(x.buckets))
	old := x.buckets
	x.buckets = make(map[int]*arena.List[K, V], len(old))
	for i := len(freqs) - 1; i >= 0; i-- {
		f := freqs[i]
		b := old[f]
		nf := max(1, f/2)
		for h := b.Front(); h != arena.Nil; h = b.Next(h) {
			x.arena.At(h).Freq = nf
		}
		x.bucket(nf).Append(b)
	}
	x.minFreq = max(1, freqs[0]/2)
	x.stale = false
}

// Bucket returns the keys of bucket f from front to back.
func (x *Index[K, V]) Bucket(f int) []K {
	b, ok := x.buckets[f]
	if !ok {
		return nil
	}
	out := make([]K, 0, b.Len())
	for h := b.Front(); h != arena.Nil; h = b.Next(h) {
		out = append(out, x.arena.At(h).Key)
	}
	return out
}

// Reset drops every entry.
func (x *Index[K, V]) Reset() {
	clear(x.buckets)
	clear(x.index)
	x.arena.Reset()
	x.minFreq = 1
	x.stale = false
}

func (x *Index[K, V]) bucket(f int) *arena.List[K, V] {
	b, ok := x.buckets[f]
	if !ok {
		b = arena.NewList(x.arena)
		x.buckets[f] = b
	}
	return b
}

// unlink detaches h from its bucket and reports whether the bucket emptied.
func (x *Index[K, V]) unlink(h arena.Handle) bool {
	f := x.arena.At(h).Freq
	b := x.buckets[f]
	b.Remove(h)
	if b.Len() == 0 {
		delete(x.buckets, f)
		return true
	}
	return false
}

func (x *Index[K, V]) bump(h arena.Handle) {
	e := x.arena.At(h)
	f := e.Freq
	nf := f + 1
	if x.maxFreq > 0 && nf > x.maxFreq {
		nf = x.maxFreq
	}
	if nf == f {
		x.buckets[f].MoveToFront(h)
		return
	}
	emptied := x.unlink(h)
	e.Freq = nf
	x.bucket(nf).PushFront(h)
	if emptied && x.minFreq == f {
		x.minFreq = nf
	}
}

func (x *Index[K, V]) drop(h arena.Handle) {
	f := x.arena.At(h).Freq
	emptied := x.unlink(h)
	delete(x.index, x.arena.At(h).Key)
	x.arena.Free(h)
	if emptied && f == x.minFreq {
		x.stale = true
	}
}

// resolveMin finds the smallest bucket after the minimum bucket disappeared.
// O(number of buckets), paid only when minFreq is read while stale.
func (x *Index[K, V]) resolveMin() {
	if !x.stale {
		return
	}
	x.stale = false
	if len(x.index) == 0 {
		x.minFreq = 1
		return
	}
	m := 0
	for f := range x.buckets {
		if m == 0 || f < m {
			m = f
		}
	}
	x.minFreq = m
}
