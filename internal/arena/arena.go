// Package arena stores cache entries in a growable slice addressed by
// stable handles. Lists link entries by handle, so moving an entry between
// lists never leaves a dangling reference behind.
package arena

// Handle addresses a slot in an Arena. Handles stay valid until Free.
type Handle int32

// Nil is the "no entry" link.
const Nil Handle = -1

// Entry is the unit stored by every engine.
// Freq is engine-specific: LRU/FIFO ignore it, LFU/ARC use it as bucket key.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	Freq  int

	prev Handle
	next Handle
}

// Arena owns entries. Freed slots are reused before the slice grows.
//
// Pointers returned by At are invalidated by the next Alloc (the slice may
// be reallocated); hold handles, not pointers, across allocations.
type Arena[K comparable, V any] struct {
	slots []Entry[K, V]
	free  []Handle
}

// New returns an arena with room for hint entries before growing.
func New[K comparable, V any](hint int) *Arena[K, V] {
	if hint < 0 {
		hint = 0
	}
	return &Arena[K, V]{slots: make([]Entry[K, V], 0, hint)}
}

// Alloc stores a new unlinked entry and returns its handle.
func (a *Arena[K, V]) Alloc(k K, v V, freq int) Handle {
	e := Entry[K, V]{Key: k, Value: v, Freq: freq, prev: Nil, next: Nil}
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = e
		return h
	}
	a.slots = append(a.slots, e)
	return Handle(len(a.slots) - 1)
}

// Free releases h. The slot is zeroed so the arena keeps no references to
// the old key or value. The entry must already be unlinked.
func (a *Arena[K, V]) Free(h Handle) {
	a.slots[h] = Entry[K, V]{prev: Nil, next: Nil}
	a.free = append(a.free, h)
}

// At returns the entry stored under h.
func (a *Arena[K, V]) At(h Handle) *Entry[K, V] { return &a.slots[h] }

// Len returns the number of live entries.
func (a *Arena[K, V]) Len() int { return len(a.slots) - len(a.free) }

// Reset frees every slot at once. Lists built on the arena must be reset too.
func (a *Arena[K, V]) Reset() {
	clear(a.slots)
	a.slots = a.slots[:0]
	a.free = a.free[:0]
}
