package arena

// List is an intrusive doubly linked list of handles: front is the most
// recently placed entry, back is the eviction candidate.
// An entry must be linked into at most one List at a time.
type List[K comparable, V any] struct {
	a    *Arena[K, V]
	head Handle
	tail Handle
	n    int
}

// NewList returns an empty list over a.
func NewList[K comparable, V any](a *Arena[K, V]) *List[K, V] {
	return &List[K, V]{a: a, head: Nil, tail: Nil}
}

// Len returns the number of linked entries.
func (l *List[K, V]) Len() int { return l.n }

// Front returns the first handle, or Nil.
func (l *List[K, V]) Front() Handle { return l.head }

// Back returns the last handle, or Nil.
func (l *List[K, V]) Back() Handle { return l.tail }

// Next returns the handle after h, or Nil.
func (l *List[K, V]) Next(h Handle) Handle { return l.a.slots[h].next }

// PushFront links h at the front in O(1).
func (l *List[K, V]) PushFront(h Handle) {
	e := &l.a.slots[h]
	e.prev = Nil
	e.next = l.head
	if l.head != Nil {
		l.a.slots[l.head].prev = h
	} else {
		l.tail = h
	}
	l.head = h
	l.n++
}

// PushBack links h at the back in O(1).
func (l *List[K, V]) PushBack(h Handle) {
	e := &l.a.slots[h]
	e.next = Nil
	e.prev = l.tail
	if l.tail != Nil {
		l.a.slots[l.tail].next = h
	} else {
		l.head = h
	}
	l.tail = h
	l.n++
}

// Remove unlinks h in O(1). h must be linked into l.
func (l *List[K, V]) Remove(h Handle) {
	e := &l.a.slots[h]
	if e.prev != Nil {
		l.a.slots[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != Nil {
		l.a.slots[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = Nil, Nil
	l.n--
}

// MoveToFront relinks h at the front in O(1).
func (l *List[K, V]) MoveToFront(h Handle) {
	if h == l.head {
		return
	}
	l.Remove(h)
	l.PushFront(h)
}

// Append moves every entry of other to the back of l, keeping their order,
// and leaves other empty. Both lists must share the same arena.
func (l *List[K, V]) Append(other *List[K, V]) {
	if other == l || other.n == 0 {
		return
	}
	if l.n == 0 {
		l.head, l.tail = other.head, other.tail
	} else {
		l.a.slots[l.tail].next = other.head
		l.a.slots[other.head].prev = l.tail
		l.tail = other.tail
	}
	l.n += other.n
	other.head, other.tail, other.n = Nil, Nil, 0
}

// Reset forgets all links without touching the arena.
func (l *List[K, V]) Reset() {
	l.head, l.tail, l.n = Nil, Nil, 0
}
