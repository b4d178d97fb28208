package recency

// Ghosts is a bounded set of recently evicted keys (tombstones, no values).
// When full, the oldest tombstone is forgotten first.
type Ghosts[K comparable] struct {
	l *List[K, struct{}]
}

// NewGhosts returns a ghost set holding at most capacity keys.
func NewGhosts[K comparable](capacity int) *Ghosts[K] {
	return &Ghosts[K]{l: New[K, struct{}](capacity)}
}

// Add records k as recently evicted.
func (g *Ghosts[K]) Add(k K) {
	if _, ok := g.l.Touch(k); ok {
		return
	}
	if g.l.Cap() == 0 {
		return
	}
	for g.l.Full() {
		g.l.PopBack()
	}
	g.l.PushFront(k, struct{}{})
}

// Contains reports whether k is a ghost.
func (g *Ghosts[K]) Contains(k K) bool { return g.l.Contains(k) }

// Remove forgets k and reports whether it was present.
func (g *Ghosts[K]) Remove(k K) bool {
	_, ok := g.l.Remove(k)
	return ok
}

// Len returns the number of tombstones.
func (g *Ghosts[K]) Len() int { return g.l.Len() }

// Reset forgets every tombstone.
func (g *Ghosts[K]) Reset() { g.l.Reset() }
