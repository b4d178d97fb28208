// Package policy defines the contract every eviction engine implements and
// the options shared by all of them.
package policy

import "github.com/go-logr/logr"

// Cache is the minimal capability contract of an eviction engine.
// Implementations are safe for concurrent use; every call is a short
// critical section under the engine's own lock.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v. With zero capacity it is a no-op.
	Put(k K, v V)
	// Get returns the value for k and whether it was found.
	// A hit updates the engine's ordering state (recency, frequency, ...).
	Get(k K) (V, bool)
}

// Store is the full engine surface used by the sharding wrapper.
type Store[K comparable, V any] interface {
	Cache[K, V]
	// Delete removes k and reports whether it was resident.
	Delete(k K) bool
	// Len returns the number of distinct resident keys.
	Len() int
	// Purge drops all entries and any auxiliary state (ghosts, history).
	Purge()
}

// Factory builds a shard-local engine with the given capacity.
// Engine packages export NewFactory helpers that capture their tuning.
type Factory[K comparable, V any] func(capacity int, opts ...Option[K, V]) Store[K, V]

// EvictFunc observes an entry leaving the engine because of capacity
// pressure. It runs under the engine lock; keep it lightweight and never
// call back into the same engine.
type EvictFunc[K comparable, V any] func(k K, v V)

// Settings is the resolved set of shared options.
type Settings[K comparable, V any] struct {
	OnEvict EvictFunc[K, V]
	Logger  logr.Logger
}

// Option configures Settings.
type Option[K comparable, V any] func(*Settings[K, V])

// WithOnEvict installs an eviction observer.
func WithOnEvict[K comparable, V any](fn EvictFunc[K, V]) Option[K, V] {
	return func(s *Settings[K, V]) { s.OnEvict = fn }
}

// WithLogger sets the logger used for adaptation events (V(1)).
func WithLogger[K comparable, V any](l logr.Logger) Option[K, V] {
	return func(s *Settings[K, V]) { s.Logger = l }
}

// Apply resolves opts over the defaults (no callback, discard logger).
func Apply[K comparable, V any](opts ...Option[K, V]) Settings[K, V] {
	s := Settings[K, V]{Logger: logr.Discard()}
	for _, o := range opts {
		if o != nil {
			o(&s)
		}
	}
	return s
}

// Evicted invokes the callback if one is configured.
func (s *Settings[K, V]) Evicted(k K, v V) {
	if s.OnEvict != nil {
		s.OnEvict(k, v)
	}
}

// ClampCapacity maps negative capacities to zero (storage disabled).
func ClampCapacity(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
