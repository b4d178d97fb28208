package cache

import (
	"github.com/IvanBrykalov/evictkit/internal/util"
	"github.com/IvanBrykalov/evictkit/policy"
)

// shard is one independent engine instance plus its counters.
// The engine owns the only lock; the shard adds none.
type shard[K comparable, V any] struct {
	store   policy.Store[K, V]
	metrics Metrics
	onEvict func(k K, v V)

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

func newShard[K comparable, V any](idx, capacity int, opt Options[K, V]) *shard[K, V] {
	s := &shard[K, V]{
		metrics: opt.Metrics,
		onEvict: opt.OnEvict,
	}
	s.store = opt.Policy(capacity,
		policy.WithOnEvict[K, V](s.evicted),
		policy.WithLogger[K, V](opt.Logger.WithValues("shard", idx)),
	)
	return s
}

func (s *shard[K, V]) Put(k K, v V) { s.store.Put(k, v) }

// Get looks k up in the engine and records the outcome.
func (s *shard[K, V]) Get(k K) (V, bool) {
	v, ok := s.store.Get(k)
	if ok {
		s.hits.Add(1)
		s.metrics.Hit()
	} else {
		s.misses.Add(1)
		s.metrics.Miss()
	}
	return v, ok
}

func (s *shard[K, V]) Delete(k K) bool { return s.store.Delete(k) }
func (s *shard[K, V]) Len() int        { return s.store.Len() }
func (s *shard[K, V]) Purge()          { s.store.Purge() }

// evicted runs under the engine lock.
func (s *shard[K, V]) evicted(k K, v V) {
	s.evicts.Add(1)
	s.metrics.Evict()
	if s.onEvict != nil {
		s.onEvict(k, v)
	}
}
