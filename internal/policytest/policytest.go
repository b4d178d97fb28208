// Package policytest is a conformance suite for policy.Store implementations.
// Every engine runs it from its own tests so the engines stay interchangeable.
package policytest

import (
	"math/rand"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/evictkit/policy"
)

// Config tunes the suite for engines with admission rules.
type Config struct {
	// Touches is how many Puts of a fresh key it takes before Get hits
	// (1 for everything except LRU-K).
	Touches int
}

// Run executes the suite against stores built by f.
func Run(t *testing.T, f policy.Factory[int, int], cfg Config) {
	t.Helper()
	if cfg.Touches < 1 {
		cfg.Touches = 1
	}

	put := func(s policy.Store[int, int], k, v int) {
		for i := 0; i < cfg.Touches; i++ {
			s.Put(k, v)
		}
	}

	t.Run("PutGetUpdate", func(t *testing.T) {
		t.Parallel()
		s := f(4)
		put(s, 1, 10)
		if v, ok := s.Get(1); !ok || v != 10 {
			t.Fatalf("Get(1) = %v, %v; want 10, true", v, ok)
		}
		s.Put(1, 11)
		if v, ok := s.Get(1); !ok || v != 11 {
			t.Fatalf("Get(1) after update = %v, %v; want 11, true", v, ok)
		}
		if got := s.Len(); got != 1 {
			t.Fatalf("Len = %d; want 1", got)
		}
	})

	t.Run("MissIsSilent", func(t *testing.T) {
		t.Parallel()
		s := f(4)
		if v, ok := s.Get(42); ok || v != 0 {
			t.Fatalf("Get on empty store = %v, %v; want zero, false", v, ok)
		}
		if s.Delete(42) {
			t.Fatal("Delete of absent key must report false")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		t.Parallel()
		s := f(4)
		put(s, 1, 1)
		put(s, 2, 2)
		if !s.Delete(1) {
			t.Fatal("Delete of resident key must report true")
		}
		if _, ok := s.Get(1); ok {
			t.Fatal("deleted key must miss")
		}
		if v, ok := s.Get(2); !ok || v != 2 {
			t.Fatalf("Get(2) = %v, %v; want 2, true", v, ok)
		}
		if got := s.Len(); got != 1 {
			t.Fatalf("Len = %d; want 1", got)
		}
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		t.Parallel()
		for _, c := range []int{0, -3} {
			s := f(c)
			put(s, 1, 1)
			if _, ok := s.Get(1); ok {
				t.Fatalf("capacity %d must disable storage", c)
			}
			if s.Len() != 0 {
				t.Fatalf("capacity %d: Len = %d; want 0", c, s.Len())
			}
		}
	})

	t.Run("Purge", func(t *testing.T) {
		t.Parallel()
		s := f(8)
		for k := 0; k < 8; k++ {
			put(s, k, k)
		}
		s.Purge()
		if s.Len() != 0 {
			t.Fatalf("Len after Purge = %d", s.Len())
		}
		for k := 0; k < 8; k++ {
			if _, ok := s.Get(k); ok {
				t.Fatalf("key %d survived Purge", k)
			}
		}
		put(s, 99, 1)
		if _, ok := s.Get(99); !ok {
			t.Fatal("store must be usable after Purge")
		}
	})

	t.Run("CapacityInvariant", func(t *testing.T) {
		t.Parallel()
		const capacity = 8
		s := f(capacity)
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 20_000; i++ {
			k := r.Intn(64)
			switch op := r.Intn(10); {
			case op < 5:
				s.Put(k, i)
			case op < 9:
				s.Get(k)
			default:
				s.Delete(k)
			}
			if n := s.Len(); n > capacity {
				t.Fatalf("op %d: Len = %d exceeds capacity %d", i, n, capacity)
			}
		}
	})

	t.Run("EvictionCallback", func(t *testing.T) {
		t.Parallel()
		const (
			capacity = 4
			keys     = 32
		)
		var evicted []int
		s := f(capacity, policy.WithOnEvict[int, int](func(k, _ int) { evicted = append(evicted, k) }))
		for k := 0; k < keys; k++ {
			put(s, k, k)
		}
		if got := s.Len() + len(evicted); got > keys {
			t.Fatalf("resident+evicted = %d; more than %d distinct keys", got, keys)
		}
		seen := append([]int(nil), evicted...)
		for _, k := range seen {
			if _, ok := s.Get(k); ok {
				t.Fatalf("key %d reported evicted but still resident", k)
			}
		}
	})

	t.Run("ConcurrentDisjointWriters", func(t *testing.T) {
		t.Parallel()
		const (
			capacity = 64
			writers  = 8
			perW     = 2_000
		)
		s := f(capacity)
		var g errgroup.Group
		for w := 0; w < writers; w++ {
			g.Go(func() error {
				for i := 0; i < perW; i++ {
					k := w*perW + i%256
					s.Put(k, k*10)
					s.Get(k)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatal(err)
		}
		if n := s.Len(); n > capacity {
			t.Fatalf("Len = %d exceeds capacity %d", n, capacity)
		}
		for w := 0; w < writers; w++ {
			for i := 0; i < 256; i++ {
				k := w*perW + i
				v, ok := s.Get(k)
				if ok && v != k*10 {
					t.Fatalf("key %d holds %d; writers only stored %d", k, v, k*10)
				}
			}
		}
	})
}
