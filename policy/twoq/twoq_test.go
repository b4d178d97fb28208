package twoq

import (
	"testing"

	"github.com/IvanBrykalov/evictkit/internal/policytest"
	"github.com/IvanBrykalov/evictkit/policy"
)

func TestTwoQ_Conformance(t *testing.T) {
	t.Parallel()
	policytest.Run(t, NewFactory[int, int](0, 0), policytest.Config{})
}

// A first-time key is admitted into A1in.
func TestTwoQ_AddGoesToA1in(t *testing.T) {
	t.Parallel()

	c := New[string, int](8, 2, 4)
	c.Put("a", 1)
	if !c.InA1in("a") || c.InAm("a") {
		t.Fatal("a must be admitted into A1in only")
	}
}

// While free slots remain, A1in grows past its share without evicting.
func TestTwoQ_A1inUsesFreeSlots(t *testing.T) {
	t.Parallel()

	var evicted []int
	c := New[int, int](4, 1, 4, policy.WithOnEvict[int, int](func(k, _ int) {
		evicted = append(evicted, k)
	}))
	for k := 1; k <= 4; k++ {
		c.Put(k, k)
	}
	if len(evicted) != 0 {
		t.Fatalf("evicted = %v; want none below capacity", evicted)
	}
	for k := 1; k <= 4; k++ {
		if !c.InA1in(k) {
			t.Fatalf("%d must still be resident in A1in", k)
		}
	}
	if !c.Delete(2) {
		t.Fatal("Delete of a resident key must report true")
	}
}

// Once the cache is full and A1in holds its share, the oldest A1in key is
// evicted and ghosted.
func TestTwoQ_A1inOverflowGhosts(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := New[string, int](3, 1, 4, policy.WithOnEvict[string, int](func(k string, _ int) {
		evicted = append(evicted, k)
	}))
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Put("d", 4)

	if _, ok := c.Get("a"); ok {
		t.Fatal("a must be evicted from A1in")
	}
	if !c.IsGhost("a") {
		t.Fatal("a must be remembered in A1out")
	}
	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("evicted = %v; want [a]", evicted)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d; want 3", c.Len())
	}
}

// A ghost hit bypasses A1in.
func TestTwoQ_GhostReadmitsToAm(t *testing.T) {
	t.Parallel()

	c := New[string, int](2, 1, 4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // a -> A1out
	if !c.IsGhost("a") {
		t.Fatal("a must be remembered in A1out")
	}
	c.Put("a", 10)

	if !c.InAm("a") || c.InA1in("a") {
		t.Fatal("re-admitted ghost must go straight to Am")
	}
	if c.IsGhost("a") {
		t.Fatal("ghost entry must be consumed")
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Fatalf("Get(a) = %v, %v; want 10, true", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d; want 2", c.Len())
	}
}

// A hit in A1in promotes the key into Am.
func TestTwoQ_GetPromotes(t *testing.T) {
	t.Parallel()

	c := New[string, int](8, 2, 4)
	c.Put("a", 1)
	c.Get("a")
	if !c.InAm("a") || c.InA1in("a") {
		t.Fatal("hit in A1in must promote to Am")
	}
}

// A long scan of one-hit keys cycles through A1in and leaves Am alone.
func TestTwoQ_ScanResistance(t *testing.T) {
	t.Parallel()

	c := New[int, int](8, 2, 8)
	c.Put(-1, 1)
	c.Put(-2, 2)
	c.Get(-1)
	c.Get(-2)

	for k := 0; k < 1000; k++ {
		c.Put(k, k)
	}
	for _, k := range []int{-1, -2} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("hot key %d evicted by the scan", k)
		}
	}
	if n := c.Len(); n > 8 {
		t.Fatalf("Len = %d exceeds capacity", n)
	}
}

// When A1in is under its share, capacity pressure evicts from Am.
func TestTwoQ_FullCacheEvictsAm(t *testing.T) {
	t.Parallel()

	c := New[string, int](3, 2, 4)
	for _, k := range []string{"a", "b", "c"} {
		c.Put(k, 0)
		c.Get(k) // all promoted to Am: LRU order c, b, a
	}
	c.Put("d", 0)

	if c.InAm("a") {
		t.Fatal("LRU of Am must be evicted")
	}
	if c.IsGhost("a") {
		t.Fatal("Am evictions are not ghosted")
	}
	if !c.InA1in("d") {
		t.Fatal("d must be admitted into A1in")
	}
}

func TestTwoQ_Clamp(t *testing.T) {
	t.Parallel()

	c := New[int, int](2, 10, -1)
	if c.capIn != 2 {
		t.Fatalf("capIn = %d; want clamped to capacity 2", c.capIn)
	}
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)
	if c.Len() != 2 {
		t.Fatalf("Len = %d; want 2", c.Len())
	}
}
