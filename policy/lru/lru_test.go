package lru

import (
	"math/rand"
	"slices"
	"testing"

	hlru "github.com/hashicorp/golang-lru/v2"

	"github.com/IvanBrykalov/evictkit/internal/policytest"
	"github.com/IvanBrykalov/evictkit/policy"
)

func TestLRU_Conformance(t *testing.T) {
	t.Parallel()
	policytest.Run(t, NewFactory[int, int](), policytest.Config{})
}

// get(a) refreshes a, so the next admission evicts b.
func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expect hit for a")
	}
	c.Put("d", 4)

	if c.Contains("b") {
		t.Fatal("b must be evicted")
	}
	if got, want := c.Keys(), []string{"d", "a", "c"}; !slices.Equal(got, want) {
		t.Fatalf("Keys = %v; want %v", got, want)
	}
}

// Updating a value is treated as a fresh access.
func TestLRU_PutExistingRefreshesRecency(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)
	c.Put("c", 3)

	if c.Contains("b") {
		t.Fatal("b must be evicted after a was rewritten")
	}
	if v, ok := c.Peek("a"); !ok || v != 10 {
		t.Fatalf("Peek(a) = %v, %v; want 10, true", v, ok)
	}
}

func TestLRU_PeekDoesNotPromote(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Peek("a")
	c.Put("c", 3)
	if c.Contains("a") {
		t.Fatal("Peek must not refresh recency")
	}
}

func TestLRU_EvictCallbackSeesVictim(t *testing.T) {
	t.Parallel()

	var gotK string
	var gotV int
	c := New[string, int](1, policy.WithOnEvict[string, int](func(k string, v int) { gotK, gotV = k, v }))
	c.Put("a", 1)
	c.Put("b", 2)
	if gotK != "a" || gotV != 1 {
		t.Fatalf("evicted (%q, %d); want (a, 1)", gotK, gotV)
	}
	c.Delete("b")
	if gotK != "a" {
		t.Fatal("Delete must not report an eviction")
	}
}

func TestLRU_Update(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	incr := func(old int, _ bool) int { return old + 1 }
	if v := c.Update("a", incr); v != 1 {
		t.Fatalf("first Update = %d; want 1", v)
	}
	if v := c.Update("a", incr); v != 2 {
		t.Fatalf("second Update = %d; want 2", v)
	}
	c.Put("b", 0)
	c.Update("a", incr) // a becomes MRU again
	c.Put("c", 0)
	if c.Contains("b") {
		t.Fatal("b must be evicted; Update promotes")
	}

	z := New[string, int](0)
	if v := z.Update("a", incr); v != 1 || z.Len() != 0 {
		t.Fatalf("zero-capacity Update stored state: v=%d len=%d", v, z.Len())
	}
}

// Random traces must leave the same MRU→LRU order as hashicorp/golang-lru.
func TestLRU_MatchesReferenceImplementation(t *testing.T) {
	t.Parallel()

	const capacity = 16
	ours := New[int, int](capacity)
	ref, err := hlru.New[int, int](capacity)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50_000; i++ {
		k := r.Intn(48)
		switch r.Intn(4) {
		case 0, 1:
			ours.Put(k, i)
			ref.Add(k, i)
		case 2:
			v1, ok1 := ours.Get(k)
			v2, ok2 := ref.Get(k)
			if ok1 != ok2 || v1 != v2 {
				t.Fatalf("op %d Get(%d): ours=(%d,%v) ref=(%d,%v)", i, k, v1, ok1, v2, ok2)
			}
		default:
			ours.Delete(k)
			ref.Remove(k)
		}
	}

	want := ref.Keys() // oldest → newest
	slices.Reverse(want)
	if got := ours.Keys(); !slices.Equal(got, want) {
		t.Fatalf("order diverged:\nours=%v\nref =%v", got, want)
	}
}

func TestLRU_ReplaceOnlyTouchesResidentKeys(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	if c.Replace("a", 1) {
		t.Fatal("Replace of absent key must report false")
	}
	if c.Len() != 0 {
		t.Fatal("Replace must not insert")
	}
	c.Put("a", 1)
	c.Put("b", 2)
	if !c.Replace("a", 10) {
		t.Fatal("Replace of resident key must report true")
	}
	c.Put("c", 3)
	if v, ok := c.Peek("a"); !ok || v != 10 {
		t.Fatalf("Peek(a) = %v, %v; want 10, true", v, ok)
	}
}
