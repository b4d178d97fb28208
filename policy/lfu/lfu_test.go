package lfu

import (
	"testing"

	"github.com/IvanBrykalov/evictkit/internal/policytest"
)

func TestLFU_Conformance(t *testing.T) {
	t.Parallel()
	policytest.Run(t, NewFactory[int, int](), policytest.Config{})
}

// a is read twice (freq 3), b never (freq 1): admitting c evicts b.
func TestLFU_EvictsLowestFrequency(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b (freq 1) must be evicted")
	}
	if f, _ := c.Frequency("a"); f != 3 {
		t.Fatalf("freq(a) = %d; want 3", f)
	}
	if _, ok := c.Frequency("c"); !ok {
		t.Fatal("c must be resident")
	}
}

// Within one bucket the least recently touched entry goes first.
func TestLFU_TieBreakIsRecency(t *testing.T) {
	t.Parallel()

	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")
	c.Get("b")
	c.Get("c")
	c.Get("a") // a:3, b:2, c:2; b touched before c
	c.Put("d", 4)

	if _, ok := c.Frequency("b"); ok {
		t.Fatal("b is the least recently touched key of the min bucket")
	}
	if _, ok := c.Frequency("c"); !ok {
		t.Fatal("c must survive")
	}
}

func TestLFU_PutCountsAsAccess(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("a", 2)
	if f, _ := c.Frequency("a"); f != 2 {
		t.Fatalf("freq(a) = %d; want 2", f)
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("Get(a) = %d; want 2", v)
	}
}

func TestLFU_MinFrequencyTracking(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	if c.MinFrequency() != 1 {
		t.Fatal("empty index reports min frequency 1")
	}
	c.Put("a", 1)
	c.Get("a")
	c.Get("a")
	if got := c.MinFrequency(); got != 3 {
		t.Fatalf("MinFrequency = %d; want 3", got)
	}
	c.Put("b", 1)
	if got := c.MinFrequency(); got != 1 {
		t.Fatalf("MinFrequency after insert = %d; want 1", got)
	}
	c.Delete("b")
	if got := c.MinFrequency(); got != 3 {
		t.Fatalf("MinFrequency after delete = %d; want 3", got)
	}
	c.Delete("a")
	if got := c.MinFrequency(); got != 1 {
		t.Fatalf("MinFrequency of empty engine = %d; want 1", got)
	}
}
