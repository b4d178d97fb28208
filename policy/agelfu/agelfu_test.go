package agelfu

import (
	"strconv"
	"testing"

	"github.com/IvanBrykalov/evictkit/internal/policytest"
	"github.com/IvanBrykalov/evictkit/policy/lfu"
)

func TestAgingLFU_Conformance(t *testing.T) {
	t.Parallel()
	policytest.Run(t, NewFactory[int, int](0), policytest.Config{})
}

func TestAgingLFU_FrequencyCeiling(t *testing.T) {
	t.Parallel()

	c := New[string, int](4, 5)
	c.Put("a", 1)
	for i := 0; i < 100; i++ {
		c.Get("a")
	}
	if f, _ := c.Frequency("a"); f != 5 {
		t.Fatalf("freq(a) = %d; want ceiling 5", f)
	}
}

// Capacity insertions since the last pass trigger a decay before eviction.
func TestAgingLFU_DecayRunsBeforeEviction(t *testing.T) {
	t.Parallel()

	c := New[string, int](2, 16)
	c.Put("a", 1)
	for i := 0; i < 5; i++ {
		c.Get("a") // 6
	}
	c.Put("b", 2) // 2 inserts == capacity
	c.Put("c", 3) // decay: a 3, b 1 -> evict b

	if got := c.Decays(); got != 1 {
		t.Fatalf("Decays = %d; want 1", got)
	}
	if f, _ := c.Frequency("a"); f != 3 {
		t.Fatalf("freq(a) = %d; want 3 after halving", f)
	}
	if _, ok := c.Frequency("b"); ok {
		t.Fatal("b must be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d; decay must not change the key count", c.Len())
	}
}

func TestAgingLFU_DecayOnEmptyIsNoop(t *testing.T) {
	t.Parallel()

	c := New[string, int](2, 16)
	c.Decay()
	if c.Decays() != 0 || c.Len() != 0 || c.MinFrequency() != 1 {
		t.Fatal("decay on an empty engine must be a no-op")
	}
}

func TestAgingLFU_DecayFloorsAtOne(t *testing.T) {
	t.Parallel()

	c := New[string, int](4, 16)
	c.Put("a", 1)
	c.Put("b", 1)
	c.Get("b")
	for i := 0; i < 5; i++ {
		c.Decay()
	}
	for _, k := range []string{"a", "b"} {
		if f, _ := c.Frequency(k); f != 1 {
			t.Fatalf("freq(%s) = %d; want 1", k, f)
		}
	}
}

// After a shift, a formerly hot key ages out; classic LFU keeps it forever.
func TestAgingLFU_WorkloadShiftEvictsStaleHotKey(t *testing.T) {
	t.Parallel()

	aging := New[string, int](2, 16)
	classic := lfu.New[string, int](2)
	for _, put := range []func(string, int){aging.Put, classic.Put} {
		put("old", 0)
	}
	for i := 0; i < 100; i++ {
		aging.Get("old")
		classic.Get("old")
	}

	for i := 0; i < 20; i++ {
		k := "new:" + strconv.Itoa(i)
		aging.Put(k, i)
		classic.Put(k, i)
		for j := 0; j < 3; j++ {
			aging.Get(k)
			classic.Get(k)
		}
	}

	if _, ok := aging.Frequency("old"); ok {
		t.Fatal("aging LFU must eventually evict the stale hot key")
	}
	if _, ok := classic.Frequency("old"); !ok {
		t.Fatal("classic LFU is expected to pin the stale hot key")
	}
}
