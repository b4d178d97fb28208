// Package workload generates deterministic cache access traces and replays
// them against eviction engines to measure hit rates.
package workload

import (
	"math/rand/v2"
	"strconv"

	"github.com/IvanBrykalov/evictkit/policy"
)

// Kind is the operation type of one trace step.
type Kind uint8

const (
	Get Kind = iota
	Put
)

// Op is one trace step.
type Op struct {
	Kind Kind
	Key  int
}

// Scenario is a replayable trace: Preload keys are Put first, then Ops run
// in order. With FillOnMiss a missed Get is followed by a Put, which makes
// the trace read-through.
type Scenario struct {
	Name       string
	Capacity   int
	Preload    []int
	Ops        []Op
	FillOnMiss bool
}

// Result counts Get outcomes of a replay.
type Result struct {
	Gets int
	Hits int
}

// HitRate returns Hits/Gets, or 0 for a trace without reads.
func (r Result) HitRate() float64 {
	if r.Gets == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Gets)
}

// Replay runs s against c sequentially.
func Replay(s Scenario, c policy.Cache[int, string]) Result {
	for _, k := range s.Preload {
		c.Put(k, value(k))
	}
	var r Result
	for _, op := range s.Ops {
		if op.Kind == Put {
			c.Put(op.Key, value(op.Key))
			continue
		}
		r.Gets++
		if _, ok := c.Get(op.Key); ok {
			r.Hits++
		} else if s.FillOnMiss {
			c.Put(op.Key, value(op.Key))
		}
	}
	return r
}

func value(k int) string { return "v" + strconv.Itoa(k) }

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// HotCold writes n keys and then reads n keys; 70 of every 100 steps
// target the hot set [0, hot), the rest the cold set [hot, hot+cold).
func HotCold(n, hot, cold int, seed uint64) Scenario {
	rng := newRand(seed)
	key := func(i int) int {
		if i%100 < 70 {
			return rng.IntN(hot)
		}
		return hot + rng.IntN(cold)
	}
	ops := make([]Op, 0, 2*n)
	for i := 0; i < n; i++ {
		ops = append(ops, Op{Kind: Put, Key: key(i)})
	}
	for i := 0; i < n; i++ {
		ops = append(ops, Op{Kind: Get, Key: key(i)})
	}
	return Scenario{Name: "hot-cold", Capacity: 50, Ops: ops}
}

// Loop preloads [0, size) and then reads: 60% of steps walk the loop
// sequentially, 30% jump to a random key in it and 10% miss it entirely
// by reading from [size, 2*size).
func Loop(n, size int, seed uint64) Scenario {
	rng := newRand(seed)
	preload := make([]int, size)
	for k := range preload {
		preload[k] = k
	}
	ops := make([]Op, n)
	pos := 0
	for i := range ops {
		var k int
		switch r := i % 100; {
		case r < 60:
			k = pos
			pos = (pos + 1) % size
		case r < 90:
			k = rng.IntN(size)
		default:
			k = size + rng.IntN(size)
		}
		ops[i] = Op{Kind: Get, Key: k}
	}
	return Scenario{Name: "loop", Capacity: 50, Preload: preload, Ops: ops}
}

// Shift preloads [0, 1000) and reads through five equal phases: a tiny hot
// set, uniform random, a sequential scan of 100 keys, moving 20-key
// localities and a mix of the three. Each read is followed by a Put of
// the same key with probability 0.3.
func Shift(n int, seed uint64) Scenario {
	rng := newRand(seed)
	phase := n / 5
	if phase < 1 {
		phase = 1
	}
	preload := make([]int, 1000)
	for k := range preload {
		preload[k] = k
	}
	ops := make([]Op, 0, n+n/2)
	for i := 0; i < n; i++ {
		var k int
		switch {
		case i < phase:
			k = rng.IntN(5)
		case i < 2*phase:
			k = rng.IntN(1000)
		case i < 3*phase:
			k = (i - 2*phase) % 100
		case i < 4*phase:
			k = (i/1000)%10*20 + rng.IntN(20)
		default:
			switch r := rng.IntN(100); {
			case r < 30:
				k = rng.IntN(5)
			case r < 60:
				k = 5 + rng.IntN(95)
			default:
				k = 100 + rng.IntN(900)
			}
		}
		ops = append(ops, Op{Kind: Get, Key: k})
		if rng.IntN(100) < 30 {
			ops = append(ops, Op{Kind: Put, Key: k})
		}
	}
	return Scenario{Name: "shift", Capacity: 4, Preload: preload, Ops: ops}
}

// Zipf is a read-through trace of n reads over [0, keySpace) with skew theta.
func Zipf(n, keySpace int, theta float64, seed uint64) Scenario {
	keys := ZipfKeys(n, keySpace, theta, seed)
	ops := make([]Op, len(keys))
	for i, k := range keys {
		ops[i] = Op{Kind: Get, Key: k}
	}
	return Scenario{Name: "zipf", Capacity: keySpace / 100, Ops: ops, FillOnMiss: true}
}

// Standard returns the built-in scenarios with their operation counts
// multiplied by scale.
func Standard(scale float64, seed uint64) []Scenario {
	n := func(base int) int { return max(1, int(float64(base)*scale)) }
	return []Scenario{
		HotCold(n(1_000_000), 20, 5_000, seed),
		Loop(n(200_000), 500, seed),
		Shift(n(80_000), seed),
		Zipf(n(1_000_000), 100_000, 0.99, seed),
	}
}
