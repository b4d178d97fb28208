package main

import (
	"fmt"
	"sort"

	"github.com/IvanBrykalov/evictkit/policy"
	"github.com/IvanBrykalov/evictkit/policy/agelfu"
	"github.com/IvanBrykalov/evictkit/policy/arc"
	"github.com/IvanBrykalov/evictkit/policy/fifo"
	"github.com/IvanBrykalov/evictkit/policy/lfu"
	"github.com/IvanBrykalov/evictkit/policy/lru"
	"github.com/IvanBrykalov/evictkit/policy/lruk"
	"github.com/IvanBrykalov/evictkit/policy/twoq"
)

// tuning carries the engine-specific knobs exposed as flags.
type tuning struct {
	HistoryCapacity int
	K               int
	MaxFrequency    int
	Threshold       int
	InShare         float64
	GhostShare      float64
}

var builders = map[string]func(t tuning) policy.Factory[int, string]{
	"lru":  func(tuning) policy.Factory[int, string] { return lru.NewFactory[int, string]() },
	"fifo": func(tuning) policy.Factory[int, string] { return fifo.NewFactory[int, string]() },
	"lruk": func(t tuning) policy.Factory[int, string] {
		return lruk.NewFactory[int, string](t.HistoryCapacity, t.K)
	},
	"lfu": func(tuning) policy.Factory[int, string] { return lfu.NewFactory[int, string]() },
	"agelfu": func(t tuning) policy.Factory[int, string] {
		return agelfu.NewFactory[int, string](t.MaxFrequency)
	},
	"arc": func(t tuning) policy.Factory[int, string] {
		return arc.NewFactory[int, string](t.Threshold)
	},
	"2q": func(t tuning) policy.Factory[int, string] {
		return twoq.NewFactory[int, string](t.InShare, t.GhostShare)
	},
}

func policyNames() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func factoryFor(name string, t tuning) (policy.Factory[int, string], error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (have %v)", name, policyNames())
	}
	return b(t), nil
}
