package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
)

func TestFactoryFor_AllPolicies(t *testing.T) {
	t.Parallel()

	tn := tuning{HistoryCapacity: 16, K: 2, MaxFrequency: 8, Threshold: 2}
	for _, name := range policyNames() {
		f, err := factoryFor(name, tn)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s := f(4)
		for i := 0; i < 2; i++ { // LRU-K admits on the second touch
			s.Put(1, "a")
		}
		if v, ok := s.Get(1); !ok || v != "a" {
			t.Fatalf("%s: Get(1) = %q, %v", name, v, ok)
		}
	}

	if _, err := factoryFor("clock", tn); err == nil || !strings.Contains(err.Error(), "unknown policy") {
		t.Fatalf("unknown policy error = %v", err)
	}
}

func TestNewLogger_Validates(t *testing.T) {
	t.Parallel()

	if _, _, err := newLogger(logOptions{Encoding: "json", Level: "loud"}); err == nil {
		t.Fatal("unknown level must fail")
	}
	if _, _, err := newLogger(logOptions{Encoding: "xml", Level: "info"}); err == nil {
		t.Fatal("unknown encoding must fail")
	}
	l, flush, err := newLogger(logOptions{Encoding: "console", Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if !l.V(1).Enabled() {
		t.Fatal("debug level must enable V(1)")
	}
	_ = flush()
}

func TestRunHitRates_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	names := []string{"lru", "arc"}
	tn := tuning{HistoryCapacity: 16, K: 2, MaxFrequency: 16, Threshold: 2}
	if err := runHitRates(&buf, logr.Discard(), names, tn, 0.001, 1); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"hot-cold", "loop", "shift", "zipf", "lru", "arc", "%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if err := runHitRates(&buf, logr.Discard(), []string{"nope"}, tn, 0.001, 1); err == nil {
		t.Fatal("unknown policy must fail")
	}
}

func TestRunThroughput_Short(t *testing.T) {
	t.Parallel()

	cfg := config{
		tuning:   tuning{HistoryCapacity: 64, K: 2, MaxFrequency: 16, Threshold: 2},
		capacity: 1_000,
		shards:   4,
		workers:  2,
		duration: 20 * time.Millisecond,
		readPct:  80,
		keys:     10_000,
		zipfS:    1.1,
		zipfV:    1,
		seed:     1,
	}
	if err := runThroughput(context.Background(), cfg, "arc", logr.Discard()); err != nil {
		t.Fatal(err)
	}

	cfg.zipfS = 0.5
	if err := runThroughput(context.Background(), cfg, "lru", logr.Discard()); err == nil {
		t.Fatal("invalid zipf parameters must fail")
	}
}
