package workload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/evictkit/policy/lfu"
	"github.com/IvanBrykalov/evictkit/policy/lru"
)

func TestGenerators_Deterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, HotCold(500, 20, 100, 1).Ops, HotCold(500, 20, 100, 1).Ops)
	require.Equal(t, Shift(500, 3).Ops, Shift(500, 3).Ops)
	require.Equal(t, ZipfKeys(500, 1000, 0.9, 5), ZipfKeys(500, 1000, 0.9, 5))
	require.NotEqual(t, ZipfKeys(500, 1000, 0.9, 5), ZipfKeys(500, 1000, 0.9, 6))
}

func TestHotCold_Split(t *testing.T) {
	t.Parallel()

	const n, hot, cold = 1000, 20, 100
	s := HotCold(n, hot, cold, 9)
	require.Len(t, s.Ops, 2*n)
	for i, op := range s.Ops {
		want := Put
		if i >= n {
			want = Get
		}
		require.Equal(t, want, op.Kind, "op %d", i)
		if i%n%100 < 70 {
			require.Less(t, op.Key, hot, "op %d should be hot", i)
		} else {
			require.GreaterOrEqual(t, op.Key, hot)
			require.Less(t, op.Key, hot+cold)
		}
	}
}

func TestLoop_Pattern(t *testing.T) {
	t.Parallel()

	const size = 50
	s := Loop(300, size, 2)
	require.Len(t, s.Preload, size)
	seq := 0
	for i, op := range s.Ops {
		require.Equal(t, Get, op.Kind)
		switch r := i % 100; {
		case r < 60:
			require.Equal(t, seq, op.Key, "op %d walks the loop", i)
			seq = (seq + 1) % size
		case r < 90:
			require.Less(t, op.Key, size)
		default:
			require.GreaterOrEqual(t, op.Key, size)
			require.Less(t, op.Key, 2*size)
		}
	}
}

func TestShift_Phases(t *testing.T) {
	t.Parallel()

	const n = 5000
	s := Shift(n, 4)
	read := 0
	for _, op := range s.Ops {
		if op.Kind != Get {
			continue
		}
		switch phase := read / (n / 5); phase {
		case 0:
			require.Less(t, op.Key, 5)
		case 2:
			require.Equal(t, (read-2*(n/5))%100, op.Key)
		default:
			require.Less(t, op.Key, 1000)
		}
		read++
	}
	require.Equal(t, n, read)
}

func TestZipf_Skewed(t *testing.T) {
	t.Parallel()

	keys := ZipfKeys(20_000, 1000, 0.99, 11)
	counts := make(map[int]int)
	for _, k := range keys {
		require.GreaterOrEqual(t, k, 0)
		require.Less(t, k, 1000)
		counts[k]++
	}
	require.Greater(t, counts[0], counts[500]*10, "key 0 dominates the tail")
}

func TestReplay_Counts(t *testing.T) {
	t.Parallel()

	s := Scenario{
		Preload: []int{1},
		Ops: []Op{
			{Kind: Get, Key: 1},
			{Kind: Get, Key: 2},
			{Kind: Put, Key: 2},
			{Kind: Get, Key: 2},
		},
	}
	r := Replay(s, lru.New[int, string](4))
	require.Equal(t, Result{Gets: 3, Hits: 2}, r)
	require.InDelta(t, 2.0/3, r.HitRate(), 1e-9)
	require.Zero(t, Result{}.HitRate())

	s.FillOnMiss = true
	s.Ops = []Op{{Kind: Get, Key: 7}, {Kind: Get, Key: 7}}
	require.Equal(t, Result{Gets: 2, Hits: 1}, Replay(s, lru.New[int, string](4)))
}

// Frequency-based eviction keeps the hot set resident through cold churn.
func TestReplay_HotColdFavorsFrequency(t *testing.T) {
	t.Parallel()

	s := HotCold(20_000, 20, 5_000, 1)
	r := Replay(s, lfu.New[int, string](s.Capacity))
	require.Greater(t, r.HitRate(), 0.65)
}
