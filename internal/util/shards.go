package util

import "runtime"

// MaxShards caps automatically chosen shard counts.
const MaxShards = 256

// DefaultShardCount returns the host's hardware concurrency clamped to
// [1, MaxShards].
func DefaultShardCount() int {
	return clampShards(runtime.NumCPU())
}

// ResolveShards returns n if it is positive and DefaultShardCount otherwise.
// Explicit counts are honored as given; only the default is clamped.
func ResolveShards(n int) int {
	if n > 0 {
		return n
	}
	return DefaultShardCount()
}

func clampShards(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxShards {
		return MaxShards
	}
	return n
}

// PerShard splits capacity across shards, rounding up, so the shards may
// hold slightly more than capacity in total. Non-positive capacity yields 0.
func PerShard(capacity, shards int) int {
	if capacity <= 0 || shards <= 0 {
		return 0
	}
	return (capacity + shards - 1) / shards
}

// ShardIndex maps a 64-bit hash to a shard index (hash mod shards).
// Power-of-two shard counts take the mask fast path.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
