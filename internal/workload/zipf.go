package workload

import "math"

// ZipfKeys returns n keys in [0, keySpace) following a Zipfian distribution
// (Gray et al. "Quickly generating billion-record synthetic databases").
// Higher theta means more skew; theta must be in (0, 1).
func ZipfKeys(n, keySpace int, theta float64, seed uint64) []int {
	rng := newRand(seed)
	keys := make([]int, n)

	spread := keySpace + 1
	zeta2 := zeta(2, theta)
	zetaN := zeta(uint64(spread), theta)
	alpha := 1.0 / (1.0 - theta)
	eta := (1 - math.Pow(2.0/float64(spread), 1.0-theta)) / (1.0 - zeta2/zetaN)
	halfPowTheta := 1.0 + math.Pow(0.5, theta)

	for i := range keys {
		u := rng.Float64()
		uz := u * zetaN
		var k int
		switch {
		case uz < 1.0:
			k = 0
		case uz < halfPowTheta:
			k = 1
		default:
			k = int(float64(spread) * math.Pow(eta*u-eta+1.0, alpha))
		}
		keys[i] = min(k, keySpace-1)
	}
	return keys
}

func zeta(n uint64, theta float64) float64 {
	sum := 0.0
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}
