package common

import "math"

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Hash returns a deterministic 64-bit hash of (seed, i).
func Hash(seed uint64, i int64) uint64 {
	return splitmix64(seed ^ uint64(i)*0x9E3779B185EBCA87)
}

// ValueNoise returns smooth 1D noise in [-1, 1]. The same (seed, x) always
// yields the same value and nearby x values yield nearby results.
func ValueNoise(seed uint64, x float64) float64 {
	x0 := math.Floor(x)
	t := x - x0
	t = t * t * (3 - 2*t)
	a := hashUnit(Hash(seed, int64(x0)))
	b := hashUnit(Hash(seed, int64(x0)+1))
	return Lerp(a, b, t)
}

func hashUnit(h uint64) float64 {
	return float64(h>>11)*(2.0/(1<<53)) - 1
}

// Rand is a tiny deterministic RNG (xorshift64*). It is injected wherever the
// simulation needs randomness so runs are reproducible from a seed.
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}
