package mapgen

import "math/rand/v2"

// RNG is the single sequential random source threaded through every
// generation step.
type RNG struct {
	rand *rand.Rand
}

// NewRNG returns a PCG based random source for the given seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Rand returns the underlying *rand.Rand, for gruid APIs that need one.
func (r *RNG) Rand() *rand.Rand {
	return r.rand
}

// IntN returns a random number in [0, n). It returns 0 for non-positive n.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rand.IntN(n)
}

// RollDice returns the sum of n dice with the given number of faces.
func (r *RNG) RollDice(n, faces int) int {
	if faces <= 0 {
		return 0
	}
	total := 0
	for range n {
		total += 1 + r.rand.IntN(faces)
	}
	return total
}

// Range returns a random number in [lo, hi). It returns lo if the range is
// empty.
func (r *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rand.IntN(hi-lo)
}

// Float64 returns a random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// Shuffle pseudo-randomizes the order of n elements.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.rand.Shuffle(n, swap)
}

// Uint64 returns a random 64 bit value, used to derive sub-seeds.
func (r *RNG) Uint64() uint64 {
	return r.rand.Uint64()
}
