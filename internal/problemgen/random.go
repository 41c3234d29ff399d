package problemgen

import "math/rand/v2"

// Source is the randomness the generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a deterministic source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a source with a random seed.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// intBetween returns a uniform int in [lo, hi].
func intBetween(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
