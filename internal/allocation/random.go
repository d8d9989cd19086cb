// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package allocation

import "math/rand/v2"

// RandomSource supplies the random offset. IntN returns a value in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// globalSource draws from the process-wide, automatically seeded generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewRandomSource returns the unseeded source used in production.
func NewRandomSource() RandomSource {
	return globalSource{}
}

// NewSeededSource returns a reproducible source: the same seed always yields
// the same sequence of offsets.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FixedSource always returns its value, clamped into [0, n).
type FixedSource int

// IntN implements RandomSource.
func (f FixedSource) IntN(n int) int {
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
