// Package shuffle returns randomly reordered copies of slices.
// The input slice is never modified.
package shuffle

import "math/rand/v2"

// Source yields uniform floats in [0, 1).
// *rand.Rand from both math/rand and math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Shuffle returns a uniformly random permutation of items using the
// process-wide generator. Results are not reproducible across calls.
func Shuffle[T any](items []T) []T {
	return ShuffleWith(globalSource{}, items)
}

// ShuffleWith returns a uniformly random permutation of items drawn from src.
// Fisher–Yates, walking from the last index down to 1.
func ShuffleWith[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		j := pick(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// pick maps a uniform float onto an index in [0, n).
// A misbehaving source is clamped rather than allowed to index out of range.
func pick(src Source, n int) int {
	j := int(src.Float64() * float64(n))
	if j < 0 {
		return 0
	}
	if j >= n {
		return n - 1
	}
	return j
}
