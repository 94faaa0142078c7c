// Package interp provides linear interpolation of a sampled trace at
// arbitrary longitudinal positions, with clamp-to-endpoint behavior outside
// the sampled range. Adapted from the teacher's dsp/interp package, trimmed
// to the order-1 (linear) path: the correlation aligner and transition
// blender only ever need linear interpolation of resampled positions, never
// the teacher's 4-point Hermite path (which assumed a fixed-rate audio
// buffer, not an arbitrary position query).
package interp

import "sort"

// Linear interpolates values sampled at positions onto each of the query
// positions. positions must be strictly increasing. Queries outside
// [positions[0], positions[len-1]] clamp to the nearest endpoint value, per
// spec.md §4.5's "out-of-range positions clamp to the nearest endpoint
// value".
func Linear(positions, values, queries []float64) []float64 {
	out := make([]float64, len(queries))

	n := len(positions)
	if n == 0 {
		return out
	}

	if n == 1 {
		for i := range out {
			out[i] = values[0]
		}

		return out
	}

	for i, q := range queries {
		out[i] = LinearAt(positions, values, q)
	}

	return out
}

// LinearAt interpolates a single query position.
func LinearAt(positions, values []float64, q float64) float64 {
	n := len(positions)
	if n == 0 {
		return 0
	}

	if n == 1 {
		return values[0]
	}

	if q <= positions[0] {
		return values[0]
	}

	if q >= positions[n-1] {
		return values[n-1]
	}

	// Find the first index with positions[idx] >= q.
	idx := sort.Search(n, func(i int) bool { return positions[i] >= q })

	if positions[idx] == q {
		return values[idx]
	}

	lo, hi := idx-1, idx
	span := positions[hi] - positions[lo]

	if span <= 0 {
		return values[lo]
	}

	frac := (q - positions[lo]) / span

	return values[lo] + frac*(values[hi]-values[lo])
}

// InRange reports whether q falls within [positions[0], positions[len-1]].
func InRange(positions []float64, q float64) bool {
	if len(positions) == 0 {
		return false
	}

	return q >= positions[0] && q <= positions[len(positions)-1]
}
