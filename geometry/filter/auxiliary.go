package filter

import (
	"math"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
)

// VersineToEccentric converts a symmetric-chord versine trace to an
// eccentric versine using chord offset o, per spec.md §4.2:
// e[i] = v[i] - (v[i-o] + v[i+o])/2, where o = round((chord/2)/spacing).
// Boundary samples (where i-o or i+o falls outside the trace) pass through
// unchanged.
func VersineToEccentric(v []float64, chordM, spacing float64) []float64 {
	o := int(math.Round((chordM / 2) / spacing))

	out := make([]float64, len(v))
	for i := range v {
		if i-o < 0 || i+o >= len(v) {
			out[i] = v[i]
			continue
		}

		out[i] = v[i] - (v[i-o]+v[i+o])/2
	}

	return out
}

// VerticalCurveCorrection subtracts the vertical-curve versine bias
// Δ²/(2R)*1000 mm from interior samples, per spec.md §4.2. R defaults to
// 3000 m, switching to 4000 m where the adjacent gradient change (the
// second difference of the grade) exceeds 10 per mille. gradeChangePerMille
// must have the same length as v; pass nil to always use the default
// radius.
func VerticalCurveCorrection(v []float64, spacing float64, gradeChangePerMille []float64) []float64 {
	const (
		defaultR = 3000.0
		steepR   = 4000.0
		steepThresholdPerMille = 10.0
	)

	out := make([]float64, len(v))
	copy(out, v)

	for i := 1; i < len(v)-1; i++ {
		r := defaultR
		if gradeChangePerMille != nil && i < len(gradeChangePerMille) &&
			math.Abs(gradeChangePerMille[i]) > steepThresholdPerMille {
			r = steepR
		}

		deltaSq := spacing * spacing
		out[i] = v[i] - (deltaSq/(2*r))*1000
	}

	return out
}

// MTTDerivative computes the multiple-tie-tamper three-point difference
// m[i] = r[i] - (w*r[i-b-c] + (1-w)*r[i-c]), where b and c are the BC/CD
// sample counts and w = BC/(BC+CD), per spec.md §4.2.
func MTTDerivative(r []float64, bcSamples, cdSamples int) []float64 {
	b, c := bcSamples, cdSamples
	total := b + c

	w := 0.5
	if total > 0 {
		w = float64(b) / float64(total)
	}

	out := make([]float64, len(r))

	for i := range r {
		idxBC := i - b - c
		idxC := i - c

		var left, right float64
		if idxBC >= 0 {
			left = r[idxBC]
		}

		if idxC >= 0 {
			right = r[idxC]
		}

		out[i] = r[i] - (w*left + (1-w)*right)
	}

	return out
}

// CrossAdjustmentPreview applies the "one point moves, neighbors compensate
// by half" law from spec.md §4.2: for each displacement d[i], add d[i] at i
// and -d[i]/2 at i-1 and i+1.
func CrossAdjustmentPreview(base core.Trace, displacements []float64) core.Trace {
	out := make([]float64, len(base))
	copy(out, base.Values())

	for i, d := range displacements {
		if d == 0 {
			continue
		}

		out[i] += d

		if i-1 >= 0 {
			out[i-1] -= d / 2
		}

		if i+1 < len(out) {
			out[i+1] -= d / 2
		}
	}

	return base.WithValues(out)
}
