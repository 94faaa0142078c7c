// Package window provides the small set of analysis/taper window functions
// used by the band-pass decomposer, curve subtractor and blender: Hann, Hamming,
// Blackman, and rectangular. Adapted from the teacher's dsp/window package,
// trimmed from its ~30 window-type catalogue (audio spectral-analysis
// windows with no use here) down to the four spec.md §2 actually names.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

var cosineCoeffs = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, 0.5},
	TypeHamming:     {0.54, 0.46},
	TypeBlackman:    {0.42, 0.5, 0.08},
}

// Generate returns window coefficients of the given length in symmetric
// (non-periodic) form.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	coeffs, ok := cosineCoeffs[t]
	if !ok {
		coeffs = cosineCoeffs[TypeRectangular]
	}

	out := make([]float64, length)
	den := float64(length - 1)

	if length == 1 {
		den = 1
	}

	for i := range out {
		x := float64(i) / den
		out[i] = cosineSum(x, coeffs)
	}

	return out
}

// cosineSum evaluates sum_k coeffs[k] * (-1)^k * cos(k * 2*pi*x), which
// reduces to the classic alternating-sign Hann/Hamming/Blackman family when
// coeffs holds their standard coefficients.
func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	sign := 1.0

	for k, c := range coeffs {
		sum += sign * c * math.Cos(float64(k)*phase)
		sign = -sign
	}

	return sum
}

// Apply multiplies buf in-place by the selected window, using
// algo-vecmath's SIMD-dispatching block multiply.
func Apply(t Type, buf []float64) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf))
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCopy returns a new slice holding src multiplied by the selected
// window, leaving src untouched.
func ApplyCopy(t Type, src []float64) []float64 {
	coeffs := Generate(t, len(src))
	out := make([]float64, len(src))
	vecmath.MulBlock(out, src, coeffs)

	return out
}

// HannTaper returns a single raised-cosine ramp value for p in [0,1]:
// 0 at p=0, 1 at p=1, the rising half of the Hann shape rather than a full
// analysis window. Used by the curve subtractor as its sine-type transition
// easement function (spec.md §4.4).
func HannTaper(p float64) float64 {
	p = math.Max(0, math.Min(1, p))

	return 0.5 * (1 - math.Cos(math.Pi*p))
}
