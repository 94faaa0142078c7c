// Package filter implements the inverse filter component of spec.md §4.2:
// a linear-phase FIR built from a KANA3-style piecewise frequency response
// that deconvolves the 10 m-chord versine measurement inside a configurable
// restoration wavelength band, plus the filter's auxiliary operations
// (versine->eccentric, vertical-curve correction, MTT derivative,
// cross-adjustment preview).
package filter

import (
	"math"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/internal/vecmath"
)

// Response evaluates the KANA3-style piecewise amplitude response |H(k)|
// at a wavelength lambda, per the table in spec.md §4.2.
//
//	lambdaSL = lambdaLow * (1 - t)
//	lambdaRL = lambdaLow
//	lambdaRU = lambdaHigh
//	lambdaSU = lambdaHigh * (1 + t)
func Response(lambda float64, spec core.FilterSpec) float64 {
	alpha := spec.StopbandAtt
	t := spec.TransitionWidth

	lambdaSL := spec.LowerWavelengthM * (1 - t)
	lambdaRL := spec.LowerWavelengthM
	lambdaRU := spec.UpperWavelengthM
	lambdaSU := spec.UpperWavelengthM * (1 + t)

	switch {
	case lambda < lambdaSL || lambda > lambdaSU:
		return alpha
	case lambda < lambdaRL:
		u := (lambda - lambdaSL) / (lambdaRL - lambdaSL)
		return alpha + (1-alpha)*(1+math.Cos(math.Pi*(1-u)))/2
	case lambda <= lambdaRU:
		return restorationGain(lambda)
	default: // lambdaRU < lambda <= lambdaSU
		u := (lambda - lambdaRU) / (lambdaSU - lambdaRU)
		return 1 + (alpha-1)*(1+math.Cos(math.Pi*u))/2
	}
}

// restorationGain returns 1/M(lambda) where M(lambda) = 1 - cos(10*pi/lambda),
// the inverse of the 10 m-chord versine sensor's own response. Near the
// sensor's own zero (M close to 0) the gain is clamped to 1 rather than
// blown up, per spec.md §4.2.
func restorationGain(lambda float64) float64 {
	m := 1 - math.Cos(10*math.Pi/lambda)
	if math.Abs(m) < 1e-3 {
		return 1
	}

	return 1 / m
}

// phaseAt returns the linear phase theta(k) for DFT index k of an N-length
// impulse response: theta(k) = -pi*(N-1)*k/N for k <= (N-1)/2, and
// theta(N-k) = -theta(k) by conjugate symmetry (spec.md §4.2).
func phaseAt(k, n int) float64 {
	return -math.Pi * float64(n-1) * float64(k) / float64(n)
}

// ImpulseResponse builds the symmetric FIR impulse response of length N
// (spec.md's "filter_order", normalized odd by FilterSpec.Normalize) from
// the piecewise KANA3 response, mapping DFT index k to wavelength via
// lambda = spacing * N / k, with k=0 treated as the DC amplitude.
func ImpulseResponse(spec core.FilterSpec, spacing float64) ([]float64, error) {
	if _, err := spec.Normalize(); err != nil {
		return nil, err
	}

	n := spec.FilterOrder
	half := (n - 1) / 2

	amps := make([]float64, half+1)
	phases := make([]float64, half+1)

	for k := 0; k <= half; k++ {
		var lambda float64
		if k == 0 {
			lambda = math.Inf(1)
		} else {
			lambda = spacing * float64(n) / float64(k)
		}

		amps[k] = Response(lambda, spec)
		phases[k] = phaseAt(k, n)
	}

	impulse := make([]float64, n)

	for sampleIdx := 0; sampleIdx < n; sampleIdx++ {
		sum := amps[0] * math.Cos(phases[0]) / float64(n)

		for k := 1; k <= half; k++ {
			sum += (2.0 / float64(n)) * amps[k] * math.Cos(phases[k]+2*math.Pi*float64(k*sampleIdx)/float64(n))
		}

		impulse[sampleIdx] = sum
	}

	return impulse, nil
}

// Restore convolves x with the inverse filter's impulse response using
// linear convolution, truncated (not reflected) at the boundaries per
// spec.md §9's documented open question: y[n] = sum_k I[k]*x[n-k+floor(N/2)],
// zero outside input bounds.
func Restore(x []float64, spec core.FilterSpec, spacing float64) ([]float64, error) {
	impulse, err := ImpulseResponse(spec, spacing)
	if err != nil {
		return nil, err
	}

	return ConvolveCentered(x, impulse), nil
}

// ConvolveCentered performs the centered, boundary-truncating linear
// convolution spec.md §4.2 specifies: y[n] = sum_k impulse[k] * x[n - k +
// floor(len(impulse)/2)], with out-of-bounds x samples treated as zero. The
// explicit truncation-at-the-edges behavior (spec.md §9's open question)
// rules out an FFT-based convolution, which wraps instead of truncating; a
// tap window is linearized into a reusable buffer and reduced with a SIMD
// dot product per output sample, the same shape as the teacher's
// dsp/filter/fir.Filter.ProcessBlockTo.
func ConvolveCentered(x, impulse []float64) []float64 {
	n := len(x)
	k := len(impulse)
	center := k / 2

	y := make([]float64, n)
	window := make([]float64, k)

	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			srcIdx := i - j + center
			if srcIdx < 0 || srcIdx >= n {
				window[j] = 0
				continue
			}

			window[j] = x[srcIdx]
		}

		y[i] = vecmath.DotProduct(impulse, window)
	}

	return y
}

// RestoreTrace applies Restore to a Trace, validating length and filter
// spec up front per spec.md §6/§7, and rounds the result to 3 decimal
// places at this stage boundary (spec.md §5).
func RestoreTrace(t core.Trace, spec core.FilterSpec) (core.Trace, string, error) {
	if err := t.Validate(3); err != nil {
		return nil, "", err
	}

	spacing := t.Spacing()

	specCopy := spec
	notice, err := specCopy.Normalize()

	if err != nil {
		return nil, "", err
	}

	y, err := Restore(t.Values(), specCopy, spacing)
	if err != nil {
		return nil, notice, err
	}

	return core.RoundTraceMM3(t.WithValues(y)), notice, nil
}
