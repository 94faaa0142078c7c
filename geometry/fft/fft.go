// Package fft implements the FFT kernel component of spec.md §4.1: a
// forward/inverse transform with zero-padding to the next power of two,
// backed by algo-fft's radix-2 Cooley-Tukey plan — the same dependency the
// teacher uses in dsp/conv/correlate.go and dsp/conv/deconvolve.go for
// FFT-based correlation and deconvolution.
package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
)

// Forward computes the M-point DFT of a real input, zero-padded on the
// right to M = next_pow2(len(x)). Returns the M complex bins.
func Forward(x []float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("fft: empty input")
	}

	m := core.NextPow2(len(x))

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("fft: plan creation failed: %w", err)
	}

	padded := make([]complex128, m)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	out := make([]complex128, m)
	if err := plan.Forward(out, padded); err != nil {
		return nil, fmt.Errorf("fft: forward transform failed: %w", err)
	}

	return out, nil
}

// Inverse computes the real part of the scaled inverse DFT of an M-point
// complex spectrum (M must already be a power of two, as returned by
// Forward). Per spec.md §4.1 this is "conjugate-fft-conjugate-scale",
// which algo-fft's Plan64.Inverse already performs internally, so this is a
// thin real-part adapter rather than a reimplementation.
func Inverse(spectrum []complex128) ([]float64, error) {
	m := len(spectrum)
	if m == 0 {
		return nil, fmt.Errorf("fft: empty spectrum")
	}

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("fft: plan creation failed: %w", err)
	}

	out := make([]complex128, m)
	if err := plan.Inverse(out, spectrum); err != nil {
		return nil, fmt.Errorf("fft: inverse transform failed: %w", err)
	}

	realParts := make([]float64, m)
	for i, c := range out {
		realParts[i] = real(c)
	}

	return realParts, nil
}

// RoundTrip computes Inverse(Forward(x)) and truncates back to len(x)
// samples, exercising the FFT round-trip invariant of spec.md §8.1.
func RoundTrip(x []float64) ([]float64, error) {
	spectrum, err := Forward(x)
	if err != nil {
		return nil, err
	}

	full, err := Inverse(spectrum)
	if err != nil {
		return nil, err
	}

	return full[:len(x)], nil
}
