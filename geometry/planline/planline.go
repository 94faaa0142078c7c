// Package planline implements the plan-line generator component of
// spec.md §4.6: zero-cross detection, Gaussian smoothing, long-wavelength
// emphasis, movement clamping, edge tapering, and an optional convex-mode
// bias, plus the statistics and validation flags a generated plan line is
// reported with.
package planline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
	"github.com/cwbudde/algo-trackgeom/internal/vecmath"
)

// ZeroCross is one sign change between adjacent samples, reported at its
// fractional position per spec.md §4.6.
type ZeroCross struct {
	Position float64
}

// DetectZeroCrossings finds interior sign changes in t's values, reporting
// p = x_i + Δ*|v_i|/(|v_i|+|v_{i+1}|), per spec.md §4.6.
func DetectZeroCrossings(t core.Trace) []ZeroCross {
	spacing := t.Spacing()

	var crossings []ZeroCross

	for i := 0; i < len(t)-1; i++ {
		vi, vj := t[i].Value, t[i+1].Value
		if vi == 0 || (vi > 0) == (vj > 0) {
			continue
		}

		denom := math.Abs(vi) + math.Abs(vj)
		if denom == 0 {
			continue
		}

		frac := spacing * math.Abs(vi) / denom
		crossings = append(crossings, ZeroCross{Position: t[i].Position + frac})
	}

	return crossings
}

// GaussianSmooth applies the symmetric Gaussian moving average of spec.md
// §4.6: radius W = max(3, floor(N*s*0.1)) samples (s the smoothing factor
// in [0,1]), weights exp(-j^2*9/(2*W^2)) for j in [-W,W], renormalized per
// sample at the boundaries where the window is clipped.
func GaussianSmooth(values []float64, smoothingFactor float64) []float64 {
	n := len(values)

	w := int(math.Floor(float64(n) * smoothingFactor * 0.1))
	if w < 3 {
		w = 3
	}

	return smoothWithRadius(values, w)
}

// LongWavelengthEmphasis re-applies the same Gaussian smoothing kernel
// with a radius derived from a target wavelength: round(lambdaLong/Δ),
// defaulting to lambdaLong=40 m, per spec.md §4.6.
func LongWavelengthEmphasis(values []float64, spacing, lambdaLongM float64) []float64 {
	if lambdaLongM <= 0 {
		lambdaLongM = 40
	}

	w := int(math.Round(lambdaLongM / spacing))
	if w < 1 {
		w = 1
	}

	return smoothWithRadius(values, w)
}

func smoothWithRadius(values []float64, w int) []float64 {
	n := len(values)
	out := make([]float64, n)

	wf := float64(w)

	for i := 0; i < n; i++ {
		var sum, weightSum float64

		for j := -w; j <= w; j++ {
			idx := i + j
			if idx < 0 || idx >= n {
				continue
			}

			weight := math.Exp(-float64(j*j) * 9 / (2 * wf * wf))
			sum += weight * values[idx]
			weightSum += weight
		}

		if weightSum == 0 {
			out[i] = values[i]
			continue
		}

		out[i] = sum / weightSum
	}

	return out
}

// ClampConfig bounds how far a plan line may deviate from the restored
// trace it rides on, per spec.md §4.6's movement clamp.
type ClampConfig struct {
	MaxUpMM   float64
	MaxDownMM float64
}

// DefaultClampConfig returns the spec.md §4.6 defaults: max_up=50 mm,
// max_down=10 mm.
func DefaultClampConfig() ClampConfig {
	return ClampConfig{MaxUpMM: 50, MaxDownMM: 10}
}

// ClampMovement clips each plan[i] to [restored[i]-MaxDownMM,
// restored[i]+MaxUpMM], per spec.md §4.6.
func ClampMovement(plan, restored []float64, cfg ClampConfig) []float64 {
	out := make([]float64, len(plan))

	for i := range plan {
		lo := restored[i] - cfg.MaxDownMM
		hi := restored[i] + cfg.MaxUpMM
		out[i] = core.Clamp(plan[i], lo, hi)
	}

	return out
}

// EdgeTaper linearly blends the first and last E = min(20, floor(0.05*N))
// samples toward the inner boundary value, per spec.md §4.6.
func EdgeTaper(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	copy(out, values)

	e := int(math.Floor(0.05 * float64(n)))
	if e > 20 {
		e = 20
	}

	if e <= 0 || n == 0 {
		return out
	}

	inner := values[e]
	for i := 0; i < e && i < n; i++ {
		frac := float64(i) / float64(e)
		out[i] = values[i]*frac + inner*(1-frac)
	}

	innerEnd := values[n-1-e]
	for i := 0; i < e && n-1-i >= 0; i++ {
		idx := n - 1 - i
		frac := float64(i) / float64(e)
		out[idx] = values[idx]*frac + innerEnd*(1-frac)
	}

	return out
}

// ApplyConvexBias adds a triangular bias up to +20 mm peaking at the
// center of each of 10 equal segments, then smooths the result with
// smoothing factor 0.5, per spec.md §4.6's convex mode.
func ApplyConvexBias(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	copy(out, values)

	const segments = 10
	const peakMM = 20.0

	segLen := n / segments
	if segLen < 1 {
		return smoothWithRadius(out, 3)
	}

	bias := make([]float64, n)

	for seg := 0; seg < segments; seg++ {
		start := seg * segLen

		end := start + segLen
		if seg == segments-1 {
			end = n
		}

		length := end - start
		if length <= 0 {
			continue
		}

		center := float64(length-1) / 2

		for i := start; i < end; i++ {
			dist := math.Abs(float64(i-start) - center)
			bias[i] = peakMM * (1 - dist/(center+1))
		}
	}

	vecmath.AddBlockInPlace(out, bias)

	return smoothWithRadius(out, int(math.Max(3, float64(n)*0.5*0.1)))
}

// Statistics reports the summary the host uses to judge a generated plan
// line, per spec.md §4.6.
type Statistics struct {
	RaisedCount  int
	LoweredCount int
	RaiseRatio   float64
	LowerRatio   float64
	MaxRaiseMM   float64
	MaxLowerMM   float64
	AvgRaiseMM   float64
	AvgLowerMM   float64
	Variance     float64
}

// ComputeStatistics compares plan against restored sample by sample, per
// spec.md §4.6's threshold of 0.1 mm for "raised" vs "lowered".
func ComputeStatistics(plan, restored []float64) Statistics {
	const threshold = 0.1

	var (
		raisedCount, loweredCount int
		maxRaise, maxLower        float64
		sumRaise, sumLower        float64
	)

	n := len(plan)
	diffs := make([]float64, n)

	for i := range plan {
		d := plan[i] - restored[i]
		diffs[i] = d

		switch {
		case d > threshold:
			raisedCount++
			sumRaise += d

			if d > maxRaise {
				maxRaise = d
			}
		case d < -threshold:
			loweredCount++
			sumLower += -d

			if -d > maxLower {
				maxLower = -d
			}
		}
	}

	avgRaise := 0.0
	if raisedCount > 0 {
		avgRaise = sumRaise / float64(raisedCount)
	}

	avgLower := 0.0
	if loweredCount > 0 {
		avgLower = sumLower / float64(loweredCount)
	}

	ratio := func(c int) float64 {
		if n == 0 {
			return 0
		}

		return float64(c) / float64(n)
	}

	var variance float64
	if n > 0 {
		var mean float64
		for _, d := range diffs {
			mean += d
		}

		mean /= float64(n)

		for _, d := range diffs {
			variance += (d - mean) * (d - mean)
		}

		variance /= float64(n)
	}

	return Statistics{
		RaisedCount:  raisedCount,
		LoweredCount: loweredCount,
		RaiseRatio:   ratio(raisedCount),
		LowerRatio:   ratio(loweredCount),
		MaxRaiseMM:   maxRaise,
		MaxLowerMM:   maxLower,
		AvgRaiseMM:   avgRaise,
		AvgLowerMM:   avgLower,
		Variance:     variance,
	}
}

// Validate checks the statistics against spec.md §4.6's validation flags,
// returning errors for hard failures and warnings for soft ones.
func Validate(s Statistics) (warnings []string, err error) {
	if s.RaiseRatio < 0.3 {
		return nil, geomerr.Geometry(fmt.Errorf("raise ratio %.3f below minimum 0.3", s.RaiseRatio))
	}

	if s.RaiseRatio < 0.5 {
		warnings = append(warnings, fmt.Sprintf("raise ratio %.3f below recommended 0.5", s.RaiseRatio))
	}

	if s.MaxRaiseMM > 60 {
		warnings = append(warnings, fmt.Sprintf("max raise %.3f mm exceeds 60 mm", s.MaxRaiseMM))
	}

	if s.MaxLowerMM > 20 {
		warnings = append(warnings, fmt.Sprintf("max lower %.3f mm exceeds 20 mm", s.MaxLowerMM))
	}

	if s.Variance < 1 {
		warnings = append(warnings, fmt.Sprintf("plan line variance %.3f is flat (< 1)", s.Variance))
	}

	return warnings, nil
}
