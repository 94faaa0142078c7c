// Package blend implements the transition blender component of spec.md
// §4.7: joining two traces around a crossing position with a weighted
// blend function, auto-connecting a chain of segments, and placing a
// clothoid arc-entry/exit offset.
package blend

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
	"github.com/cwbudde/algo-trackgeom/geometry/interp"
	"github.com/cwbudde/algo-trackgeom/geometry/window"
)

// WeightFunc evaluates the blend weight w(t) for t in [0,1], per spec.md
// §4.7's four shapes.
type WeightFunc func(t float64) float64

// Cubic is w(t) = 3t^2 - 2t^3.
func Cubic(t float64) float64 { return 3*t*t - 2*t*t*t }

// Sine is w(t) = (1 - cos(pi*t))/2, the same raised-cosine ramp as
// window.HannTaper.
func Sine(t float64) float64 { return window.HannTaper(t) }

// Clothoid is w(t) = t^2*(3 - 2t).
func Clothoid(t float64) float64 { return t * t * (3 - 2*t) }

// Linear is w(t) = t.
func Linear(t float64) float64 { return t }

// Blend joins traces a and b around crossing position c over length L: for
// each position x in [c-L/2, c+L/2], with t = (x-(c-L/2))/L, y(x) =
// (1-w(t))*A(x) + w(t)*B(x), using linear interpolation of a and b with
// endpoint clamping outside their own ranges, per spec.md §4.7. Positions
// outside the blend window return a unchanged below it, b unchanged above
// it.
func Blend(a, b core.Trace, crossing, length float64, weight WeightFunc) (core.Trace, error) {
	if length <= 0 {
		return nil, geomerr.InvalidInput(fmt.Errorf("blend: length must be > 0, got %v", length))
	}

	if len(a) < 2 || len(b) < 2 {
		return nil, geomerr.InvalidInput(fmt.Errorf("blend: both traces need >= 2 samples"))
	}

	spacing := a.Spacing()

	start := crossing - length/2
	end := crossing + length/2

	aPositions, aValues := a.Positions(), a.Values()
	bPositions, bValues := b.Positions(), b.Values()

	var positions []float64

	for p := math.Min(aPositions[0], bPositions[0]); p <= math.Max(aPositions[len(aPositions)-1], bPositions[len(bPositions)-1])+spacing/2; p += spacing {
		positions = append(positions, p)
	}

	out := make(core.Trace, len(positions))

	for i, x := range positions {
		switch {
		case x < start:
			out[i] = core.Sample{Position: x, Value: interp.LinearAt(aPositions, aValues, x)}
		case x > end:
			out[i] = core.Sample{Position: x, Value: interp.LinearAt(bPositions, bValues, x)}
		default:
			t := (x - start) / length
			w := weight(t)
			av := interp.LinearAt(aPositions, aValues, x)
			bv := interp.LinearAt(bPositions, bValues, x)
			out[i] = core.Sample{Position: x, Value: (1-w)*av + w*bv}
		}
	}

	return core.RoundTraceMM3(out), nil
}

// Segment is one trace in an auto-connect chain.
type Segment struct {
	Trace core.Trace
}

// AutoConnect blends K adjacent segments, setting each crossing c to the
// midpoint of one segment's end and the next segment's start, per spec.md
// §4.7.
func AutoConnect(segments []Segment, length float64, weight WeightFunc) (core.Trace, error) {
	if len(segments) == 0 {
		return nil, geomerr.InvalidInput(fmt.Errorf("blend: AutoConnect requires at least one segment"))
	}

	current := segments[0].Trace

	for i := 1; i < len(segments); i++ {
		next := segments[i].Trace
		if len(current) == 0 || len(next) == 0 {
			return nil, geomerr.InvalidInput(fmt.Errorf("blend: AutoConnect segment %d is empty", i))
		}

		crossing := (current[len(current)-1].Position + next[0].Position) / 2

		blended, err := Blend(current, next, crossing, length, weight)
		if err != nil {
			return nil, err
		}

		current = blended
	}

	return current, nil
}

// CantGradientTransitionLength returns the required transition length
// from the cant gradient limit, per spec.md §4.7:
// L = min(200, 1067^2/R/15) / cant_gradient, clamped to [20, 100].
func CantGradientTransitionLength(radiusM, cantGradientMMPerM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, geomerr.InvalidInput(fmt.Errorf("blend: radius must be > 0, got %v", radiusM))
	}

	if cantGradientMMPerM <= 0 {
		return 0, geomerr.InvalidInput(fmt.Errorf("blend: cant gradient must be > 0, got %v", cantGradientMMPerM))
	}

	bound := math.Min(200, (1067.0*1067.0)/radiusM/15)
	length := bound / cantGradientMMPerM

	return core.Clamp(length, 20, 100), nil
}

// ClothoidOffset samples the curvature ramp kappa(s) = kappa0 +
// (kappa1-kappa0)*s/L and accumulates the offset integral∫kappa*s ds ≈
// kappa*s^2/2, per spec.md §4.7's clothoid placement rule, added to a
// start value.
func ClothoidOffset(startValue, kappa0, kappa1, length, s float64) float64 {
	if length <= 0 {
		return startValue
	}

	s = core.Clamp(s, 0, length)
	kappa := kappa0 + (kappa1-kappa0)*s/length

	return startValue + kappa*s*s/2
}
