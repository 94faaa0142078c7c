package curve_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/curve"
)

func buildStraightTrace(n int, spacing float64, noise float64) core.Trace {
	values := make([]float64, n)

	for i := range values {
		values[i] = noise * math.Sin(float64(i)*0.7)
	}

	return core.FromValues(values, 0, spacing)
}

func TestTheoreticalVersine10mChord(t *testing.T) {
	v := curve.TheoreticalVersine10mChord(600)
	want := (10.0 * 10.0 * 1000) / (8 * 600)

	if math.Abs(v-want) > 1e-9 {
		t.Fatalf("TheoreticalVersine10mChord(600) = %v, want %v", v, want)
	}
}

func TestSubtractReducesRMSInsideCurve(t *testing.T) {
	spacing := 1.0
	n := 400
	trace := buildStraightTrace(n, spacing, 0.2)

	curves := []core.CurveElement{
		{
			StartM:  100,
			EndM:    300,
			RadiusM: 600,
			Transition: &core.Transition{
				StartM:   100,
				LengthM:  40,
				EndM:     140,
				Type:     core.TransitionClothoid,
			},
		},
	}

	// inject the theoretical versine itself into the trace so subtraction
	// should remove most of it, leaving only the noise floor.
	vc := curve.TheoreticalVersine10mChord(600)
	injected := make([]float64, n)
	copy(injected, trace.Values())

	for i, s := range trace {
		if s.Position >= 140 && s.Position <= 260 {
			injected[i] += vc
		}
	}

	withCurve := trace.WithValues(injected)

	result, warnings, err := curve.Subtract(withCurve, curves, curve.DefaultCorrectionWeights())
	if err != nil {
		t.Fatalf("Subtract returned error: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if result.RMSAfter >= result.RMSBefore {
		t.Fatalf("expected RMS reduction, got before=%v after=%v", result.RMSBefore, result.RMSAfter)
	}

	if result.ImprovementRatio <= 0 {
		t.Fatalf("expected positive improvement ratio, got %v", result.ImprovementRatio)
	}

	if result.FractionInCurves <= 0 || result.FractionInCurves >= 1 {
		t.Fatalf("expected fraction strictly between 0 and 1, got %v", result.FractionInCurves)
	}
}

func TestSubtractRejectsCurveWithStartAfterEnd(t *testing.T) {
	trace := buildStraightTrace(100, 1.0, 0.1)

	curves := []core.CurveElement{
		{StartM: 10, EndM: 5, RadiusM: 500},
	}

	_, _, err := curve.Subtract(trace, curves, curve.DefaultCorrectionWeights())
	if err == nil {
		t.Fatalf("expected error for curve with start after end")
	}
}

func TestShapeFunctionsBoundBetweenZeroAndOne(t *testing.T) {
	transitions := []core.TransitionType{
		core.TransitionClothoid,
		core.TransitionCubic,
		core.TransitionSine,
		core.TransitionLinear,
	}

	trace := buildStraightTrace(200, 1.0, 0)

	for _, tt := range transitions {
		curves := []core.CurveElement{
			{
				StartM:  20,
				EndM:    100,
				RadiusM: 500,
				Transition: &core.Transition{
					StartM:  20,
					LengthM: 20,
					EndM:    40,
					Type:    tt,
				},
			},
		}

		result, _, err := curve.Subtract(trace, curves, curve.DefaultCorrectionWeights())
		if err != nil {
			t.Fatalf("type %v: unexpected error: %v", tt, err)
		}

		for _, s := range result.Theoretical {
			if s.Value < -1 || s.Value > curve.TheoreticalVersine10mChord(500)+1 {
				t.Fatalf("type %v: theoretical versine %v out of expected bounds", tt, s.Value)
			}
		}
	}
}
