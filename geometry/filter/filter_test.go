package filter_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/filter"
)

func testSpec() core.FilterSpec {
	return core.FilterSpec{
		LowerWavelengthM: 3,
		UpperWavelengthM: 25,
		FilterOrder:      31,
		StopbandAtt:      0.05,
		TransitionWidth:  0.2,
	}
}

func TestResponseIsStopbandFarOutsideBand(t *testing.T) {
	spec := testSpec()

	if got := filter.Response(1.0, spec); got != spec.StopbandAtt {
		t.Fatalf("Response(1.0) = %v, want stopband attenuation %v", got, spec.StopbandAtt)
	}

	if got := filter.Response(100.0, spec); got != spec.StopbandAtt {
		t.Fatalf("Response(100.0) = %v, want stopband attenuation %v", got, spec.StopbandAtt)
	}
}

func TestResponseInsideRestorationBandIsPositive(t *testing.T) {
	spec := testSpec()

	got := filter.Response(10, spec)
	if got <= 0 {
		t.Fatalf("Response(10) = %v, want a positive restoration gain", got)
	}
}

func TestImpulseResponseIsSymmetric(t *testing.T) {
	spec := testSpec()

	impulse, err := filter.ImpulseResponse(spec, 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(impulse)
	if n != spec.FilterOrder {
		t.Fatalf("impulse length = %d, want %d", n, spec.FilterOrder)
	}

	for i := 0; i < n/2; i++ {
		if math.Abs(impulse[i]-impulse[n-1-i]) > 1e-9 {
			t.Fatalf("impulse not symmetric at index %d: %v vs %v", i, impulse[i], impulse[n-1-i])
		}
	}
}

func TestImpulseResponseRoundsUpEvenOrder(t *testing.T) {
	spec := testSpec()
	spec.FilterOrder = 30

	impulse, err := filter.ImpulseResponse(spec, 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(impulse) != 31 {
		t.Fatalf("impulse length = %d, want 31 (order rounded up)", len(impulse))
	}
}

func TestConvolveCenteredTruncatesAtBoundaries(t *testing.T) {
	x := []float64{1, 1, 1, 1, 1}
	impulse := []float64{1, 1, 1} // center index 1

	y := filter.ConvolveCentered(x, impulse)

	if len(y) != len(x) {
		t.Fatalf("output length = %d, want %d", len(y), len(x))
	}

	// interior samples sum all three taps against a constant signal
	if y[2] != 3 {
		t.Fatalf("y[2] = %v, want 3 (full overlap in the interior)", y[2])
	}

	// the first sample only has two in-bounds taps (center and right)
	if y[0] != 2 {
		t.Fatalf("y[0] = %v, want 2 (truncated, not reflected, at the left edge)", y[0])
	}
}

func TestRestoreTraceRejectsShortTrace(t *testing.T) {
	short := core.FromValues([]float64{1, 2}, 0, 0.25)
	spec := testSpec()

	if _, _, err := filter.RestoreTrace(short, spec); err == nil {
		t.Fatalf("expected error for a trace shorter than minimum")
	}
}

func TestRestoreTraceReturnsNoticeOnEvenOrder(t *testing.T) {
	values := make([]float64, 64)
	for i := range values {
		values[i] = math.Sin(float64(i) * 0.2)
	}

	trace := core.FromValues(values, 0, 0.25)
	spec := testSpec()
	spec.FilterOrder = 30

	_, notice, err := filter.RestoreTrace(trace, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if notice == "" {
		t.Fatalf("expected a notice about the rounded filter order")
	}
}

func TestVersineToEccentricPassesThroughBoundaries(t *testing.T) {
	v := []float64{1, 2, 3, 4, 5}

	out := filter.VersineToEccentric(v, 2, 1) // o = 1

	if out[0] != v[0] || out[len(v)-1] != v[len(v)-1] {
		t.Fatalf("boundary samples should pass through unchanged, got %v", out)
	}

	want := v[2] - (v[1]+v[3])/2
	if out[2] != want {
		t.Fatalf("out[2] = %v, want %v", out[2], want)
	}
}

func TestVerticalCurveCorrectionLeavesEndpointsUnchanged(t *testing.T) {
	v := []float64{0, 0, 0, 0, 0}

	out := filter.VerticalCurveCorrection(v, 1, nil)

	if out[0] != v[0] || out[len(v)-1] != v[len(v)-1] {
		t.Fatalf("endpoints should be unchanged, got %v", out)
	}

	if out[2] >= v[2] {
		t.Fatalf("interior sample should be reduced by the vertical-curve bias, got %v", out[2])
	}
}

func TestMTTDerivativeUnchangedWhenNoHistory(t *testing.T) {
	r := []float64{5, 5, 5}

	out := filter.MTTDerivative(r, 1, 1)

	if out[0] != 5 {
		t.Fatalf("out[0] = %v, want r[0] unchanged when no history is available", out[0])
	}
}

func TestCrossAdjustmentPreviewAppliesHalfCompensation(t *testing.T) {
	base := core.FromValues([]float64{0, 0, 0, 0, 0}, 0, 1)
	displacements := []float64{0, 0, 10, 0, 0}

	out := filter.CrossAdjustmentPreview(base, displacements)

	if out[2].Value != 10 {
		t.Fatalf("out[2] = %v, want 10", out[2].Value)
	}

	if out[1].Value != -5 || out[3].Value != -5 {
		t.Fatalf("neighbors = %v/%v, want -5/-5", out[1].Value, out[3].Value)
	}
}
