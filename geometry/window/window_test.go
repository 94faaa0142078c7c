package window_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeom/geometry/window"
)

func TestGenerateRectangularIsAllOnes(t *testing.T) {
	coeffs := window.Generate(window.TypeRectangular, 8)

	for i, c := range coeffs {
		if c != 1 {
			t.Fatalf("index %d: rectangular coefficient = %v, want 1", i, c)
		}
	}
}

func TestGenerateHannEndpointsNearZero(t *testing.T) {
	coeffs := window.Generate(window.TypeHann, 16)

	if math.Abs(coeffs[0]) > 1e-9 {
		t.Fatalf("Hann window first coefficient = %v, want ~0", coeffs[0])
	}

	if math.Abs(coeffs[len(coeffs)-1]) > 1e-9 {
		t.Fatalf("Hann window last coefficient = %v, want ~0", coeffs[len(coeffs)-1])
	}
}

func TestApplyScalesBySelectedWindow(t *testing.T) {
	buf := make([]float64, 16)
	for i := range buf {
		buf[i] = 1
	}

	window.Apply(window.TypeHann, buf)

	coeffs := window.Generate(window.TypeHann, 16)
	for i := range buf {
		if math.Abs(buf[i]-coeffs[i]) > 1e-9 {
			t.Fatalf("index %d: applied value %v, want %v", i, buf[i], coeffs[i])
		}
	}
}

func TestAnalyzeRectangularHasUnitCoherentGain(t *testing.T) {
	coeffs := window.Generate(window.TypeRectangular, 64)
	analysis := window.Analyze(coeffs)

	if math.Abs(analysis.CoherentGain-1) > 1e-9 {
		t.Fatalf("CoherentGain = %v, want 1", analysis.CoherentGain)
	}

	if math.Abs(analysis.ENBW-1) > 1e-6 {
		t.Fatalf("ENBW = %v, want 1 for a rectangular window", analysis.ENBW)
	}
}

func TestHannTaperBounds(t *testing.T) {
	if window.HannTaper(0) != 0 {
		t.Fatalf("HannTaper(0) = %v, want 0", window.HannTaper(0))
	}

	if math.Abs(window.HannTaper(1)-1) > 1e-9 {
		t.Fatalf("HannTaper(1) = %v, want 1", window.HannTaper(1))
	}

	if window.HannTaper(-5) != window.HannTaper(0) {
		t.Fatalf("HannTaper should clamp below 0")
	}

	if window.HannTaper(5) != window.HannTaper(1) {
		t.Fatalf("HannTaper should clamp above 1")
	}
}
