package decompose_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/decompose"
)

func sineTrace(n int, spacing, wavelength, amplitude float64) core.Trace {
	values := make([]float64, n)

	for i := range values {
		pos := float64(i) * spacing
		values[i] = amplitude * math.Sin(2*math.Pi*pos/wavelength)
	}

	return core.FromValues(values, 0, spacing)
}

func TestDecomposeIsolatesInBandEnergy(t *testing.T) {
	spacing := 0.25
	n := 1024

	shortWave := sineTrace(n, spacing, 4, 1.0)
	longWave := sineTrace(n, spacing, 60, 1.0)

	combined := make([]float64, n)
	for i := range combined {
		combined[i] = shortWave[i].Value + longWave[i].Value
	}

	trace := core.FromValues(combined, 0, spacing)

	band := core.BandSpec{
		Name:           "short",
		WavelengthMinM: 1,
		WavelengthMaxM: 10,
		Priority:       core.PriorityHigh,
	}

	result, err := decompose.Decompose(trace, band)
	if err != nil {
		t.Fatalf("Decompose returned error: %v", err)
	}

	if result.Stats.RMS <= 0 {
		t.Fatalf("expected nonzero RMS in short band, got %v", result.Stats.RMS)
	}

	// the long-wavelength component should be heavily attenuated relative
	// to the combined trace's RMS once passed through the short-wavelength
	// mask, since only the 4 m component falls inside [1, 10] m.
	if result.Stats.RMS >= 1.5 {
		t.Fatalf("unexpectedly large short-band RMS: %v", result.Stats.RMS)
	}
}

func TestDecomposeMultiProducesPriorityWeightedComposite(t *testing.T) {
	spacing := 0.25
	n := 1024

	trace := sineTrace(n, spacing, 20, 2.0)

	bands := []core.BandSpec{
		{Name: "short", WavelengthMinM: 1, WavelengthMaxM: 10, Priority: core.PriorityHigh},
		{Name: "mid", WavelengthMinM: 10, WavelengthMaxM: 30, Priority: core.PriorityMedium},
		{Name: "long", WavelengthMinM: 30, WavelengthMaxM: 120, Priority: core.PriorityLow},
	}

	result, err := decompose.DecomposeMulti(trace, bands)
	if err != nil {
		t.Fatalf("DecomposeMulti returned error: %v", err)
	}

	if len(result.Bands) != len(bands) {
		t.Fatalf("expected %d band results, got %d", len(bands), len(result.Bands))
	}

	if len(result.Composite) != n {
		t.Fatalf("composite length = %d, want %d", len(result.Composite), n)
	}

	for i, b := range result.Bands {
		if b.Band.Name != bands[i].Name {
			t.Fatalf("band %d: order mismatch, got %q want %q", i, b.Band.Name, bands[i].Name)
		}
	}
}

func TestDecomposeRejectsTraceShorterThanBand(t *testing.T) {
	trace := sineTrace(10, 1.0, 4, 1.0)

	band := core.BandSpec{
		Name:           "long",
		WavelengthMinM: 50,
		WavelengthMaxM: 100,
		Priority:       core.PriorityLow,
	}

	if _, err := decompose.Decompose(trace, band); err == nil {
		t.Fatalf("expected error for trace too short for requested band")
	}
}
