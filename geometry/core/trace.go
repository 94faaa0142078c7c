package core

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
)

// Sample is a single measurement: a longitudinal position in meters and a
// versine/offset value in millimeters.
type Sample struct {
	Position float64 // meters
	Value    float64 // millimeters
}

// Trace is an ordered sequence of Samples on a uniform longitudinal grid.
// Positions are strictly increasing; spacing is validated to a fixed
// tolerance (DefaultSpacingTolerance) by Validate.
type Trace []Sample

// DefaultSpacingTolerance is the maximum allowed deviation, in meters,
// between consecutive sample spacings before a Trace is rejected as
// non-uniform (spec.md §6).
const DefaultSpacingTolerance = 1e-6

// Positions returns the position column of the trace as a plain slice.
func (t Trace) Positions() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Position
	}

	return out
}

// Values returns the value column of the trace as a plain slice.
func (t Trace) Values() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Value
	}

	return out
}

// Spacing returns the nominal sample spacing, derived from the first two
// samples. Returns 0 for traces shorter than 2 samples.
func (t Trace) Spacing() float64 {
	if len(t) < 2 {
		return 0
	}

	return t[1].Position - t[0].Position
}

// FromValues builds a Trace from a value slice on a uniform grid starting
// at startPos with the given spacing.
func FromValues(values []float64, startPos, spacing float64) Trace {
	out := make(Trace, len(values))
	for i, v := range values {
		out[i] = Sample{Position: startPos + float64(i)*spacing, Value: v}
	}

	return out
}

// WithValues returns a copy of the trace with values replaced; positions are
// preserved. Panics if len(values) != len(t), which indicates a programming
// error in a pipeline stage rather than a recoverable input fault.
func (t Trace) WithValues(values []float64) Trace {
	if len(values) != len(t) {
		panic(fmt.Sprintf("core: WithValues length mismatch: trace=%d values=%d", len(t), len(values)))
	}

	out := make(Trace, len(t))
	for i := range t {
		out[i] = Sample{Position: t[i].Position, Value: values[i]}
	}

	return out
}

// Validate checks the minimum-length and uniform-spacing invariants shared
// by all pipeline stages, failing fast per spec.md §6.
func (t Trace) Validate(minLen int) error {
	if len(t) < minLen {
		return geomerr.InvalidInput(fmt.Errorf("trace length %d below minimum %d", len(t), minLen))
	}

	if len(t) < 2 {
		return nil
	}

	spacing := t.Spacing()
	if spacing <= 0 {
		return geomerr.InvalidInput(fmt.Errorf("non-positive sample spacing %g", spacing))
	}

	for i := 1; i < len(t); i++ {
		if t[i].Position <= t[i-1].Position {
			return geomerr.InvalidInput(fmt.Errorf("positions not strictly increasing at index %d", i))
		}

		got := t[i].Position - t[i-1].Position
		if math.Abs(got-spacing) > DefaultSpacingTolerance {
			return geomerr.InvalidInput(fmt.Errorf(
				"non-uniform spacing at index %d: got %.9f, expected %.9f", i, got, spacing))
		}
	}

	return nil
}
