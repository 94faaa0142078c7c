package core

import (
	"fmt"

	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
)

// Priority weights a band's contribution to a multi-band composite
// reconstruction (spec.md §4.3).
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// PriorityWeight returns the raw (pre-normalization) composite weight for a
// priority tier, per spec.md §4.3: high=1.0, medium=0.7, low=0.4.
func PriorityWeight(p Priority) float64 {
	switch p {
	case PriorityHigh:
		return 1.0
	case PriorityMedium:
		return 0.7
	case PriorityLow:
		return 0.4
	default:
		return 0
	}
}

// BandSpec names a wavelength window to isolate during decomposition.
type BandSpec struct {
	Name           string
	WavelengthMinM float64
	WavelengthMaxM float64
	Priority       Priority
}

// Validate checks 0 < min < max.
func (b BandSpec) Validate() error {
	if b.WavelengthMinM <= 0 || b.WavelengthMinM >= b.WavelengthMaxM {
		return geomerr.InvalidInput(fmt.Errorf(
			"band %q: invalid wavelength range [%.3f, %.3f]", b.Name, b.WavelengthMinM, b.WavelengthMaxM))
	}

	return nil
}

// RailType identifies the measurement chord convention.
type RailType int

const (
	RailConventional RailType = iota // 20 m chord eccentric default
	RailShinkansen                   // 40 m chord eccentric default
)

// FilterSpec configures the inverse filter's restoration band and
// transition shape (spec.md §4.2).
type FilterSpec struct {
	LowerWavelengthM float64
	UpperWavelengthM float64
	FilterOrder      int
	StopbandAtt      float64 // alpha, in (0, 1)
	TransitionWidth  float64 // t, in (0, 1)
	RailType         RailType
}

// Normalize validates and corrects a FilterSpec in place per spec.md §4.2:
// an even FilterOrder is rounded up to the next odd value (with a notice),
// everything else is a hard validation failure.
func (f *FilterSpec) Normalize() (notice string, err error) {
	if f.LowerWavelengthM <= 0 || f.UpperWavelengthM <= 0 {
		return "", geomerr.InvalidInput(fmt.Errorf("filter wavelengths must be positive"))
	}

	if f.LowerWavelengthM >= f.UpperWavelengthM {
		return "", geomerr.InvalidInput(fmt.Errorf(
			"lower wavelength %.3f must be < upper wavelength %.3f", f.LowerWavelengthM, f.UpperWavelengthM))
	}

	if f.FilterOrder < 3 {
		return "", geomerr.InvalidInput(fmt.Errorf("filter_order %d must be >= 3", f.FilterOrder))
	}

	if f.StopbandAtt <= 0 || f.StopbandAtt >= 1 {
		return "", geomerr.InvalidInput(fmt.Errorf("stopband_att %.4f must be in (0,1)", f.StopbandAtt))
	}

	if f.TransitionWidth <= 0 || f.TransitionWidth >= 1 {
		return "", geomerr.InvalidInput(fmt.Errorf("transition_width %.4f must be in (0,1)", f.TransitionWidth))
	}

	if f.FilterOrder%2 == 0 {
		f.FilterOrder++
		notice = fmt.Sprintf("filter_order rounded up to next odd value %d", f.FilterOrder)
	}

	return notice, nil
}

// ChordMetersFor returns the default eccentric-versine chord length for a
// rail type: 20 m conventional, 40 m shinkansen (spec.md §4.2).
func ChordMetersFor(r RailType) float64 {
	if r == RailShinkansen {
		return 40
	}

	return 20
}
