package core

import (
	"fmt"

	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
)

// TransitionType identifies the spiral shape used to ramp versine between
// tangent and circular arc.
type TransitionType int

const (
	TransitionClothoid TransitionType = iota
	TransitionCubic
	TransitionSine
	TransitionLinear
)

// Transition describes the spiral easement at one or both ends of a curve
// element.
type Transition struct {
	StartM  float64
	LengthM float64
	EndM    float64
	Type    TransitionType
}

// CurveElement describes one circular-arc-with-transitions curve, as
// supplied by the host as metadata (spec.md: "curves are supplied as
// metadata", not detected).
type CurveElement struct {
	StartM     float64
	EndM       float64
	RadiusM    float64
	Transition *Transition // nil if the curve has no eased entry/exit
}

// ValidateCurveElements checks the invariants of spec.md §3: start < end,
// radius > 0, transition length <= half the curve length. Overlap between
// curves is reported as a warning, never a hard error.
func ValidateCurveElements(curves []CurveElement) (warnings []string, err error) {
	for i, c := range curves {
		if c.StartM >= c.EndM {
			return nil, geomerr.Geometry(fmt.Errorf("curve %d: start_m %.3f >= end_m %.3f", i, c.StartM, c.EndM))
		}

		if c.RadiusM <= 0 {
			return nil, geomerr.Geometry(fmt.Errorf("curve %d: radius_m %.3f must be > 0", i, c.RadiusM))
		}

		if c.Transition != nil {
			half := (c.EndM - c.StartM) / 2
			if c.Transition.LengthM > half {
				return nil, geomerr.Geometry(fmt.Errorf(
					"curve %d: transition length %.3f exceeds half the curve length %.3f", i, c.Transition.LengthM, half))
			}

			if c.Transition.LengthM <= 0 {
				return nil, geomerr.Geometry(fmt.Errorf("curve %d: transition length must be > 0", i))
			}
		}
	}

	for i := range curves {
		for j := i + 1; j < len(curves); j++ {
			if curves[i].StartM < curves[j].EndM && curves[j].StartM < curves[i].EndM {
				warnings = append(warnings, fmt.Sprintf("curves %d and %d overlap", i, j))
			}
		}
	}

	return warnings, nil
}
