package window

// Analysis holds the two scalar window properties meaningful for a single
// fixed analysis taper: its DC response and its noise bandwidth. Adapted
// from the teacher's dsp/window/analyze.go, which additionally computed
// sidelobe level, 3 dB bandwidth, and scallop loss for comparing many
// window types against each other — properties with no use when the
// decomposer always analyzes with the same Hann taper.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
}

// Analyze computes the coherent gain and equivalent noise bandwidth of a
// set of window coefficients.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	var sum, sumSq float64

	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	if sum == 0 {
		return Analysis{}
	}

	return Analysis{
		CoherentGain: sum / float64(n),
		ENBW:         float64(n) * sumSq / (sum * sum),
	}
}
