// Package stats provides the shared time-domain statistics used across the
// restoration pipeline (spec.md §2 "Statistics" component): mean, variance,
// standard deviation, RMS, min/max, and peak-to-peak. Adapted from the
// teacher's Welford-algorithm stats.Calculate, trimmed to the fields a
// millimeter-offset track-geometry trace actually needs — the teacher's
// skewness/kurtosis/crest-factor/dB fields are audio-signal concepts with
// no use here and are not ported.
package stats

import (
	"math"

	"github.com/cwbudde/algo-trackgeom/internal/vecmath"
)

// Stats holds single-pass time-domain statistics of a sample sequence.
type Stats struct {
	Count       int
	Mean        float64
	Variance    float64 // population variance
	StdDev      float64
	RMS         float64
	Min         float64
	MinPos      int
	Max         float64
	MaxPos      int
	PeakToPeak  float64
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the mean/variance for numerical stability, matching the
// teacher's stats/time.Stats.Calculate.
func Calculate(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	var (
		mean   float64
		m2     float64
		sumSq  float64
		maxVal = values[0]
		maxPos int
		minVal = values[0]
		minPos int
	)

	for i, x := range values {
		ni := float64(i + 1)
		delta := x - mean
		mean += delta / ni
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	return Stats{
		Count:      n,
		Mean:       mean,
		Variance:   variance,
		StdDev:     math.Sqrt(variance),
		RMS:        math.Sqrt(sumSq / nf),
		Min:        minVal,
		MinPos:     minPos,
		Max:        maxVal,
		MaxPos:     maxPos,
		PeakToPeak: maxVal - minVal,
	}
}

// RMS returns the root-mean-square of values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sumSq := vecmath.DotProduct(values, values)

	return math.Sqrt(sumSq / float64(len(values)))
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return vecmath.Sum(values) / float64(len(values))
}
