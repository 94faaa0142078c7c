// Package align implements the correlation aligner component of spec.md
// §4.5: a longitudinal offset search between a short hand-measured trace
// and a reference trace, maximizing Pearson correlation, with sub-sample
// refinement and multi-section combination.
package align

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/geomerr"
	"github.com/cwbudde/algo-trackgeom/geometry/interp"
)

// SearchConfig bounds the offset search grid: [-RangeM, +RangeM] in steps
// of StepM, per spec.md §4.5 (defaults R=20 m, step h=spacing).
type SearchConfig struct {
	RangeM float64
	StepM  float64
}

// DefaultSearchConfig returns R=20 m with the step derived from the
// field trace's own sample spacing, as spec.md §4.5 specifies
// (h=Δ=0.25 m in the reference example).
func DefaultSearchConfig(spacing float64) SearchConfig {
	return SearchConfig{RangeM: 20, StepM: spacing}
}

// Align searches field against reference for the best longitudinal shift,
// per spec.md §4.5. field must hold at least 3 samples.
func Align(field, reference core.Trace, cfg SearchConfig) (core.AlignmentResult, error) {
	if len(field) < 3 {
		return core.AlignmentResult{}, geomerr.InvalidInput(fmt.Errorf("align: field trace needs >= 3 samples, got %d", len(field)))
	}

	if len(reference) < 2 {
		return core.AlignmentResult{}, geomerr.InvalidInput(fmt.Errorf("align: reference trace needs >= 2 samples, got %d", len(reference)))
	}

	if cfg.StepM <= 0 {
		return core.AlignmentResult{}, geomerr.InvalidInput(fmt.Errorf("align: step must be > 0"))
	}

	refPositions := reference.Positions()
	refValues := reference.Values()
	fieldValues := field.Values()
	fieldPositions := field.Positions()

	steps := int(math.Round(cfg.RangeM / cfg.StepM))
	grid := make([]float64, 2*steps+1)

	for i := -steps; i <= steps; i++ {
		grid[i+steps] = float64(i) * cfg.StepM
	}

	samples := parallelEvaluate(grid, fieldPositions, fieldValues, refPositions, refValues)

	best := bestOf(samples)

	refined := refineAroundBest(best.OffsetM, cfg.StepM, fieldPositions, fieldValues, refPositions, refValues)
	samples = append(samples, refined...)

	sort.Slice(samples, func(i, j int) bool { return samples[i].Correlation > samples[j].Correlation })

	top := samples
	if len(top) > 5 {
		top = top[:5]
	}

	bestSample := samples[0]

	sharpness := 0.0
	if len(samples) > 1 {
		sharpness = distinctSecondBestGap(samples, cfg.StepM/10)
	}

	quality := core.BucketForCorrelation(bestSample.Correlation)

	alignedPositions := make([]float64, len(fieldPositions))
	for i, p := range fieldPositions {
		alignedPositions[i] = p + bestSample.OffsetM
	}

	var recommendations []string
	if bestSample.Correlation < 0.7 {
		recommendations = append(recommendations, "low confidence: best correlation below 0.7, verify field segment or reference span")
	}

	if sharpness <= 0.2 {
		recommendations = append(recommendations, "ambiguous offset: sharpness below 0.2, multiple candidate shifts score similarly")
	}

	return core.AlignmentResult{
		BestOffsetM:      bestSample.OffsetM,
		BestCorrelation:  bestSample.Correlation,
		AlignedPositions: alignedPositions,
		Quality:          quality,
		TopK:             top,
		Sharpness:        sharpness,
		Recommendations:  recommendations,
	}, nil
}

// parallelEvaluate evaluates the offset grid using a worker pool sized to
// GOMAXPROCS, per spec.md §5's "multi-offset correlation search (map over
// the offset grid)" embarrassingly-parallel region. Each worker claims
// grid indices from a shared counter and writes only to its own index of
// a pre-sized results slice, so the gather needs no further
// synchronization.
func parallelEvaluate(grid, fieldPositions, fieldValues, refPositions, refValues []float64) []core.OffsetCorrelation {
	results := make([]core.OffsetCorrelation, len(grid))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(grid) {
		workers = len(grid)
	}

	if workers < 1 {
		workers = 1
	}

	var next int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	claim := func() (int, bool) {
		mu.Lock()
		defer mu.Unlock()

		if int(next) >= len(grid) {
			return 0, false
		}

		i := int(next)
		next++

		return i, true
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				i, ok := claim()
				if !ok {
					return
				}

				delta := grid[i]
				r := evaluateOffset(delta, fieldPositions, fieldValues, refPositions, refValues)
				results[i] = core.OffsetCorrelation{OffsetM: delta, Correlation: r}
			}
		}()
	}

	wg.Wait()

	return results
}

// evaluateOffset computes the Pearson correlation between field and the
// reference resampled onto field's positions translated by delta, per
// spec.md §4.5. Returns r=0 if either series has zero stddev, or if fewer
// than two reference samples fall within the translated span.
func evaluateOffset(delta float64, fieldPositions, fieldValues, refPositions, refValues []float64) float64 {
	translated := make([]float64, len(fieldPositions))
	for i, p := range fieldPositions {
		translated[i] = p + delta
	}

	covered := 0
	lo, hi := translated[0], translated[len(translated)-1]
	for _, p := range refPositions {
		if p >= lo && p <= hi {
			covered++
		}
	}

	if covered < 2 {
		return 0
	}

	resampled := interp.Linear(refPositions, refValues, translated)

	return pearson(fieldValues, resampled)
}

// pearson returns the Pearson correlation coefficient between a and b,
// 0 if either has zero standard deviation (spec.md §4.5).
func pearson(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}

	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}

	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}

	return cov / math.Sqrt(varA*varB)
}

func bestOf(samples []core.OffsetCorrelation) core.OffsetCorrelation {
	best := samples[0]
	for _, s := range samples[1:] {
		if s.Correlation > best.Correlation {
			best = s
		}
	}

	return best
}

// refineAroundBest searches δ*+i·h/10 for i in [-10,10] around the
// winning offset, per spec.md §4.5's sub-sample refinement step.
func refineAroundBest(best, step float64, fieldPositions, fieldValues, refPositions, refValues []float64) []core.OffsetCorrelation {
	fine := step / 10
	out := make([]core.OffsetCorrelation, 0, 21)

	for i := -10; i <= 10; i++ {
		delta := best + float64(i)*fine
		r := evaluateOffset(delta, fieldPositions, fieldValues, refPositions, refValues)
		out = append(out, core.OffsetCorrelation{OffsetM: delta, Correlation: r})
	}

	return out
}

// distinctSecondBestGap returns r1 - r2 where r2 is the best correlation
// among samples whose offset differs from the winner by more than tol,
// per spec.md §4.5's sharpness definition.
func distinctSecondBestGap(sorted []core.OffsetCorrelation, tol float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	best := sorted[0]

	for _, s := range sorted[1:] {
		if math.Abs(s.OffsetM-best.OffsetM) > tol {
			return best.Correlation - s.Correlation
		}
	}

	return best.Correlation
}

// SectionWeighting selects how multi-section offsets are weighted.
type SectionWeighting int

const (
	// WeightByCorrelationSquared uses w_k = r_k^2 (spec.md §4.5's
	// single-weight default).
	WeightByCorrelationSquared SectionWeighting = iota
	// WeightByLength uses w_k = len_k/25 (spec.md §4.5's optional
	// length-weighted mode).
	WeightByLength
)

// Section is one hand-measured segment's alignment result plus its
// sample length, needed for WeightByLength.
type Section struct {
	Result  core.AlignmentResult
	LengthM float64
}

// CombineSections computes the weighted-mean offset, residual stddev, and
// confidence across K aligned segments, per spec.md §4.5.
func CombineSections(sections []Section, rangeM float64, weighting SectionWeighting) (core.MultiSectionResult, error) {
	if len(sections) == 0 {
		return core.MultiSectionResult{}, geomerr.InvalidInput(fmt.Errorf("align: CombineSections requires at least one section"))
	}

	weights := make([]float64, len(sections))

	var totalWeight float64

	for i, s := range sections {
		switch weighting {
		case WeightByLength:
			weights[i] = s.LengthM / 25
		default:
			weights[i] = s.Result.BestCorrelation * s.Result.BestCorrelation
		}

		totalWeight += weights[i]
	}

	if totalWeight == 0 {
		return core.MultiSectionResult{}, geomerr.NumericDegenerate(fmt.Errorf("align: CombineSections: total weight is zero"))
	}

	var weightedOffset float64
	for i, s := range sections {
		weightedOffset += weights[i] * s.Result.BestOffsetM
	}

	weightedOffset /= totalWeight

	var variance float64
	for i, s := range sections {
		d := s.Result.BestOffsetM - weightedOffset
		variance += weights[i] * d * d
	}

	variance /= totalWeight

	residualStdDev := math.Sqrt(variance)

	confidence := (1 - residualStdDev/rangeM) * 100
	if confidence > 100 {
		confidence = 100
	}

	if confidence < 0 {
		confidence = 0
	}

	results := make([]core.AlignmentResult, len(sections))
	for i, s := range sections {
		results[i] = s.Result
	}

	return core.MultiSectionResult{
		WeightedOffsetM: weightedOffset,
		ResidualStdDevM: residualStdDev,
		ConfidencePct:   confidence,
		Sections:        results,
	}, nil
}
