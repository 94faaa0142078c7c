// Command trackinfo runs the restoration pipeline end-to-end over a
// synthetic versine trace and prints a summary of each stage's output.
//
// Usage:
//
//	trackinfo [flags]
//
// It exists to exercise geometry/{filter,decompose,curve,align,planline}
// together the way a host application would, without requiring a real
// measurement file.
package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-trackgeom/geometry/align"
	"github.com/cwbudde/algo-trackgeom/geometry/core"
	"github.com/cwbudde/algo-trackgeom/geometry/curve"
	"github.com/cwbudde/algo-trackgeom/geometry/decompose"
	"github.com/cwbudde/algo-trackgeom/geometry/filter"
	"github.com/cwbudde/algo-trackgeom/geometry/planline"
)

func main() {
	samples := pflag.Int("samples", 2000, "number of synthetic trace samples")
	spacing := pflag.Float64("spacing", 0.25, "sample spacing in meters")
	lower := pflag.Float64("lower", 3, "restoration band lower wavelength in meters")
	upper := pflag.Float64("upper", 70, "restoration band upper wavelength in meters")
	order := pflag.Int("order", 101, "inverse filter order (rounded up to odd)")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: trackinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the restoration pipeline over a synthetic versine trace\n")
		fmt.Fprintf(os.Stderr, "and prints a stage-by-stage summary.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(*samples, *spacing, *lower, *upper, *order); err != nil {
		log.Error("trackinfo failed", "err", err)
		os.Exit(1)
	}
}

func run(samples int, spacing, lowerM, upperM float64, order int) error {
	log.Debug("generating synthetic trace", "samples", samples, "spacing", spacing)

	trace := syntheticTrace(samples, spacing)

	filterSpec := core.FilterSpec{
		LowerWavelengthM: lowerM,
		UpperWavelengthM: upperM,
		FilterOrder:      order,
		StopbandAtt:      0.05,
		TransitionWidth:  0.15,
		RailType:         core.RailConventional,
	}

	restored, notice, err := filter.RestoreTrace(trace, filterSpec)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	if notice != "" {
		log.Warn(notice)
	}

	bands := []core.BandSpec{
		{Name: "short", WavelengthMinM: 3, WavelengthMaxM: 25, Priority: core.PriorityHigh},
		{Name: "mid", WavelengthMinM: 25, WavelengthMaxM: 70, Priority: core.PriorityMedium},
	}

	multi, err := decompose.DecomposeMulti(restored, bands)
	if err != nil {
		return fmt.Errorf("decompose: %w", err)
	}

	curves := []core.CurveElement{
		{
			StartM:  samplesToMeters(samples, spacing) * 0.3,
			EndM:    samplesToMeters(samples, spacing) * 0.5,
			RadiusM: 800,
			Transition: &core.Transition{
				LengthM: 30,
				Type:    core.TransitionClothoid,
			},
		},
	}
	curves[0].Transition.StartM = curves[0].StartM
	curves[0].Transition.EndM = curves[0].StartM + curves[0].Transition.LengthM

	curveResult, warnings, err := curve.Subtract(restored, curves, curve.DefaultCorrectionWeights())
	if err != nil {
		return fmt.Errorf("curve subtract: %w", err)
	}

	for _, w := range warnings {
		log.Warn(w)
	}

	reference := restored
	fieldEnd := samples / 10
	if fieldEnd < 3 {
		fieldEnd = 3
	}

	field := restored[:fieldEnd]

	alignResult, err := align.Align(field, reference, align.DefaultSearchConfig(spacing))
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}

	planRaw := planline.GaussianSmooth(restored.Values(), 0.5)
	planRaw = planline.LongWavelengthEmphasis(planRaw, spacing, 40)
	planClamped := planline.ClampMovement(planRaw, restored.Values(), planline.DefaultClampConfig())
	planTapered := planline.EdgeTaper(planClamped)
	planStats := planline.ComputeStatistics(planTapered, restored.Values())

	planWarnings, err := planline.Validate(planStats)
	if err != nil {
		return fmt.Errorf("plan line: %w", err)
	}

	for _, w := range planWarnings {
		log.Warn(w)
	}

	printSummary(restored, multi, curveResult, alignResult, planStats)

	return nil
}

func samplesToMeters(samples int, spacing float64) float64 {
	return float64(samples) * spacing
}

func syntheticTrace(n int, spacing float64) core.Trace {
	values := make([]float64, n)

	for i := range values {
		pos := float64(i) * spacing
		values[i] = 3*math.Sin(2*math.Pi*pos/8) + 1.5*math.Sin(2*math.Pi*pos/45)
	}

	return core.FromValues(values, 0, spacing)
}

func printSummary(restored core.Trace, multi decompose.MultiBandResult, curveResult curve.Result, alignResult core.AlignmentResult, planStats planline.Statistics) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Stage\tMetric\tValue\n")
	fmt.Fprintf(tw, "-----\t------\t-----\n")
	fmt.Fprintf(tw, "restore\tsamples\t%d\n", len(restored))

	for _, b := range multi.Bands {
		fmt.Fprintf(tw, "decompose\t%s_rms\t%.3f\n", b.Band.Name, b.Stats.RMS)
	}

	fmt.Fprintf(tw, "curve\trms_before\t%.3f\n", curveResult.RMSBefore)
	fmt.Fprintf(tw, "curve\trms_after\t%.3f\n", curveResult.RMSAfter)
	fmt.Fprintf(tw, "curve\timprovement_ratio\t%.3f\n", curveResult.ImprovementRatio)
	fmt.Fprintf(tw, "align\tbest_offset_m\t%.3f\n", alignResult.BestOffsetM)
	fmt.Fprintf(tw, "align\tbest_correlation\t%.3f\n", alignResult.BestCorrelation)
	fmt.Fprintf(tw, "align\tquality\t%s\n", alignResult.Quality)
	fmt.Fprintf(tw, "planline\traise_ratio\t%.3f\n", planStats.RaiseRatio)
	fmt.Fprintf(tw, "planline\tlower_ratio\t%.3f\n", planStats.LowerRatio)

	if err := tw.Flush(); err != nil {
		log.Error("failed to flush output", "err", err)
	}
}
