// Command recipeinfo checks a processing recipe and prints its steps.
//
// Usage:
//
//	recipeinfo [flags] [recipe.yaml]
//
// Without a path it reads CORRMAT_RECIPE. For every filter step it also
// prints the zero-phase band-pass gain at the band edges and a few
// frequencies around them, and how long the zero-phase impulse response
// rings. Trim and taper margins should exceed that time.
//
// Examples:
//
//	recipeinfo recipes/daily.yaml
//	recipeinfo -rate 20 recipes/daily.yaml
//	recipeinfo -quiet recipes/daily.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-corrmat/dsp/filter/biquad"
	"github.com/cwbudde/algo-corrmat/dsp/filter/design/pass"
	"github.com/cwbudde/algo-corrmat/internal/logging"
	"github.com/cwbudde/algo-corrmat/pipeline"
)

func main() {
	rate := flag.Float64("rate", 100, "sampling rate in Hz used for filter responses")
	quiet := flag.Bool("quiet", false, "only validate, print nothing on success")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: recipeinfo [flags] [recipe.yaml]\n\n")
		fmt.Fprintf(os.Stderr, "Validates a correlation-matrix processing recipe and prints its steps.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	path := flag.Arg(0)

	recipe, err := pipeline.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(recipe.Logging.Level, recipe.Logging.JSON, os.Stderr)
	runner, err := pipeline.NewRunner(recipe, pipeline.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("recipe loaded", "path", path, "steps", len(runner.Steps()))

	if *quiet {
		return
	}

	printSteps(runner.Steps())

	for i, s := range runner.Steps() {
		if s.Op != pipeline.OpFilter {
			continue
		}
		order := s.Order
		if order == 0 {
			order = recipe.FilterOrder
		}
		fmt.Println()
		printResponse(i, s.Freqs[0], s.Freqs[1], order, *rate)
	}
}

func printSteps(steps []pipeline.Step) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Step\tOp\tParameters\n----\t--\t----------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	for i, s := range steps {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\n", i, s.Op, s.String()); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printResponse(step int, low, high float64, order int, rate float64) {
	sections, err := pass.ButterworthBP(low, high, order, rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "step %d: band [%g, %g] Hz at %g Hz: %v\n", step, low, high, rate, err)
		return
	}
	chain := biquad.NewChain(sections)

	fmt.Printf("Step %d: Butterworth band-pass [%g, %g] Hz, order %d, %g Hz, kernel %s\n",
		step, low, high, order, rate, biquad.KernelName())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tOne pass [dB]\tZero phase [dB]\n---------\t-------------\t---------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, f := range []float64{low / 4, low / 2, low, math.Sqrt(low * high), high, 2 * high, 4 * high} {
		if f <= 0 || f >= rate/2 {
			continue
		}
		db := chain.MagnitudeDB(f, rate)
		if _, err := fmt.Fprintf(tw, "%.4g\t%.2f\t%.2f\n", f, db, 2*db); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	fmt.Printf("Zero-phase order %d, max pole radius %.6f, rings %.3g s (-60 dB)\n",
		2*chain.Order(), biquad.MaxPoleRadius(sections), ringTime(chain, rate))
}

// ringLimit caps the impulse response length inspected by ringTime.
const ringLimit = 1 << 20

// ringTime returns the time after which the one-pass impulse response of
// chain stays below -60 dB of its peak. The zero-phase response is
// symmetric and reaches about this far on either side of zero lag.
func ringTime(chain *biquad.Chain, rate float64) float64 {
	n := min(ringLimit, max(1024, int(600*rate)))
	ir := chain.ImpulseResponse(n)

	peak := 0.0
	for _, v := range ir {
		peak = math.Max(peak, math.Abs(v))
	}

	last := 0
	for i, v := range ir {
		if math.Abs(v) > 1e-3*peak {
			last = i
		}
	}
	return float64(last) / rate
}
