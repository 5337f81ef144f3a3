// Package window generates taper windows and applies them to sample blocks.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeTukey
	TypeCosine
)

// String returns the lower-case window name used in recipes.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeTukey:
		return "tukey"
	case TypeCosine:
		return "cosine"
	default:
		return "unknown"
	}
}

// ParseType maps a window name to its Type.
func ParseType(name string) (Type, bool) {
	for _, t := range []Type{TypeRectangular, TypeHann, TypeTukey, TypeCosine} {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Slope controls which edge(s) of the window are tapered.
type Slope int

const (
	SlopeSymmetric Slope = iota
	SlopeLeft
	SlopeRight
)

// ParseSlope maps "left", "right" and "both" (or "") to a Slope.
func ParseSlope(name string) (Slope, bool) {
	switch name {
	case "", "both":
		return SlopeSymmetric, true
	case "left":
		return SlopeLeft, true
	case "right":
		return SlopeRight, true
	}
	return 0, false
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha float64
	slope Slope
}

func defaultConfig() config {
	return config{
		alpha: 1,
		slope: SlopeSymmetric,
	}
}

// WithAlpha sets the tapered fraction of a Tukey window.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithSlope configures edge tapering mode.
func WithSlope(s Slope) Option {
	return func(c *config) {
		c.slope = s
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length), cfg)
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// Tukey returns Tukey window coefficients.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha < 0 || alpha > 1 {
		return nil, validateTukey(size, alpha)
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// TaperAlpha returns the Tukey alpha whose cosine flanks each span
// flankSamples samples of a window of the given size.
func TaperAlpha(size, flankSamples int) float64 {
	if size <= 1 {
		return 0
	}

	return math.Min(1, 2*float64(flankSamples)/float64(size-1))
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	// One-sided slopes keep the rising (left) or falling (right) half of the
	// symmetric window and hold 1 elsewhere.
	switch cfg.slope {
	case SlopeLeft:
		if x >= 0.5 {
			return 1
		}
	case SlopeRight:
		if x <= 0.5 {
			return 1
		}
	}

	x = math.Min(1, math.Max(0, x))

	switch t {
	case TypeHann:
		return hannAt(x)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	default:
		return 1
	}
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0
	}

	return float64(n) / float64(size-1)
}

func hannAt(x float64) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*x)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return hannAt(x)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
