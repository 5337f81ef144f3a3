package corrmat

import (
	"math"

	"github.com/cwbudde/algo-corrmat/dsp/window"
)

// Taper multiplies every trace by a window along the lag axis. With the
// default Tukey shape each cosine flank spans widthSeconds; widthSeconds
// must be positive and at most half the lag span.
func Taper(m *Matrix, widthSeconds float64, opts ...TaperOption) (*Matrix, error) {
	const op = "taper"

	cfg := taperConfig{typ: window.TypeTukey, slope: window.SlopeSymmetric}
	for _, o := range opts {
		o(&cfg)
	}

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	npts := m.Stats.NPTS
	span := float64(npts-1) / m.Stats.SamplingRate
	if !(widthSeconds > 0) || widthSeconds > span/2 {
		return nil, invalidf(op, "width %gs outside (0, %g]", widthSeconds, span/2)
	}

	coeffs, err := taperCoefficients(cfg, npts, int(math.Round(widthSeconds*m.Stats.SamplingRate)))
	if err != nil {
		return nil, invalidf(op, "%v", err)
	}

	out := m.Clone()
	for _, row := range out.Data {
		if err := window.ApplyCoefficientsInPlace(row, coeffs); err != nil {
			return nil, invalidf(op, "%v", err)
		}
	}

	return out, nil
}

func taperCoefficients(cfg taperConfig, npts, flank int) ([]float64, error) {
	slope := window.WithSlope(cfg.slope)

	switch cfg.typ {
	case window.TypeTukey:
		return window.Tukey(npts, window.TaperAlpha(npts, flank), slope)
	case window.TypeHann:
		return window.Hann(npts, slope)
	}
	return window.Generate(cfg.typ, npts, slope), nil
}
