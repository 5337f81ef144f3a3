package corrmat

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-corrmat/dsp/filter/biquad"
	"github.com/cwbudde/algo-corrmat/dsp/filter/design/pass"
)

// Filter band-passes every trace with a Butterworth filter whose -3 dB edges
// are freqs[0] and freqs[1] Hz. Each trace is filtered forward and then
// backward, so the result has no phase shift and twice the prototype order.
func Filter(m *Matrix, freqs []float64, opts ...FilterOption) (*Matrix, error) {
	const op = "filter"

	cfg := filterConfig{order: DefaultFilterOrder}
	for _, o := range opts {
		o(&cfg)
	}

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}
	if len(freqs) != 2 {
		return nil, invalidf(op, "need [low, high] band limits, got %d values", len(freqs))
	}
	if cfg.order <= 0 {
		return nil, invalidf(op, "order %d", cfg.order)
	}

	sections, err := pass.ButterworthBP(freqs[0], freqs[1], cfg.order, m.Stats.SamplingRate)
	if err != nil {
		return nil, &OpError{
			Op:  op,
			Msg: fmt.Sprintf("band [%g, %g] Hz at %g Hz", freqs[0], freqs[1], m.Stats.SamplingRate),
			Err: errors.Join(ErrInvalidInput, err),
		}
	}

	if !biquad.Stable(sections) {
		return nil, invalidf(op, "band [%g, %g] Hz at %g Hz: unstable design (pole radius %g)",
			freqs[0], freqs[1], m.Stats.SamplingRate, biquad.MaxPoleRadius(sections))
	}

	out := m.Clone()
	chain := biquad.NewChain(sections)
	for _, row := range out.Data {
		chain.FilterZeroPhase(row)
	}

	return out, nil
}
