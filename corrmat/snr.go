package corrmat

import (
	"math"

	"github.com/cwbudde/algo-corrmat/stats/trace"
)

// SNR returns, for every trace, the peak absolute amplitude inside signal
// divided by the RMS amplitude inside noise. Both windows must lie on the
// lag axis. Traces with non-finite samples yield NaN.
func SNR(m *Matrix, signal, noise Window, opts ...SNROption) ([]float64, error) {
	const op = "snr"

	var cfg snrConfig
	for _, o := range opts {
		o(&cfg)
	}
	ratio := trace.SNR
	if cfg.robust {
		ratio = trace.RobustSNR
	}

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	s0, s1, err := sampleRange(op, m, signal)
	if err != nil {
		return nil, err
	}
	n0, n1, err := sampleRange(op, m, noise)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(m.Data))
	for i, row := range m.Data {
		if !allFinite(row) {
			out[i] = math.NaN()
			continue
		}
		out[i] = ratio(row[s0:s1+1], row[n0:n1+1])
	}

	return out, nil
}

// Statistics returns amplitude statistics of every trace. Positions are
// sample indices on the lag axis.
func Statistics(m *Matrix) ([]trace.Stats, error) {
	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: "statistics", Msg: "matrix", Err: err}
	}

	out := make([]trace.Stats, len(m.Data))
	for i, row := range m.Data {
		out[i] = trace.Calculate(row)
	}

	return out, nil
}
