package corrmat

import (
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Shift delays every trace by seconds (negative values advance it) using a
// frequency-domain phase ramp, so the shift need not be a whole number of
// samples. Traces are zero-padded to avoid wrap-around; samples shifted in
// from outside the trace are zero. The shift must be shorter than the trace.
func Shift(m *Matrix, seconds float64) (*Matrix, error) {
	const op = "shift"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	npts := m.Stats.NPTS
	delay := seconds * m.Stats.SamplingRate
	if math.IsNaN(delay) || math.Abs(delay) >= float64(npts) {
		return nil, invalidf(op, "shift of %g samples on %d-sample traces", delay, npts)
	}

	out := m.Clone()
	if delay == 0 {
		return out, nil
	}

	n := nextPowerOf2(2 * npts)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, &OpError{Op: op, Msg: "fft plan", Err: err}
	}

	ramp := phaseRamp(n, delay)
	buf := make([]complex128, n)
	spec := make([]complex128, n)

	for _, row := range out.Data {
		if !allFinite(row) {
			continue
		}

		for i := range buf {
			buf[i] = 0
		}
		for i, v := range row {
			buf[i] = complex(v, 0)
		}

		if err := plan.Forward(spec, buf); err != nil {
			return nil, &OpError{Op: op, Msg: "forward fft", Err: err}
		}
		for k := range spec {
			spec[k] *= ramp[k]
		}
		if err := plan.Inverse(buf, spec); err != nil {
			return nil, &OpError{Op: op, Msg: "inverse fft", Err: err}
		}

		for i := range row {
			row[i] = real(buf[i])
		}
	}

	return out, nil
}

// phaseRamp returns exp(-j·2π·k·delay/n) for signed bin frequencies. The
// Nyquist bin keeps only its real part so real input stays real.
func phaseRamp(n int, delay float64) []complex128 {
	ramp := make([]complex128, n)
	for k := range ramp {
		f := k
		if k > n/2 {
			f = k - n
		}
		phi := -2 * math.Pi * float64(f) * delay / float64(n)
		ramp[k] = cmplx.Rect(1, phi)
	}
	ramp[n/2] = complex(math.Cos(math.Pi*delay), 0)
	return ramp
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
