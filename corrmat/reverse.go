package corrmat

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-corrmat/timeconv"
)

// Reverse returns m as if it had been computed for the swapped station pair:
// trace metadata and endpoint coordinates trade places, every trace is
// time-reversed, and the lag window is reflected about timeconv.ZeroLag.
// Time is unchanged.
func Reverse(m *Matrix) (*Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: "reverse", Msg: "matrix", Err: err}
	}

	out := m.Clone()
	out.Trace1, out.Trace2 = out.Trace2, out.Trace1

	s := &out.Stats
	s.StLa, s.EvLa = s.EvLa, s.StLa
	s.StLo, s.EvLo = s.EvLo, s.StLo
	s.StEl, s.EvEl = s.EvEl, s.StEl

	for _, row := range out.Data {
		floats.Reverse(row)
	}

	z := timeconv.ZeroLag
	s.StartTime = z.Add(-m.Stats.EndTime.Sub(z))
	s.EndTime = z.Add(-m.Stats.StartTime.Sub(z))

	return out, nil
}
