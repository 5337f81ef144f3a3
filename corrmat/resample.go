package corrmat

import (
	"slices"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// Resample maps the traces of m onto new time bins and returns a matrix with
// exactly len(starts) traces whose Time is starts.
//
// Bin i covers [starts[i], ends[i]). When ends is empty the bins share the
// width starts[1]-starts[0]; with a single start and no ends the bin covers
// every trace from starts[0] on, the last one included. A bin without
// traces is filled with NaN, a bin with one trace copies it, and a bin with
// several holds their sample-wise mean.
func Resample(m *Matrix, starts, ends []time.Time) (*Matrix, error) {
	const op = "resample"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}
	if len(starts) == 0 {
		return nil, invalidf(op, "no bin start times")
	}
	if len(ends) > 0 && len(ends) != len(starts) {
		return nil, invalidf(op, "%d end times for %d start times", len(ends), len(starts))
	}

	bins, err := resampleBins(starts, ends)
	if err != nil {
		return nil, err
	}

	npts := m.Stats.NPTS
	out := m.cloneMeta()
	out.Time = slices.Clone(starts)
	out.Data = make([][]float64, len(bins))

	var members []int
	for i, bin := range bins {
		members = members[:0]
		for j, t := range m.Time {
			if bin.Contains(t) {
				members = append(members, j)
			}
		}

		switch len(members) {
		case 0:
			out.Data[i] = nanRow(npts)
		case 1:
			out.Data[i] = slices.Clone(m.Data[members[0]])
		default:
			out.Data[i] = meanRows(m.Data, members, npts)
		}
	}

	return out, nil
}

func resampleBins(starts, ends []time.Time) ([]TimeRange, error) {
	bins := make([]TimeRange, len(starts))

	switch {
	case len(ends) > 0:
		for i := range starts {
			bins[i] = TimeRange{Start: starts[i], End: ends[i]}
		}
	case len(starts) == 1:
		bins[0] = TimeRange{Start: starts[0]}
	default:
		width := starts[1].Sub(starts[0])
		if width <= 0 {
			return nil, invalidf("resample", "non-positive bin width %v", width)
		}
		for i, s := range starts {
			bins[i] = TimeRange{Start: s, End: s.Add(width)}
		}
	}

	return bins, nil
}

// meanRows averages the selected rows sample by sample.
func meanRows(data [][]float64, rows []int, npts int) []float64 {
	acc := make([]float64, npts)
	for _, r := range rows {
		vecmath.AddBlockInPlace(acc, data[r])
	}
	vecmath.ScaleBlockInPlace(acc, 1/float64(len(rows)))
	return acc
}
