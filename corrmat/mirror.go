package corrmat

import (
	"math"

	"github.com/cwbudde/algo-corrmat/timeconv"
)

// Mirror folds the acausal half onto the causal half. The lag axis of m
// must be symmetric about timeconv.ZeroLag; the result covers lags
// [0, End] and each sample is the mean of the causal sample and its acausal
// counterpart.
func Mirror(m *Matrix) (*Matrix, error) {
	const op = "mirror"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	npts := m.Stats.NPTS
	sr := m.Stats.SamplingRate
	before := timeconv.ZeroLag.Sub(m.Stats.StartTime).Seconds()
	after := m.Stats.EndTime.Sub(timeconv.ZeroLag).Seconds()
	if npts%2 == 0 || math.Abs(before-after) > 0.5/sr {
		return nil, invalidf(op, "lag axis [%gs, %gs] not symmetric about zero lag", -before, after)
	}

	c := (npts - 1) / 2
	out := m.cloneMeta()
	out.Data = make([][]float64, len(m.Data))
	for i, row := range m.Data {
		folded := make([]float64, c+1)
		for j := range folded {
			folded[j] = 0.5 * (row[c+j] + row[c-j])
		}
		out.Data[i] = folded
	}

	out.Stats.NPTS = c + 1
	out.Stats.StartTime = m.Stats.StartTime.Add(sampleOffset(c, sr))

	return out, nil
}
