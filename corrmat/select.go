package corrmat

import "time"

// TimeRange is a half-open interval [Start, End) on the trace axis. A zero
// Start or End leaves that side unbounded.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in the range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// TimeSelect keeps the traces whose time lies in r. A zero End stands for
// the time of the last trace, and since the range is half-open that trace
// is dropped; pass an End after it to keep it. The lag axis is not touched.
// No match yields a valid matrix with zero traces.
func TimeSelect(m *Matrix, r TimeRange) (*Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: "select", Msg: "matrix", Err: err}
	}
	if r.End.IsZero() && len(m.Time) > 0 {
		r.End = m.Time[len(m.Time)-1]
	}

	out := m.cloneMeta()
	out.Data = [][]float64{}
	out.Time = []time.Time{}

	for i, t := range m.Time {
		if !r.Contains(t) {
			continue
		}
		out.Data = append(out.Data, append([]float64(nil), m.Data[i]...))
		out.Time = append(out.Time, t)
	}

	return out, nil
}
