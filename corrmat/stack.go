package corrmat

import "time"

// Stack returns a one-trace matrix holding the mean of all fully finite
// traces of m. Its time is that of the first contributing trace. Gap traces
// (any NaN or Inf sample) are ignored.
func Stack(m *Matrix) (*Matrix, error) {
	const op = "stack"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	rows := make([]int, 0, len(m.Data))
	for i, row := range m.Data {
		if allFinite(row) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, invalidf(op, "no finite traces among %d", len(m.Data))
	}

	out := m.cloneMeta()
	out.Data = [][]float64{meanRows(m.Data, rows, m.Stats.NPTS)}
	out.Time = []time.Time{m.Time[rows[0]]}

	return out, nil
}
