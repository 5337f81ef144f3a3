package corrmat

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Similarity returns the Pearson correlation coefficient between every trace
// and reference. Traces with non-finite samples yield NaN.
func Similarity(m *Matrix, reference []float64) ([]float64, error) {
	const op = "similarity"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}
	if len(reference) != m.Stats.NPTS {
		return nil, invalidf(op, "reference has %d samples, npts is %d", len(reference), m.Stats.NPTS)
	}
	if !allFinite(reference) {
		return nil, invalidf(op, "reference has non-finite samples")
	}

	cc := make([]float64, len(m.Data))
	for i, row := range m.Data {
		if !allFinite(row) {
			cc[i] = math.NaN()
			continue
		}
		cc[i] = stat.Correlation(row, reference, nil)
	}

	return cc, nil
}
