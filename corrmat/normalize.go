package corrmat

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// NormMethod selects how Normalize scales each trace.
type NormMethod int

const (
	// NormAbsMax divides each trace by its largest absolute sample.
	NormAbsMax NormMethod = iota
	// NormEnergy divides each trace by its L2 norm.
	NormEnergy
)

// ParseNormMethod maps "absmax" and "energy" to their NormMethod.
func ParseNormMethod(name string) (NormMethod, bool) {
	switch name {
	case "absmax", "":
		return NormAbsMax, true
	case "energy":
		return NormEnergy, true
	}
	return 0, false
}

// Normalize scales every trace independently. Traces whose norm is zero or
// not finite are copied unchanged.
func Normalize(m *Matrix, method NormMethod) (*Matrix, error) {
	const op = "normalize"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}
	if method != NormAbsMax && method != NormEnergy {
		return nil, invalidf(op, "unknown method %d", method)
	}

	out := m.Clone()
	for _, row := range out.Data {
		if !allFinite(row) {
			continue
		}

		var norm float64
		if method == NormEnergy {
			norm = math.Sqrt(vecmath.DotProduct(row, row))
		} else {
			norm = vecmath.MaxAbs(row)
		}
		if norm == 0 || math.IsInf(norm, 0) {
			continue
		}
		vecmath.ScaleBlockInPlace(row, 1/norm)
	}

	return out, nil
}
