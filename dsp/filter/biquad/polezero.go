package biquad

import "math/cmplx"

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Stable reports whether every section pole lies strictly inside the unit
// circle.
func Stable(coeffs []Coefficients) bool {
	return MaxPoleRadius(coeffs) < 1
}

// MaxPoleRadius returns the largest pole magnitude of the cascade. The
// closer it is to 1, the longer the impulse response rings.
func MaxPoleRadius(coeffs []Coefficients) float64 {
	r := 0.0
	for i := range coeffs {
		for _, p := range coeffs[i].Poles() {
			r = max(r, cmplx.Abs(p))
		}
	}
	return r
}

// FromPoles builds the denominator of a section whose two poles are p1 and
// p2. The pair must be conjugate or both real for the result to be exact.
func FromPoles(p1, p2 complex128) (a1, a2 float64) {
	return -real(p1 + p2), real(p1 * p2)
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
