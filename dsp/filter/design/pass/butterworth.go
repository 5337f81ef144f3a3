package pass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-corrmat/dsp/filter/biquad"
)

// ButterworthBP designs a band-pass Butterworth cascade with -3 dB edges at
// lowHz and highHz and unity gain at the geometric centre of the warped band.
//
// order is the order of the low-pass prototype. The digital filter has
// 2*order poles split into order biquad sections, each with zeros at DC and
// Nyquist.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, ErrInvalidParams
	}

	wl, ok := bilinearK(lowHz, sampleRate)
	if !ok {
		return nil, ErrInvalidParams
	}

	wh, ok := bilinearK(highHz, sampleRate)
	if !ok || wh <= wl {
		return nil, ErrInvalidParams
	}

	w0 := math.Sqrt(wl * wh)
	bw := wh - wl

	sections := make([]biquad.Coefficients, 0, order)

	// Walk the upper-half prototype poles; their conjugates produce the
	// conjugate band-pass poles. Odd orders end with the real pole at -1.
	for k := 0; 2*k+1 <= order; k++ {
		sa, sb := lowpassToBandpass(butterworthPole(order, k), w0, bw)
		za, zb := bilinear(sa), bilinear(sb)

		if 2*k+1 == order {
			sections = append(sections, bandSection(za, zb))
			continue
		}

		sections = append(sections,
			bandSection(za, cmplx.Conj(za)),
			bandSection(zb, cmplx.Conj(zb)),
		)
	}

	centerHz := math.Atan(w0) * sampleRate / math.Pi
	h := cmplx.Abs(biquad.CascadeResponse(sections, centerHz, sampleRate))
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, ErrInvalidParams
	}

	g := math.Pow(1/h, 1/float64(len(sections)))
	for i := range sections {
		sections[i].B0 *= g
		sections[i].B2 *= g
	}

	return sections, nil
}

// lowpassToBandpass returns the two band-pass poles produced by the
// prototype pole p under s -> (s² + w0²) / (s·bw).
func lowpassToBandpass(p complex128, w0, bw float64) (complex128, complex128) {
	pb := p * complex(bw, 0)
	d := cmplx.Sqrt(pb*pb - complex(4*w0*w0, 0))
	return (pb + d) / 2, (pb - d) / 2
}

// bandSection returns a section with poles p1, p2 and zeros at z = ±1.
func bandSection(p1, p2 complex128) biquad.Coefficients {
	a1, a2 := biquad.FromPoles(p1, p2)
	return biquad.Coefficients{B0: 1, B1: 0, B2: -1, A1: a1, A2: a2}
}
