package pass

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrInvalidParams reports band edges, order or sample rate outside the
// designable range.
var ErrInvalidParams = errors.New("pass: invalid parameters")

// bilinearK computes the bilinear transform frequency warping factor
// tan(π*freq/sampleRate). Returns (k, true) on success, (0, false) if the
// frequency is not strictly between 0 and Nyquist.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// butterworthPole returns the k-th left-half-plane pole of the normalized
// analog Butterworth prototype of the given order.
func butterworthPole(order, k int) complex128 {
	theta := math.Pi * float64(2*k+order+1) / (2 * float64(order))
	return cmplx.Rect(1, theta)
}

// bilinear maps an analog pole in the warped s-plane to the z-plane.
func bilinear(s complex128) complex128 {
	return (1 + s) / (1 - s)
}
