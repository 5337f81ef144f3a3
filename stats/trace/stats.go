// Package trace computes amplitude statistics of correlation traces.
package trace

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/montanaflynn/stats"
)

// Stats holds amplitude statistics of one trace.
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	PeakPos       int
	Energy        float64 // sum of squares
	Variance      float64
	Median        float64
	MAD           float64 // median absolute deviation
	ZeroCrossings int
}

// Calculate computes all statistics in a single pass. Mean and variance use
// Welford's online update.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		mean          float64
		m2            float64
		sumSq         float64
		maxVal        = signal[0]
		maxPos        int
		minVal        = signal[0]
		minPos        int
		zeroCrossings int
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	peak, peakPos := maxVal, maxPos
	if math.Abs(minVal) > math.Abs(maxVal) {
		peak, peakPos = math.Abs(minVal), minPos
	}

	median, mad := robust(signal)

	nf := float64(n)
	return Stats{
		Length:        n,
		Mean:          mean,
		RMS:           math.Sqrt(sumSq / nf),
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Peak:          math.Abs(peak),
		PeakPos:       peakPos,
		Energy:        sumSq,
		Variance:      m2 / nf,
		Median:        median,
		MAD:           mad,
		ZeroCrossings: zeroCrossings,
	}
}

// robust returns the median and the median absolute deviation. Both sort a
// copy, so signal is left in place.
func robust(signal []float64) (median, mad float64) {
	data := stats.Float64Data(signal)

	median, err := stats.Median(data)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	mad, err = stats.MedianAbsoluteDeviation(data)
	if err != nil {
		return median, math.NaN()
	}
	return median, mad
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.MaxAbs(signal)
}

// SNR returns Peak(signal) / RMS(noise). A silent noise window yields +Inf,
// or NaN when the signal window is silent too.
func SNR(signal, noise []float64) float64 {
	p := Peak(signal)
	r := RMS(noise)
	if r == 0 {
		if p == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}

	return p / r
}

// madToSigma scales a median absolute deviation to the standard deviation
// of Gaussian noise.
const madToSigma = 1.4826

// RobustSNR is SNR with the noise level estimated from the median absolute
// deviation of noise, which ignores isolated spikes in the noise window.
func RobustSNR(signal, noise []float64) float64 {
	p := Peak(signal)
	if len(noise) == 0 {
		return math.Inf(1)
	}
	_, mad := robust(noise)
	sigma := madToSigma * mad
	if sigma == 0 {
		if p == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}

	return p / sigma
}

// DB converts an amplitude ratio to decibels: 20 * log10(ratio).
// Returns -Inf for zero.
func DB(ratio float64) float64 {
	if ratio == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(math.Abs(ratio))
}
