package trace

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, 0) && math.IsInf(b, 0) {
		return math.Signbit(a) == math.Signbit(b)
	}
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// generateSine creates exactly numCycles cycles of a sine wave.
func generateSine(amplitude float64, samplesPerCycle, numCycles int) []float64 {
	out := make([]float64, samplesPerCycle*numCycles)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(samplesPerCycle))
	}
	return out
}

func TestCalculate_Sine(t *testing.T) {
	s := Calculate(generateSine(2, 100, 10))

	if s.Length != 1000 {
		t.Errorf("Length: got %d, want 1000", s.Length)
	}
	if !almostEqual(s.Mean, 0, 1e-12) {
		t.Errorf("Mean: got %g, want 0", s.Mean)
	}
	if !almostEqual(s.RMS, 2/math.Sqrt2, tolerance) {
		t.Errorf("RMS: got %g, want %g", s.RMS, 2/math.Sqrt2)
	}
	if !almostEqual(s.Peak, 2, tolerance) {
		t.Errorf("Peak: got %g, want 2", s.Peak)
	}
	if s.MaxPos%100 != 25 || s.MinPos%100 != 75 {
		t.Errorf("positions: max %d min %d", s.MaxPos, s.MinPos)
	}
	if !almostEqual(s.Variance, 2, 1e-9) {
		t.Errorf("Variance: got %g, want 2", s.Variance)
	}
	if s.ZeroCrossings < 18 || s.ZeroCrossings > 20 {
		t.Errorf("ZeroCrossings: got %d", s.ZeroCrossings)
	}
}

func TestCalculate_NegativePeak(t *testing.T) {
	s := Calculate([]float64{0.5, -3, 1, 2})

	if s.Peak != 3 || s.PeakPos != 1 {
		t.Errorf("Peak: got %g at %d, want 3 at 1", s.Peak, s.PeakPos)
	}
	if s.Max != 2 || s.MaxPos != 3 {
		t.Errorf("Max: got %g at %d", s.Max, s.MaxPos)
	}
	if !almostEqual(s.Energy, 0.25+9+1+4, tolerance) {
		t.Errorf("Energy: got %g", s.Energy)
	}
	if s.ZeroCrossings != 2 {
		t.Errorf("ZeroCrossings: got %d, want 2", s.ZeroCrossings)
	}
}

func TestCalculate_Empty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Errorf("got %+v, want zero Stats", s)
	}
}

func TestCalculate_MatchesHelpers(t *testing.T) {
	signal := []float64{0.1, -0.7, 0.3, 0.9, -0.2, 0.05}
	s := Calculate(signal)

	if !almostEqual(s.RMS, RMS(signal), tolerance) {
		t.Errorf("RMS mismatch: %g vs %g", s.RMS, RMS(signal))
	}
	if !almostEqual(s.Peak, Peak(signal), tolerance) {
		t.Errorf("Peak mismatch: %g vs %g", s.Peak, Peak(signal))
	}
}

func TestSNR(t *testing.T) {
	tests := []struct {
		name          string
		signal, noise []float64
		want          float64
	}{
		{"ratio", []float64{0, 4, -1}, []float64{1, -1, 1, -1}, 4},
		{"silent noise", []float64{1}, []float64{0, 0}, math.Inf(1)},
		{"silent both", []float64{0}, []float64{0}, math.NaN()},
		{"empty noise", []float64{2}, nil, math.Inf(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SNR(tc.signal, tc.noise); !almostEqual(got, tc.want, tolerance) {
				t.Errorf("got %g, want %g", got, tc.want)
			}
		})
	}
}

func TestCalculate_Robust(t *testing.T) {
	signal := []float64{3, 1, 100, 2, 5}
	s := Calculate(signal)

	if s.Median != 3 {
		t.Errorf("Median: got %g, want 3", s.Median)
	}
	// |x - 3| = 0 2 97 1 2 -> median 2
	if s.MAD != 2 {
		t.Errorf("MAD: got %g, want 2", s.MAD)
	}
	if signal[2] != 100 {
		t.Errorf("input reordered: %v", signal)
	}
}

func TestRobustSNR_IgnoresSpike(t *testing.T) {
	noise := []float64{1, -1, 1, -1, 1, -1, 1, -1, 50}
	signal := []float64{10}

	robust := RobustSNR(signal, noise)
	plain := SNR(signal, noise)

	// median 1, MAD 2
	want := 10 / (2 * madToSigma)
	if !almostEqual(robust, want, 1e-12) {
		t.Errorf("RobustSNR: got %g, want %g", robust, want)
	}
	if plain >= robust {
		t.Errorf("spike should lower plain SNR: %g vs %g", plain, robust)
	}
	if got := RobustSNR([]float64{0}, []float64{2, 2}); !math.IsNaN(got) {
		t.Errorf("silent: got %g, want NaN", got)
	}
}

func TestDB(t *testing.T) {
	if got := DB(10); !almostEqual(got, 20, tolerance) {
		t.Errorf("DB(10) = %g", got)
	}
	if got := DB(0); !math.IsInf(got, -1) {
		t.Errorf("DB(0) = %g", got)
	}
}
