package corrmat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/internal/testutil"
	"github.com/cwbudde/algo-corrmat/timeconv"
)

func TestMirror(t *testing.T) {
	m := testutil.NewMatrix(testutil.MatrixSpec{
		SamplingRate: 10,
		NPTS:         21,
		LagStart:     -1,
		Times:        testutil.Times(2, 0),
		Sample: func(_, j int) float64 {
			k := float64(j - 10)
			return k*k + k
		},
	})

	out, err := corrmat.Mirror(m)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, 11, out.Stats.NPTS)
	assert.True(t, out.Stats.StartTime.Equal(timeconv.ZeroLag))
	assert.InDelta(t, 1.0, out.LagEnd(), 1e-9)

	want := make([]float64, 11)
	for j := range want {
		want[j] = float64(j * j)
	}
	for i, row := range out.Data {
		assert.True(t, floats.EqualApprox(row, want, 1e-12), "trace %d: %v", i, row)
	}
}

func TestMirror_Asymmetric(t *testing.T) {
	_, err := corrmat.Mirror(lagMatrix(10, 31, -1, 1))
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)

	_, err = corrmat.Mirror(lagMatrix(10, 20, -0.95, 1))
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
}
