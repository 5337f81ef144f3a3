package corrmat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/internal/testutil"
)

func TestShift_WholeSamples(t *testing.T) {
	m := impulseMatrix(10, 101, 50)

	out, err := corrmat.Shift(m, 0.5)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	want := make([]float64, 101)
	want[55] = 1
	testutil.RequireSliceNearlyEqual(t, out.Data[0], want, 1e-9)

	back, err := corrmat.Shift(m, -0.5)
	require.NoError(t, err)
	want[55], want[45] = 0, 1
	testutil.RequireSliceNearlyEqual(t, back.Data[0], want, 1e-9)
}

func TestShift_FractionalRoundTrip(t *testing.T) {
	m := testutil.NewMatrix(testutil.MatrixSpec{
		SamplingRate: 1,
		NPTS:         101,
		LagStart:     -50,
		Times:        testutil.Times(1, 0),
		Sample: func(_, j int) float64 {
			x := float64(j-50) / 5
			return math.Exp(-x * x / 2)
		},
	})

	fwd, err := corrmat.Shift(m, 0.5)
	require.NoError(t, err)

	// Half a sample late, the Gaussian peaks midway between 50 and 51.
	assert.InDelta(t, fwd.Data[0][50], fwd.Data[0][51], 1e-9)

	back, err := corrmat.Shift(fwd, -0.5)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, back.Data[0], m.Data[0], 1e-9)
}

func TestShift_Zero(t *testing.T) {
	m := impulseMatrix(10, 11, 5)

	out, err := corrmat.Shift(m, 0)
	require.NoError(t, err)
	assert.Equal(t, m.Data, out.Data)
}

func TestShift_TooLong(t *testing.T) {
	m := impulseMatrix(10, 11, 5)

	_, err := corrmat.Shift(m, 1.1)
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
	_, err = corrmat.Shift(m, math.NaN())
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
}
