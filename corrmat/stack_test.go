package corrmat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/internal/testutil"
)

func TestStack(t *testing.T) {
	m := rowsMatrix(
		[]float64{math.NaN(), 0, 0},
		[]float64{1, 2, 3},
		[]float64{3, 4, 5},
	)

	out, err := corrmat.Stack(m)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	require.Equal(t, 1, out.NumTraces())
	testutil.RequireSliceNearlyEqual(t, out.Data[0], []float64{2, 3, 4}, 1e-12)
	assert.True(t, out.Time[0].Equal(m.Time[1]))
}

func TestStack_NoFiniteTraces(t *testing.T) {
	_, err := corrmat.Stack(rowsMatrix([]float64{math.NaN(), 1}))
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
}

func TestSimilarity(t *testing.T) {
	m := rowsMatrix(
		[]float64{1, 2, 3, 4},
		[]float64{-2, -4, -6, -8},
		[]float64{1, math.Inf(1), 3, 4},
	)

	cc, err := corrmat.Similarity(m, []float64{10, 20, 30, 40})
	require.NoError(t, err)
	require.Len(t, cc, 3)
	assert.InDelta(t, 1.0, cc[0], 1e-12)
	assert.InDelta(t, -1.0, cc[1], 1e-12)
	assert.True(t, math.IsNaN(cc[2]))

	_, err = corrmat.Similarity(m, []float64{1, 2})
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
	_, err = corrmat.Similarity(m, []float64{1, 2, math.NaN(), 4})
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
}
