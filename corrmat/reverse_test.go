package corrmat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-corrmat/corrmat"
)

func TestReverse(t *testing.T) {
	// Asymmetric lag axis: -1 s to +2 s.
	m := lagMatrix(10, 31, -1, 2)

	out, err := corrmat.Reverse(m)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.InDelta(t, -2.0, out.LagStart(), 1e-9)
	assert.InDelta(t, 1.0, out.LagEnd(), 1e-9)

	assert.Equal(t, m.Trace2, out.Trace1)
	assert.Equal(t, m.Trace1, out.Trace2)
	assert.Equal(t, m.Stats.EvLa, out.Stats.StLa)
	assert.Equal(t, m.Stats.StLo, out.Stats.EvLo)
	assert.Equal(t, m.Stats.StEl, out.Stats.EvEl)

	for i, row := range out.Data {
		for j, v := range row {
			assert.Equal(t, m.Data[i][30-j], v)
		}
	}
	assert.Equal(t, m.Time, out.Time)
}

func TestReverse_Involution(t *testing.T) {
	m := lagMatrix(4, 17, -3.25, 3)

	once, err := corrmat.Reverse(m)
	require.NoError(t, err)
	twice, err := corrmat.Reverse(once)
	require.NoError(t, err)

	assert.Equal(t, m.Data, twice.Data)
	assert.Equal(t, m.Trace1, twice.Trace1)
	assert.Equal(t, m.Stats.StLa, twice.Stats.StLa)
	assert.True(t, m.Stats.StartTime.Equal(twice.Stats.StartTime))
	assert.True(t, m.Stats.EndTime.Equal(twice.Stats.EndTime))
}

func TestReverse_DoesNotMutate(t *testing.T) {
	m := lagMatrix(10, 21, -1, 1)
	before := m.Clone()

	_, err := corrmat.Reverse(m)
	require.NoError(t, err)
	assert.Equal(t, before.Data, m.Data)
	assert.Equal(t, before.Trace1, m.Trace1)
}
