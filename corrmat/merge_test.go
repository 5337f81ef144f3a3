package corrmat_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/internal/testutil"
)

func TestMerge_CommonWindow(t *testing.T) {
	a := lagMatrix(1, 101, 0, 2)  // lags [0, 100]
	b := lagMatrix(1, 101, 50, 3) // lags [50, 150]

	out, err := corrmat.Merge([]*corrmat.Matrix{a, b})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.InDelta(t, 50.0, out.LagStart(), 1e-9)
	assert.InDelta(t, 100.0, out.LagEnd(), 1e-9)
	assert.Equal(t, 51, out.Stats.NPTS)
	require.Equal(t, 5, out.NumTraces())
	require.Len(t, out.Time, 5)

	// a is cut at its sample 50, b keeps its first sample.
	assert.Equal(t, 50.0, out.Data[0][0])
	assert.Equal(t, 150.0, out.Data[1][0])
	assert.Equal(t, 0.0, out.Data[2][0])
	assert.Equal(t, 250.0, out.Data[4][50])
	assert.Equal(t, append(a.Time, b.Time...), out.Time)

	assert.Equal(t, a.Stats.SeedID, out.Stats.SeedID)
}

func TestMerge_SkipsMismatchedRate(t *testing.T) {
	a := lagMatrix(1, 101, 0, 1)
	b := lagMatrix(1, 101, 0, 1)
	odd := lagMatrix(2, 201, 0, 4)

	var logs bytes.Buffer
	var skipped []corrmat.SkippedInputWarning

	out, err := corrmat.Merge([]*corrmat.Matrix{a, odd, b},
		corrmat.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		corrmat.WithSkipHook(func(w corrmat.SkippedInputWarning) { skipped = append(skipped, w) }),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, out.NumTraces())
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Equal(t, 2.0, skipped[0].SamplingRate)
	assert.Equal(t, 1.0, skipped[0].Want)
	assert.Contains(t, skipped[0].Error(), "input 1 skipped")
	assert.Contains(t, logs.String(), "merge input skipped")
}

func TestMerge_SkippedInputIsNotValidated(t *testing.T) {
	a := lagMatrix(1, 101, 0, 2)
	odd := lagMatrix(2, 201, 0, 3)
	odd.Time = odd.Time[:1]

	var skipped []corrmat.SkippedInputWarning
	out, err := corrmat.Merge([]*corrmat.Matrix{a, odd},
		corrmat.WithSkipHook(func(w corrmat.SkippedInputWarning) { skipped = append(skipped, w) }))
	require.NoError(t, err)

	assert.Equal(t, 2, out.NumTraces())
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
}

func TestMerge_HighRateGrid(t *testing.T) {
	// The 7000 Hz sample period is not a whole number of nanoseconds.
	const sr = 7000.0
	a := lagMatrix(sr, 2001, -1000/sr, 1)
	twin := lagMatrix(sr, 2001, -1000/sr, 1)

	out, err := corrmat.Merge([]*corrmat.Matrix{a, twin})
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	assert.Equal(t, 2001, out.Stats.NPTS)
	assert.Equal(t, 2, out.NumTraces())

	late := lagMatrix(sr, 2001, -997/sr, 1)
	out, err = corrmat.Merge([]*corrmat.Matrix{a, late})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, 1998, out.Stats.NPTS)
	assert.Equal(t, 3.0, out.Data[0][0])
	assert.Equal(t, 0.0, out.Data[1][0])
	assert.Equal(t, 1997.0, out.Data[1][1997])
}

func TestMerge_NoOverlap(t *testing.T) {
	a := lagMatrix(1, 11, 0, 1)
	b := lagMatrix(1, 11, 20, 1)

	_, err := corrmat.Merge([]*corrmat.Matrix{a, b})
	assert.ErrorIs(t, err, corrmat.ErrRange)
}

func TestMerge_SeedOverride(t *testing.T) {
	a := lagMatrix(1, 11, 0, 1)
	b := lagMatrix(1, 11, 0, 1)

	out, err := corrmat.Merge([]*corrmat.Matrix{a, b},
		corrmat.WithSeedID(corrmat.SeedID{Station: "WET-WET", Channel: "HHZ-HHN"}))
	require.NoError(t, err)

	assert.Equal(t, "GR-GR", out.Stats.Network)
	assert.Equal(t, "WET-WET", out.Stats.Station)
	assert.Equal(t, "-", out.Stats.Location)
	assert.Equal(t, "HHZ-HHN", out.Stats.Channel)
	assert.Equal(t, "WET-FUR", a.Stats.Station, "input left untouched")
}

func TestMerge_Invalid(t *testing.T) {
	_, err := corrmat.Merge(nil)
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)

	bad := lagMatrix(1, 11, 0, 2)
	bad.Time = bad.Time[:1]
	_, err = corrmat.Merge([]*corrmat.Matrix{lagMatrix(1, 11, 0, 1), bad})
	assert.ErrorIs(t, err, corrmat.ErrInvalidInput)
	assert.Contains(t, err.Error(), "input 1")
}

func TestMerge_Single(t *testing.T) {
	m := testutil.NewMatrix(testutil.MatrixSpec{
		SamplingRate: 10, NPTS: 21, LagStart: -1, Times: testutil.Times(2, 0),
	})

	out, err := corrmat.Merge([]*corrmat.Matrix{m})
	require.NoError(t, err)
	assert.Equal(t, m.Data, out.Data)
}
