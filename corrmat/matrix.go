package corrmat

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/cwbudde/algo-corrmat/timeconv"
)

// SeedID is the combined network/station/location/channel identifier.
type SeedID struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

// Stats describes the lag axis and the station pair of a matrix.
//
// StartTime and EndTime are the lag times of the first and last sample,
// expressed as offsets from timeconv.ZeroLag. StLa/StLo/StEl locate the
// station end of the pair, EvLa/EvLo/EvEl the other end.
type Stats struct {
	SeedID

	SamplingRate float64
	NPTS         int
	StartTime    time.Time
	EndTime      time.Time

	StLa, StLo, StEl float64
	EvLa, EvLo, EvEl float64

	// Extra carries producer-specific fields; it is copied through unchanged.
	Extra map[string]any
}

// TraceStats is the metadata of one of the two correlated channels.
type TraceStats struct {
	SeedID

	SamplingRate float64
	NPTS         int
	StartTime    time.Time
	EndTime      time.Time

	Extra map[string]any
}

// Matrix is a correlation matrix: Data[i] is the trace computed for the
// window starting at Time[i]. Trace1 -> Trace2 is the causal direction.
type Matrix struct {
	Data   [][]float64
	Time   []time.Time
	Stats  Stats
	Trace1 TraceStats
	Trace2 TraceStats

	// Extra carries producer-specific fields; it is copied through unchanged.
	Extra map[string]any
}

// NumTraces returns the number of traces (rows).
func (m *Matrix) NumTraces() int {
	return len(m.Data)
}

// LagStart returns the lag of the first sample in seconds.
func (m *Matrix) LagStart() float64 {
	return timeconv.LagSeconds(m.Stats.StartTime)
}

// LagEnd returns the lag of the last sample in seconds.
func (m *Matrix) LagEnd() float64 {
	return timeconv.LagSeconds(m.Stats.EndTime)
}

// Validate checks the structural invariants every operation relies on.
func (m *Matrix) Validate() error {
	const op = "validate"

	if m == nil {
		return invalidf(op, "nil matrix")
	}

	sr := m.Stats.SamplingRate
	if !(sr > 0) || math.IsInf(sr, 0) {
		return invalidf(op, "sampling rate %v", sr)
	}
	if m.Stats.NPTS <= 0 {
		return invalidf(op, "npts %d", m.Stats.NPTS)
	}
	if len(m.Data) != len(m.Time) {
		return invalidf(op, "%d traces but %d times", len(m.Data), len(m.Time))
	}
	for i, row := range m.Data {
		if len(row) != m.Stats.NPTS {
			return invalidf(op, "trace %d has %d samples, npts is %d", i, len(row), m.Stats.NPTS)
		}
	}

	span := m.Stats.EndTime.Sub(m.Stats.StartTime).Seconds()
	want := float64(m.Stats.NPTS-1) / sr
	if math.Abs(span-want) > max(0.01/sr, 2*timeResolution) {
		return invalidf(op, "lag span %gs does not match npts %d at %g Hz", span, m.Stats.NPTS, sr)
	}

	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := m.cloneMeta()
	out.Data = make([][]float64, len(m.Data))
	for i, row := range m.Data {
		out.Data[i] = slices.Clone(row)
	}
	return out
}

// cloneMeta copies everything except Data.
func (m *Matrix) cloneMeta() *Matrix {
	out := &Matrix{
		Time:   slices.Clone(m.Time),
		Stats:  m.Stats,
		Trace1: m.Trace1,
		Trace2: m.Trace2,
		Extra:  maps.Clone(m.Extra),
	}
	out.Stats.Extra = maps.Clone(m.Stats.Extra)
	out.Trace1.Extra = maps.Clone(m.Trace1.Extra)
	out.Trace2.Extra = maps.Clone(m.Trace2.Extra)
	if out.Time == nil {
		out.Time = []time.Time{}
	}
	return out
}

// sampleOffset is the lag distance of sample i from the first sample.
func sampleOffset(i int, sr float64) time.Duration {
	return timeconv.Seconds(float64(i) / sr)
}

// indexSnap absorbs float noise when converting lag times to sample indices.
const indexSnap = 1e-6

// timeResolution is the rounding step of lag times stored as time.Time.
const timeResolution = float64(time.Nanosecond) / float64(time.Second)

// snapTolerance is the distance in samples within which an index is taken as
// whole. Two lag times each rounded to the nanosecond differ from the exact
// span by up to one nanosecond, which is sr*1e-9 samples.
func snapTolerance(sr float64) float64 {
	return max(indexSnap, 2*timeResolution*sr)
}

func floorIndex(x, sr float64) int {
	if r := math.Round(x); math.Abs(x-r) < snapTolerance(sr) {
		return int(r)
	}
	return int(math.Floor(x))
}

func ceilIndex(x, sr float64) int {
	if r := math.Round(x); math.Abs(x-r) < snapTolerance(sr) {
		return int(r)
	}
	return int(math.Ceil(x))
}

func allFinite(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}
