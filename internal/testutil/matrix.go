// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"time"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/timeconv"
)

// T0 is the window time of the first trace built by NewMatrix.
var T0 = time.Date(2012, time.June, 1, 0, 0, 0, 0, time.UTC)

// MatrixSpec describes a synthetic correlation matrix.
type MatrixSpec struct {
	SamplingRate float64
	NPTS         int
	LagStart     float64 // seconds relative to timeconv.ZeroLag
	Times        []time.Time
	// Sample returns the value of trace i at sample j; nil yields 100*i + j.
	Sample func(i, j int) float64
}

// NewMatrix builds a matrix that satisfies every corrmat invariant.
func NewMatrix(spec MatrixSpec) *corrmat.Matrix {
	sample := spec.Sample
	if sample == nil {
		sample = func(i, j int) float64 { return float64(100*i + j) }
	}

	data := make([][]float64, len(spec.Times))
	for i := range data {
		row := make([]float64, spec.NPTS)
		for j := range row {
			row[j] = sample(i, j)
		}
		data[i] = row
	}

	start := timeconv.Lag(spec.LagStart)
	end := start.Add(timeconv.Seconds(float64(spec.NPTS-1) / spec.SamplingRate))

	return &corrmat.Matrix{
		Data: data,
		Time: append([]time.Time(nil), spec.Times...),
		Stats: corrmat.Stats{
			SeedID:       corrmat.SeedID{Network: "GR-GR", Station: "WET-FUR", Location: "-", Channel: "HHZ-HHZ"},
			SamplingRate: spec.SamplingRate,
			NPTS:         spec.NPTS,
			StartTime:    start,
			EndTime:      end,
			StLa:         49.14, StLo: 12.88, StEl: 613,
			EvLa: 48.16, EvLo: 11.28, EvEl: 565,
			Extra: map[string]any{"corr_type": "crosscorrelation"},
		},
		Trace1: corrmat.TraceStats{
			SeedID:       corrmat.SeedID{Network: "GR", Station: "WET", Channel: "HHZ"},
			SamplingRate: spec.SamplingRate,
		},
		Trace2: corrmat.TraceStats{
			SeedID:       corrmat.SeedID{Network: "GR", Station: "FUR", Channel: "HHZ"},
			SamplingRate: spec.SamplingRate,
		},
		Extra: map[string]any{"processing": "prewhitened"},
	}
}

// Times returns n trace times starting at T0 spaced by step.
func Times(n int, step time.Duration) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = T0.Add(time.Duration(i) * step)
	}
	return out
}
