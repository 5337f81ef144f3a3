// Package timeconv converts between the textual timestamps carried by
// correlation-matrix producers and absolute time.Time values.
//
// All arithmetic in this module happens on time.Time; strings are converted
// once at the boundary through a [Converter].
package timeconv

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultLayout is the timestamp layout written by the correlation pipeline.
const DefaultLayout = "2006-01-02T15:04:05.000000Z"

// ZeroLag is the reference epoch of the lag axis. A lag of t seconds is stored
// as ZeroLag + t.
var ZeroLag = time.Date(1971, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrEmptyTimestamp is returned for blank input strings.
var ErrEmptyTimestamp = errors.New("timeconv: empty timestamp")

// Converter maps timestamp strings to absolute time and back.
type Converter interface {
	ToAbsolute(stamps []string) ([]time.Time, error)
	ToString(times []time.Time) []string
}

// Layout converts using a fixed primary layout. Parsing additionally accepts
// RFC 3339 and a few common ISO-8601 variants. All results are UTC.
type Layout struct {
	Format string
}

// NewLayout returns a Layout converter; an empty format selects DefaultLayout.
func NewLayout(format string) Layout {
	if format == "" {
		format = DefaultLayout
	}
	return Layout{Format: format}
}

var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ToAbsolute parses every stamp. The first failure aborts the conversion.
func (l Layout) ToAbsolute(stamps []string) ([]time.Time, error) {
	out := make([]time.Time, len(stamps))
	for i, s := range stamps {
		t, err := l.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("timeconv: stamp %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// Parse converts a single timestamp.
func (l Layout) Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrEmptyTimestamp
	}

	format := l.Format
	if format == "" {
		format = DefaultLayout
	}

	t, err := time.Parse(format, s)
	if err == nil {
		return t.UTC(), nil
	}

	for _, fb := range fallbackLayouts {
		if t, ferr := time.Parse(fb, s); ferr == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
}

// ToString formats every time with the primary layout.
func (l Layout) ToString(times []time.Time) []string {
	format := l.Format
	if format == "" {
		format = DefaultLayout
	}

	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.UTC().Format(format)
	}
	return out
}

// Lag returns the absolute time for a lag of seconds relative to ZeroLag,
// rounded to the nearest nanosecond.
func Lag(seconds float64) time.Time {
	return ZeroLag.Add(Seconds(seconds))
}

// LagSeconds returns the lag of t relative to ZeroLag in seconds.
func LagSeconds(t time.Time) float64 {
	return t.Sub(ZeroLag).Seconds()
}

// Seconds converts a float number of seconds to a Duration, rounding to the
// nearest nanosecond.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
