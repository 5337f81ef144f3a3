package corrmat

import (
	"time"

	"github.com/cwbudde/algo-corrmat/timeconv"
)

// Window selects a span of the lag axis. It is implemented by LagWindow and
// AbsoluteWindow.
type Window interface {
	bounds() (start, end time.Time)
}

// LagWindow is a lag span in seconds relative to timeconv.ZeroLag. Negative
// values address the acausal side.
type LagWindow struct {
	Start float64
	End   float64
}

func (w LagWindow) bounds() (time.Time, time.Time) {
	return timeconv.Lag(w.Start), timeconv.Lag(w.End)
}

// AbsoluteWindow is a lag span given as absolute times on the lag axis.
type AbsoluteWindow struct {
	Start time.Time
	End   time.Time
}

func (w AbsoluteWindow) bounds() (time.Time, time.Time) {
	return w.Start, w.End
}
