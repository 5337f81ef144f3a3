// Package corrmat transforms correlation matrices: time-ordered stacks of
// cross-correlation traces computed between two stations and sharing one lag
// axis anchored at [timeconv.ZeroLag].
//
// Every operation takes a *Matrix, leaves it untouched, and returns either a
// new matrix that satisfies the invariants checked by [Matrix.Validate] or an
// error. Errors wrap [ErrInvalidInput] for malformed matrices or parameters
// and [ErrRange] for windows that fall outside the available lag axis:
//
//	out, err := corrmat.Trim(m, corrmat.LagWindow{Start: -50, End: 50})
//	if errors.Is(err, corrmat.ErrRange) {
//		// requested lag window not covered by m
//	}
//
// Operations:
//   - Trim: crop the lag axis to a LagWindow or AbsoluteWindow
//   - Filter: zero-phase Butterworth band-pass along the lag axis
//   - Reverse: swap the station roles (causal <-> acausal)
//   - TimeSelect: keep traces whose time lies in a half-open range
//   - Resample: rebin traces onto caller-defined time bins
//   - Merge: stack matrices of one station pair on their common lag window
//   - Normalize, Taper, Stack, Similarity, Mirror, Shift: trace utilities
//   - SNR, Statistics: per-trace quality measures from stats/trace
package corrmat
