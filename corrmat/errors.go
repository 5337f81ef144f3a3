package corrmat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed matrix or malformed parameters.
	ErrInvalidInput = errors.New("corrmat: invalid input")
	// ErrRange reports a window outside the lag axis of the data.
	ErrRange = errors.New("corrmat: window out of range")
)

// OpError ties a failure to the operation that produced it.
type OpError struct {
	Op  string
	Msg string
	Err error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("corrmat: %s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("corrmat: %s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func invalidf(op, format string, args ...any) error {
	return &OpError{Op: op, Msg: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

func rangef(op, format string, args ...any) error {
	return &OpError{Op: op, Msg: fmt.Sprintf(format, args...), Err: ErrRange}
}

// SkippedInputWarning describes a Merge input that was left out because its
// sampling rate differs from the first input's.
type SkippedInputWarning struct {
	Index        int
	SamplingRate float64
	Want         float64
}

func (w SkippedInputWarning) Error() string {
	return fmt.Sprintf("corrmat: merge: input %d skipped: sampling rate %g Hz, want %g Hz",
		w.Index, w.SamplingRate, w.Want)
}
