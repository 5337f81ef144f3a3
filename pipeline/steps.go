package pipeline

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/dsp/window"
	"github.com/cwbudde/algo-corrmat/timeconv"
)

type applyFunc func(*corrmat.Matrix) (*corrmat.Matrix, error)

type stage struct {
	index int
	step  Step
	apply applyFunc
}

func (r *Recipe) compile(conv timeconv.Converter) ([]stage, error) {
	stages := make([]stage, 0, len(r.Steps))
	for i, s := range r.Steps {
		fn, err := s.compile(conv, r.FilterOrder)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", ErrInvalidRecipe, i, s.Op, err)
		}
		stages = append(stages, stage{index: i, step: s, apply: fn})
	}
	return stages, nil
}

func (s Step) compile(conv timeconv.Converter, defaultOrder int) (applyFunc, error) {
	switch s.Op {
	case OpFilter:
		if len(s.Freqs) != 2 {
			return nil, fmt.Errorf("freqs needs [low, high], got %v", s.Freqs)
		}
		order := s.Order
		if order == 0 {
			order = defaultOrder
		}
		freqs := []float64{s.Freqs[0], s.Freqs[1]}
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Filter(m, freqs, corrmat.WithFilterOrder(order))
		}, nil

	case OpTrim:
		w, err := s.trimWindow(conv)
		if err != nil {
			return nil, err
		}
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Trim(m, w)
		}, nil

	case OpReverse:
		return corrmat.Reverse, nil

	case OpSelect:
		start, err := optionalTime(conv, s.Start)
		if err != nil {
			return nil, err
		}
		end, err := optionalTime(conv, s.End)
		if err != nil {
			return nil, err
		}
		r := corrmat.TimeRange{Start: start, End: end}
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.TimeSelect(m, r)
		}, nil

	case OpResample:
		starts, ends, err := s.bins(conv)
		if err != nil {
			return nil, err
		}
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Resample(m, starts, ends)
		}, nil

	case OpNormalize:
		method, ok := corrmat.ParseNormMethod(s.Method)
		if !ok {
			return nil, fmt.Errorf("unknown method %q", s.Method)
		}
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Normalize(m, method)
		}, nil

	case OpTaper:
		opts, err := s.taperOptions()
		if err != nil {
			return nil, err
		}
		width := s.Width
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Taper(m, width, opts...)
		}, nil

	case OpStack:
		return corrmat.Stack, nil

	case OpMirror:
		return corrmat.Mirror, nil

	case OpShift:
		seconds := s.Seconds
		return func(m *corrmat.Matrix) (*corrmat.Matrix, error) {
			return corrmat.Shift(m, seconds)
		}, nil
	}

	return nil, fmt.Errorf("unknown op %q", s.Op)
}

func (s Step) trimWindow(conv timeconv.Converter) (corrmat.Window, error) {
	if len(s.Lag) > 0 {
		if len(s.Lag) != 2 {
			return nil, fmt.Errorf("lag needs [start, end], got %v", s.Lag)
		}
		return corrmat.LagWindow{Start: s.Lag[0], End: s.Lag[1]}, nil
	}

	if s.Start == "" || s.End == "" {
		return nil, fmt.Errorf("needs lag or start and end")
	}
	ts, err := conv.ToAbsolute([]string{s.Start, s.End})
	if err != nil {
		return nil, err
	}
	return corrmat.AbsoluteWindow{Start: ts[0], End: ts[1]}, nil
}

func (s Step) bins(conv timeconv.Converter) ([]time.Time, []time.Time, error) {
	if s.Every > 0 {
		if len(s.Starts) > 0 || len(s.Ends) > 0 {
			return nil, nil, fmt.Errorf("every excludes starts and ends")
		}
		if s.Start == "" || s.End == "" {
			return nil, nil, fmt.Errorf("every needs start and end")
		}
		ts, err := conv.ToAbsolute([]string{s.Start, s.End})
		if err != nil {
			return nil, nil, err
		}
		if !ts[0].Before(ts[1]) {
			return nil, nil, fmt.Errorf("end %s not after start %s", s.End, s.Start)
		}
		var starts []time.Time
		for t := ts[0]; t.Before(ts[1]); t = t.Add(s.Every) {
			starts = append(starts, t)
		}
		return starts, nil, nil
	}

	if len(s.Starts) == 0 {
		return nil, nil, fmt.Errorf("needs starts or every")
	}
	starts, err := conv.ToAbsolute(s.Starts)
	if err != nil {
		return nil, nil, err
	}
	var ends []time.Time
	if len(s.Ends) > 0 {
		if len(s.Ends) != len(s.Starts) {
			return nil, nil, fmt.Errorf("%d ends for %d starts", len(s.Ends), len(s.Starts))
		}
		if ends, err = conv.ToAbsolute(s.Ends); err != nil {
			return nil, nil, err
		}
	}
	return starts, ends, nil
}

func (s Step) taperOptions() ([]corrmat.TaperOption, error) {
	var opts []corrmat.TaperOption

	if s.Window != "" {
		typ, ok := window.ParseType(s.Window)
		if !ok {
			return nil, fmt.Errorf("unknown window %q", s.Window)
		}
		opts = append(opts, corrmat.WithTaperWindow(typ))
	}

	slope, ok := window.ParseSlope(s.Slope)
	if !ok {
		return nil, fmt.Errorf("unknown slope %q", s.Slope)
	}
	return append(opts, corrmat.WithTaperSlope(slope)), nil
}

func optionalTime(conv timeconv.Converter, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := conv.ToAbsolute([]string{s})
	if err != nil {
		return time.Time{}, err
	}
	return ts[0], nil
}
