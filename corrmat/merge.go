package corrmat

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/cwbudde/algo-corrmat/internal/logging"
)

// Merge stacks the traces of several matrices of one station pair into one
// matrix covering the lag window shared by all of them. Metadata consistency
// between inputs is not checked.
//
// Inputs whose sampling rate differs from the first input's are skipped and
// reported through the logger and skip hook; they are not validated, so a
// skipped input never fails the merge. Every remaining input is trimmed to
// the common window before its traces and times are appended in input
// order. The identifiers of the first input are kept unless WithSeedID
// overrides them.
func Merge(inputs []*Matrix, opts ...MergeOption) (*Matrix, error) {
	const op = "merge"

	cfg := mergeConfig{logger: logging.Discard()}
	for _, o := range opts {
		o(&cfg)
	}

	if len(inputs) == 0 {
		return nil, invalidf(op, "no input matrices")
	}
	if err := inputs[0].Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: inputMsg(0), Err: err}
	}

	sr := inputs[0].Stats.SamplingRate
	used := make([]int, 0, len(inputs))
	start := inputs[0].Stats.StartTime
	end := lastSample(inputs[0])

	for i, in := range inputs {
		if in != nil && in.Stats.SamplingRate != sr {
			w := SkippedInputWarning{Index: i, SamplingRate: in.Stats.SamplingRate, Want: sr}
			cfg.logger.Warn("merge input skipped",
				slog.Int("index", i),
				slog.Float64("sampling_rate", w.SamplingRate),
				slog.Float64("want", sr))
			if cfg.hook != nil {
				cfg.hook(w)
			}
			continue
		}
		if err := in.Validate(); err != nil {
			return nil, &OpError{Op: op, Msg: inputMsg(i), Err: err}
		}

		used = append(used, i)
		if in.Stats.StartTime.After(start) {
			start = in.Stats.StartTime
		}
		if e := lastSample(in); e.Before(end) {
			end = e
		}
	}

	if start.After(end) {
		return nil, rangef(op, "inputs share no lag window (start %v after end %v)", start, end)
	}

	window := AbsoluteWindow{Start: start, End: end}
	var out *Matrix
	for _, i := range used {
		trimmed, err := Trim(inputs[i], window)
		if err != nil {
			return nil, &OpError{Op: op, Msg: inputMsg(i), Err: err}
		}

		if out == nil {
			out = trimmed
			continue
		}
		if trimmed.Stats.NPTS != out.Stats.NPTS {
			return nil, rangef(op, "%s: %d samples on common window, first input has %d",
				inputMsg(i), trimmed.Stats.NPTS, out.Stats.NPTS)
		}
		out.Data = append(out.Data, trimmed.Data...)
		out.Time = append(out.Time, trimmed.Time...)
	}

	applySeedID(&out.Stats.SeedID, cfg.seed)

	return out, nil
}

func lastSample(m *Matrix) time.Time {
	return m.Stats.StartTime.Add(sampleOffset(m.Stats.NPTS-1, m.Stats.SamplingRate))
}

func applySeedID(dst *SeedID, override SeedID) {
	if override.Network != "" {
		dst.Network = override.Network
	}
	if override.Station != "" {
		dst.Station = override.Station
	}
	if override.Location != "" {
		dst.Location = override.Location
	}
	if override.Channel != "" {
		dst.Channel = override.Channel
	}
}

func inputMsg(i int) string {
	return "input " + strconv.Itoa(i)
}
