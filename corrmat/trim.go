package corrmat

// Trim restricts the lag axis of m to w. The start index is rounded down and
// the end index up, so the result always covers the requested span. A window
// reaching outside the available samples fails with ErrRange and m is left
// as it was.
func Trim(m *Matrix, w Window) (*Matrix, error) {
	const op = "trim"

	if err := m.Validate(); err != nil {
		return nil, &OpError{Op: op, Msg: "matrix", Err: err}
	}

	i0, i1, err := sampleRange(op, m, w)
	if err != nil {
		return nil, err
	}

	out := m.cloneMeta()
	out.Data = make([][]float64, len(m.Data))
	for i, row := range m.Data {
		out.Data[i] = append([]float64(nil), row[i0:i1+1]...)
	}

	sr := m.Stats.SamplingRate
	out.Stats.StartTime = m.Stats.StartTime.Add(sampleOffset(i0, sr))
	out.Stats.EndTime = m.Stats.StartTime.Add(sampleOffset(i1, sr))
	out.Stats.NPTS = i1 - i0 + 1

	return out, nil
}

// sampleRange returns the inclusive sample indices enclosing w.
func sampleRange(op string, m *Matrix, w Window) (int, int, error) {
	if w == nil {
		return 0, 0, invalidf(op, "nil window")
	}

	start, end := w.bounds()
	if end.Before(start) {
		return 0, 0, rangef(op, "window end %v before start %v", end, start)
	}

	sr := m.Stats.SamplingRate
	i0 := floorIndex(start.Sub(m.Stats.StartTime).Seconds()*sr, sr)
	i1 := ceilIndex(end.Sub(m.Stats.StartTime).Seconds()*sr, sr)

	if i0 < 0 {
		return 0, 0, rangef(op, "start %v before first sample %v", start, m.Stats.StartTime)
	}
	if i1 >= m.Stats.NPTS {
		return 0, 0, rangef(op, "end %v after last sample %v", end, m.Stats.EndTime)
	}

	return i0, i1, nil
}
