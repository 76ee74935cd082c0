package alns

import "time"

// StopParams bounds one ALNS run (spec.md §4.8).
type StopParams struct {
	MaxIterations  int
	MaxNoImprove   int
	WallClockLimit time.Duration
}

// Stopper tracks the iteration and no-improve counters across an ALNS run
// and is queried once per iteration after acceptance (spec.md §4.8).
type Stopper struct {
	params    StopParams
	start     time.Time
	iteration int
	noImprove int
}

// NewStopper starts a stopping-criterion clock at the given start time.
func NewStopper(params StopParams, start time.Time) *Stopper {
	return &Stopper{params: params, start: start}
}

// RecordIteration advances the iteration counter, and the no-improve
// counter unless improved is true.
func (s *Stopper) RecordIteration(improved bool) {
	s.iteration++
	if improved {
		s.noImprove = 0
	} else {
		s.noImprove++
	}
}

// Done reports whether any configured limit has been reached. A
// zero-valued limit (MaxIterations, MaxNoImprove <= 0, or
// WallClockLimit <= 0) is treated as "unbounded" for that dimension.
func (s *Stopper) Done(now time.Time) bool {
	if s.params.MaxIterations > 0 && s.iteration >= s.params.MaxIterations {
		return true
	}
	if s.params.MaxNoImprove > 0 && s.noImprove >= s.params.MaxNoImprove {
		return true
	}
	if s.params.WallClockLimit > 0 && now.Sub(s.start) >= s.params.WallClockLimit {
		return true
	}
	return false
}
