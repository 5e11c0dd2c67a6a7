package klog

import "time"

// Stopwatch times a named phase of work and logs its elapsed duration at
// debug level when the stopwatch is stopped, if the elapsed time exceeds
// threshold.
type Stopwatch struct {
	name      string
	start     time.Time
	threshold time.Duration
	stopped   bool
}

// NewStopwatch starts a stopwatch named name that only logs if more than
// threshold elapses before Stop is called.
func NewStopwatch(name string, threshold time.Duration) *Stopwatch {
	return &Stopwatch{name: name, start: time.Now(), threshold: threshold}
}

// Stop records the elapsed time and logs it if it exceeds the configured
// threshold. Calling Stop more than once has no further effect.
func (s *Stopwatch) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	elapsed := time.Since(s.start)
	if elapsed <= s.threshold {
		return
	}
	Debugf("<STOPWATCH> %s: %s", s.name, elapsed)
}
