package timing

import "time"

// Stopwatch projects elapsed time since a server-supplied start instant.
type Stopwatch struct {
	start   time.Time
	idle    bool
	elapsed time.Duration
}

// NewStopwatch builds a stopwatch; a nil start leaves it idle.
func NewStopwatch(start *time.Time) *Stopwatch {
	if start == nil || start.IsZero() {
		return &Stopwatch{idle: true}
	}
	return &Stopwatch{start: *start}
}

// Idle reports whether the stopwatch has no start instant.
func (s *Stopwatch) Idle() bool {
	return s.idle
}

// Tick records now-start, clamped at zero when the local clock lags the server.
func (s *Stopwatch) Tick(now time.Time) time.Duration {
	if s.idle {
		return 0
	}
	elapsed := now.Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	s.elapsed = elapsed
	return elapsed
}

// Elapsed returns the value observed on the last tick.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}
