package game

import "time"

// Scheduler converts wall-clock frames into fixed simulation ticks. When the
// caller falls behind it catches up by at most maxTicks ticks per frame, then
// drops the rest and resynchronises.
type Scheduler struct {
	period   time.Duration
	maxTicks int
	next     time.Duration
	started  bool
}

// NewScheduler creates a scheduler running at fps ticks per second.
func NewScheduler(fps, maxDropped int) *Scheduler {
	if fps <= 0 {
		fps = FPS
	}
	if maxDropped <= 0 {
		maxDropped = 1
	}
	return &Scheduler{
		period:   time.Second / time.Duration(fps),
		maxTicks: maxDropped,
	}
}

// Period returns the duration of one tick.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Advance reports how many ticks are due at now and whether a frame should be
// rendered. The first call only primes the clock and forces a render.
func (s *Scheduler) Advance(now time.Duration) (ticks int, render bool) {
	if !s.started {
		s.started = true
		s.next = now + s.period
		return 0, true
	}

	for s.next <= now {
		if ticks >= s.maxTicks {
			s.next = now + s.period
			ticks = 1
			break
		}
		s.next += s.period
		ticks++
	}
	return ticks, ticks > 0
}

// Reset makes the next Advance behave like the first.
func (s *Scheduler) Reset() {
	s.started = false
}
