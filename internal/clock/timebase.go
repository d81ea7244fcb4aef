package clock

import "time"

// timebase is the timing state both source variants run on. Elapsed time is
// always recomputed from the accumulated base and the start instant, never
// from tick counts, so missed or delayed ticks cause no drift.
type timebase struct {
	accumulated  int64
	startInstant time.Time
	running      bool
}

// start begins advancing from fromMs. Returns false if already running.
func (t *timebase) start(fromMs int64) bool {
	if t.running {
		return false
	}
	t.accumulated = fromMs
	t.startInstant = time.Now()
	t.running = true
	return true
}

// pause freezes elapsed time at its current value. Returns false if not
// running.
func (t *timebase) pause() bool {
	if !t.running {
		return false
	}
	t.accumulated = t.elapsed()
	t.running = false
	return true
}

// reset stops the clock and zeroes elapsed time, whatever the prior state.
func (t *timebase) reset() {
	t.accumulated = 0
	t.running = false
}

// elapsed returns the current elapsed milliseconds.
func (t *timebase) elapsed() int64 {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + time.Since(t.startInstant).Milliseconds()
}
