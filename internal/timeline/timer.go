package timeline

import (
	"context"
	"sync"
	"time"
)

// loopGrace is the delay between a looping timer completing and its elapsed
// resetting to zero for the next cycle.
const loopGrace = 100 * time.Millisecond

// DefaultSampleInterval approximates a 60Hz frame cadence for consumers that
// want a polling loop instead of on-demand sampling.
const DefaultSampleInterval = 16 * time.Millisecond

// TimerOptions configures a Timer.
type TimerOptions struct {
	Duration   time.Duration
	AutoStart  bool
	Loop       bool
	OnComplete func()
	// Clock overrides the wall-clock source; nil means time.Now. Tests use
	// this to drive the timer deterministically.
	Clock func() time.Time
}

// Timer is a pausable, resumable elapsed-time counter. Elapsed is computed
// on demand from a clock delta, so a headless caller needs no background
// tick; Run provides an optional polling loop for frame-driven consumers.
//
// Pausing freezes elapsed; resuming re-anchors the clock at "now minus
// frozen" so elapsed continues exactly where it stopped, with no time lost
// or gained across the pause.
type Timer struct {
	mu        sync.Mutex
	duration  time.Duration
	loop      bool
	autoStart bool
	clock     func() time.Time
	onDone    func()

	anchor   time.Time
	frozen   time.Duration
	paused   bool
	complete bool
	// doneAt is the wall-clock instant the current cycle completed; the next
	// loop cycle anchors at doneAt+loopGrace.
	doneAt time.Time
}

// NewTimer creates a Timer. The initial state is Running with elapsed 0 when
// AutoStart is set, otherwise Paused.
func NewTimer(opts TimerOptions) *Timer {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	t := &Timer{
		duration:  opts.Duration,
		loop:      opts.Loop,
		autoStart: opts.AutoStart,
		clock:     clock,
		onDone:    opts.OnComplete,
		paused:    !opts.AutoStart,
	}
	t.anchor = clock()
	return t
}

// Elapsed samples the timer, advancing completion and loop state as a side
// effect. The returned value never exceeds the configured duration and is
// monotonically non-decreasing while Running.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	e, fire := t.sample()
	t.mu.Unlock()
	if fire != nil {
		fire()
	}
	return e
}

// sample computes elapsed under the lock and returns a completion callback
// to invoke outside it, if a completion event occurred.
func (t *Timer) sample() (time.Duration, func()) {
	if t.paused {
		return t.frozen, nil
	}

	var fire func()
	now := t.clock()

	for {
		e := now.Sub(t.anchor)
		if e < t.duration {
			t.frozen = e
			return e, fire
		}

		if !t.complete {
			t.complete = true
			t.doneAt = t.anchor.Add(t.duration)
			t.frozen = t.duration
			if t.onDone != nil {
				fire = t.onDone
			}
		}

		if !t.loop {
			return t.duration, fire
		}

		restart := t.doneAt.Add(loopGrace)
		if now.Before(restart) {
			return t.duration, fire
		}

		// Next loop cycle begins at the grace boundary, not at the sampling
		// instant, so elapsed stays continuous across sparse samples.
		t.anchor = restart
		t.complete = false
	}
}

// Progress reports elapsed as a fraction of the total duration in [0,1].
func (t *Timer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.Elapsed()) / float64(t.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// Remaining reports the time left in the current cycle.
func (t *Timer) Remaining() time.Duration {
	r := t.duration - t.Elapsed()
	if r < 0 {
		r = 0
	}
	return r
}

// Duration returns the configured total duration.
func (t *Timer) Duration() time.Duration { return t.duration }

// IsPaused reports whether the timer is paused.
func (t *Timer) IsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// IsComplete reports whether the current cycle has reached the total
// duration. A looping timer clears this once the next cycle starts.
func (t *Timer) IsComplete() bool {
	t.Elapsed()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.complete
}

// Pause freezes elapsed at its current value. Pausing a paused timer is a
// no-op.
func (t *Timer) Pause() {
	t.mu.Lock()
	e, fire := t.sample()
	t.frozen = e
	t.paused = true
	t.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// Resume continues from the frozen elapsed value.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.paused {
		return
	}
	t.anchor = t.clock().Add(-t.frozen)
	t.paused = false
}

// Toggle pauses a running timer or resumes a paused one.
func (t *Timer) Toggle() {
	t.mu.Lock()
	paused := t.paused
	t.mu.Unlock()
	if paused {
		t.Resume()
	} else {
		t.Pause()
	}
}

// Reset forces elapsed back to zero. The timer returns to Running when it
// was configured to auto-start, otherwise it stays Paused.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = 0
	t.complete = false
	t.anchor = t.clock()
	t.paused = !t.autoStart
}

// Run polls the timer at the given interval until ctx is done, invoking
// onSample with the current elapsed value. Zero interval uses the 60Hz
// default. Completion callbacks fire from inside the poll, matching the
// frame-driven model the timer was designed around.
func (t *Timer) Run(ctx context.Context, interval time.Duration, onSample func(elapsed time.Duration)) {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e := t.Elapsed()
			if onSample != nil {
				onSample(e)
			}
		}
	}
}
