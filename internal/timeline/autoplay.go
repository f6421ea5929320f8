package timeline

import (
	"context"
	"sync"
	"time"
)

// Phase names one time-bounded segment of the scripted demo sequence.
type Phase string

const (
	PhaseAwakening    Phase = "awakening"
	PhaseIntelligence Phase = "intelligence"
	PhaseClimax       Phase = "climax"
	PhaseResolution   Phase = "resolution"
)

// PhaseConfig is one segment of the timeline partition. Segments are
// contiguous and exhaustive: each End equals the next Start, the first Start
// is zero and the last End is the total duration.
type PhaseConfig struct {
	Phase Phase
	Start time.Duration
	End   time.Duration
}

// TotalDuration is the length of the reference demo timeline.
const TotalDuration = 60 * time.Second

// DefaultPhases is the reference 4-phase partition of the 60 second demo.
var DefaultPhases = []PhaseConfig{
	{Phase: PhaseAwakening, Start: 0, End: 5 * time.Second},
	{Phase: PhaseIntelligence, Start: 5 * time.Second, End: 35 * time.Second},
	{Phase: PhaseClimax, Start: 35 * time.Second, End: 50 * time.Second},
	{Phase: PhaseResolution, Start: 50 * time.Second, End: TotalDuration},
}

// AutoPlayOptions configures an AutoPlay sequencer.
type AutoPlayOptions struct {
	Phases        []PhaseConfig // nil means DefaultPhases
	AutoStart     bool
	OnPhaseChange func(Phase)
	OnComplete    func()
	Clock         func() time.Time
}

// AutoPlay layers the phase sequence on a looping pausable Timer. The active
// phase is found by scanning the partition from the end for the first phase
// whose start is at or below elapsed, so at an exact boundary the later
// phase wins. The phase-change callback fires once per transition, not per
// sample.
type AutoPlay struct {
	Timer  *Timer
	phases []PhaseConfig

	mu      sync.Mutex
	current Phase
	onPhase func(Phase)
}

// NewAutoPlay creates the sequencer and its backing looping timer.
func NewAutoPlay(opts AutoPlayOptions) *AutoPlay {
	phases := opts.Phases
	if len(phases) == 0 {
		phases = DefaultPhases
	}
	total := phases[len(phases)-1].End

	a := &AutoPlay{
		phases:  phases,
		current: phases[0].Phase,
		onPhase: opts.OnPhaseChange,
	}
	a.Timer = NewTimer(TimerOptions{
		Duration:   total,
		AutoStart:  opts.AutoStart,
		Loop:       true,
		OnComplete: opts.OnComplete,
		Clock:      opts.Clock,
	})
	return a
}

// phaseAt returns the phase containing elapsed, favoring later phases at
// exact boundaries.
func (a *AutoPlay) phaseAt(elapsed time.Duration) PhaseConfig {
	for i := len(a.phases) - 1; i >= 0; i-- {
		if elapsed >= a.phases[i].Start {
			return a.phases[i]
		}
	}
	return a.phases[0]
}

// CurrentPhase samples the timer and reports the active phase, firing the
// phase-change callback when the phase moved since the previous sample.
func (a *AutoPlay) CurrentPhase() Phase {
	elapsed := a.Timer.Elapsed()
	next := a.phaseAt(elapsed).Phase

	a.mu.Lock()
	changed := next != a.current
	if changed {
		a.current = next
	}
	cb := a.onPhase
	a.mu.Unlock()

	if changed && cb != nil {
		cb(next)
	}
	return next
}

// PhaseProgress reports completion of one phase in [0,1]: 0 before its
// start, 1 at or past its end, linear in between.
func (a *AutoPlay) PhaseProgress(phase Phase) float64 {
	cfg, ok := a.find(phase)
	if !ok {
		return 0
	}
	elapsed := a.Timer.Elapsed()
	if elapsed < cfg.Start {
		return 0
	}
	if elapsed >= cfg.End {
		return 1
	}
	return float64(elapsed-cfg.Start) / float64(cfg.End-cfg.Start)
}

// IsPhaseActive reports whether elapsed lies in [start, end) of the phase.
func (a *AutoPlay) IsPhaseActive(phase Phase) bool {
	cfg, ok := a.find(phase)
	if !ok {
		return false
	}
	elapsed := a.Timer.Elapsed()
	return elapsed >= cfg.Start && elapsed < cfg.End
}

// IsPhaseComplete reports whether elapsed has reached the phase's end.
func (a *AutoPlay) IsPhaseComplete(phase Phase) bool {
	cfg, ok := a.find(phase)
	if !ok {
		return false
	}
	return a.Timer.Elapsed() >= cfg.End
}

func (a *AutoPlay) find(phase Phase) (PhaseConfig, bool) {
	for _, p := range a.phases {
		if p.Phase == phase {
			return p, true
		}
	}
	return PhaseConfig{}, false
}

// Reset rewinds the timer and the recorded phase to the start of the
// sequence.
func (a *AutoPlay) Reset() {
	a.Timer.Reset()
	a.mu.Lock()
	a.current = a.phases[0].Phase
	a.mu.Unlock()
}

// Run polls the sequence at the given interval until ctx is done. Each
// sample advances the timer and evaluates phase transitions.
func (a *AutoPlay) Run(ctx context.Context, interval time.Duration) {
	a.Timer.Run(ctx, interval, func(time.Duration) {
		a.CurrentPhase()
	})
}
