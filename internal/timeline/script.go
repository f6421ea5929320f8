package timeline

import (
	"sync"
	"time"
)

// ScriptCue pairs a narration trigger with the elapsed offset where it
// becomes due.
type ScriptCue struct {
	Trigger Trigger
	At      time.Duration
}

// DefaultScript is the reference cue sheet for the 60 second demo: the
// first data stream appears two seconds in, code generation and analysis
// land mid-intelligence, the anomaly cue opens the climax and the final cue
// opens the resolution.
var DefaultScript = []ScriptCue{
	{TriggerStream1, 2 * time.Second},
	{TriggerCodeGenerating, 10 * time.Second},
	{TriggerAllStreams, 14 * time.Second},
	{TriggerAnalysis, 25 * time.Second},
	{TriggerAnomaly, 35 * time.Second},
	{TriggerResolution, 50 * time.Second},
}

// Session couples the phase sequencer with the narration script. Sampling
// fires every cue whose offset has been reached, each at most once per
// play-through; cues stay fired across loop restarts until Reset.
type Session struct {
	Auto     *AutoPlay
	narrator *Narrator

	mu    sync.Mutex
	cues  []ScriptCue
	onCue func(Trigger)
}

// SessionState is one observed snapshot of the demo session.
type SessionState struct {
	Phase         Phase     `json:"phase"`
	ElapsedMillis int64     `json:"elapsedMs"`
	Progress      float64   `json:"progress"`
	PhaseProgress float64   `json:"phaseProgress"`
	Paused        bool      `json:"paused"`
	Narration     []Trigger `json:"narration"`
}

// NewSession creates a demo session. nil cues means DefaultScript; onCue
// may be nil.
func NewSession(opts AutoPlayOptions, cues []ScriptCue, onCue func(Trigger)) *Session {
	if cues == nil {
		cues = DefaultScript
	}
	return &Session{
		Auto:     NewAutoPlay(opts),
		narrator: NewNarrator(),
		cues:     cues,
		onCue:    onCue,
	}
}

// Sample advances the session clock, fires due narration cues and returns
// the current state.
func (s *Session) Sample() SessionState {
	elapsed := s.Auto.Timer.Elapsed()
	phase := s.Auto.CurrentPhase()

	s.mu.Lock()
	cues := s.cues
	cb := s.onCue
	s.mu.Unlock()

	for _, cue := range cues {
		if elapsed < cue.At {
			continue
		}
		if s.narrator.Fire(cue.Trigger) && cb != nil {
			cb(cue.Trigger)
		}
	}

	return SessionState{
		Phase:         phase,
		ElapsedMillis: elapsed.Milliseconds(),
		Progress:      s.Auto.Timer.Progress(),
		PhaseProgress: s.Auto.PhaseProgress(phase),
		Paused:        s.Auto.Timer.IsPaused(),
		Narration:     s.firedTriggers(),
	}
}

// Toggle flips the underlying timer between running and paused.
func (s *Session) Toggle() { s.Auto.Timer.Toggle() }

// Reset rewinds the sequence and clears all narration cues.
func (s *Session) Reset() {
	s.Auto.Reset()
	s.narrator.Reset()
}

func (s *Session) firedTriggers() []Trigger {
	fired := make([]Trigger, 0, len(s.cues))
	for _, cue := range s.cues {
		if s.narrator.Fired(cue.Trigger) {
			fired = append(fired, cue.Trigger)
		}
	}
	return fired
}
