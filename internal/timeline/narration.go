package timeline

import "sync"

// Trigger identifies a one-shot narration point in the demo script.
type Trigger string

const (
	TriggerStream1        Trigger = "stream_1"
	TriggerAllStreams     Trigger = "all_streams"
	TriggerCodeGenerating Trigger = "code_generating"
	TriggerAnalysis       Trigger = "analysis"
	TriggerAnomaly        Trigger = "anomaly"
	TriggerResolution     Trigger = "resolution"
)

// Narrator tracks which one-shot triggers have fired during the current
// play-through. Each trigger fires at most once until the session resets.
type Narrator struct {
	mu    sync.Mutex
	fired map[Trigger]bool
}

// NewNarrator creates an empty Narrator.
func NewNarrator() *Narrator {
	return &Narrator{fired: make(map[Trigger]bool)}
}

// Fire records the trigger and reports true only the first time it is seen
// in this play-through.
func (n *Narrator) Fire(t Trigger) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fired[t] {
		return false
	}
	n.fired[t] = true
	return true
}

// Fired reports whether the trigger already went off.
func (n *Narrator) Fired(t Trigger) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fired[t]
}

// Reset clears all triggers for a new play-through.
func (n *Narrator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired = make(map[Trigger]bool)
}
