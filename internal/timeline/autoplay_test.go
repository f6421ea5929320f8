package timeline

import (
	"testing"
	"time"
)

func newTestAutoPlay(clk *fakeClock, onPhase func(Phase)) *AutoPlay {
	return NewAutoPlay(AutoPlayOptions{
		AutoStart:     true,
		OnPhaseChange: onPhase,
		Clock:         clk.Now,
	})
}

func TestAutoPlay_StartsInAwakening(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	if got := ap.CurrentPhase(); got != PhaseAwakening {
		t.Fatalf("expected awakening at t=0, got %s", got)
	}
	if p := ap.PhaseProgress(PhaseAwakening); p != 0 {
		t.Errorf("expected awakening progress 0, got %v", p)
	}
}

func TestAutoPlay_BoundaryFavorsLaterPhase(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	// At exactly 5s the scan from the end picks intelligence, not awakening.
	clk.Advance(5 * time.Second)
	if got := ap.CurrentPhase(); got != PhaseIntelligence {
		t.Fatalf("expected intelligence at the 5s boundary, got %s", got)
	}
	if ap.IsPhaseActive(PhaseAwakening) {
		t.Error("awakening should be inactive at its end boundary")
	}
	if !ap.IsPhaseComplete(PhaseAwakening) {
		t.Error("awakening should be complete at 5s")
	}
}

func TestAutoPlay_PhaseSchedule(t *testing.T) {
	cases := []struct {
		at   time.Duration
		want Phase
	}{
		{0, PhaseAwakening},
		{4999 * time.Millisecond, PhaseAwakening},
		{5 * time.Second, PhaseIntelligence},
		{34 * time.Second, PhaseIntelligence},
		{35 * time.Second, PhaseClimax},
		{49999 * time.Millisecond, PhaseClimax},
		{50 * time.Second, PhaseResolution},
		{59999 * time.Millisecond, PhaseResolution},
	}
	for _, c := range cases {
		clk := newFakeClock()
		ap := newTestAutoPlay(clk, nil)
		clk.Advance(c.at)
		if got := ap.CurrentPhase(); got != c.want {
			t.Errorf("at %v: expected %s, got %s", c.at, c.want, got)
		}
	}
}

func TestAutoPlay_ResolutionProgressNearEnd(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	clk.Advance(59999 * time.Millisecond)
	p := ap.PhaseProgress(PhaseResolution)
	if p < 0.9998 || p >= 1 {
		t.Fatalf("expected progress just under 1, got %v", p)
	}
}

func TestAutoPlay_NoPhaseActiveAtCompletion(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	// Inside the loop grace window elapsed holds at the total duration; no
	// phase interval contains it since intervals are end-exclusive.
	clk.Advance(TotalDuration + 20*time.Millisecond)
	for _, ph := range []Phase{PhaseAwakening, PhaseIntelligence, PhaseClimax, PhaseResolution} {
		if ap.IsPhaseActive(ph) {
			t.Errorf("phase %s should be inactive at completion", ph)
		}
	}
	if got := ap.CurrentPhase(); got != PhaseResolution {
		t.Errorf("completed timeline should still report the final phase, got %s", got)
	}
}

func TestAutoPlay_LoopRestartsSequence(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	clk.Advance(TotalDuration + 200*time.Millisecond)
	if got := ap.CurrentPhase(); got != PhaseAwakening {
		t.Fatalf("expected awakening after loop restart, got %s", got)
	}
}

func TestAutoPlay_PhaseChangeFiresOncePerTransition(t *testing.T) {
	clk := newFakeClock()
	var changes []Phase
	ap := newTestAutoPlay(clk, func(p Phase) { changes = append(changes, p) })

	ap.CurrentPhase()
	clk.Advance(6 * time.Second)
	ap.CurrentPhase()
	ap.CurrentPhase() // same phase, must not re-fire
	clk.Advance(30 * time.Second)
	ap.CurrentPhase()

	want := []Phase{PhaseIntelligence, PhaseClimax}
	if len(changes) != len(want) {
		t.Fatalf("expected %d transitions, got %d (%v)", len(want), len(changes), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], changes[i])
		}
	}
}

func TestAutoPlay_ResetRewindsPhase(t *testing.T) {
	clk := newFakeClock()
	ap := newTestAutoPlay(clk, nil)

	clk.Advance(40 * time.Second)
	ap.CurrentPhase()
	ap.Reset()
	if got := ap.CurrentPhase(); got != PhaseAwakening {
		t.Fatalf("expected awakening after reset, got %s", got)
	}
	if p := ap.PhaseProgress(PhaseClimax); p != 0 {
		t.Errorf("expected climax progress 0 after reset, got %v", p)
	}
}

func TestNarrator_FiresOncePerPlaythrough(t *testing.T) {
	n := NewNarrator()
	if !n.Fire(TriggerStream1) {
		t.Fatal("first fire should succeed")
	}
	if n.Fire(TriggerStream1) {
		t.Fatal("second fire of the same trigger should be suppressed")
	}
	if !n.Fired(TriggerStream1) {
		t.Fatal("trigger should be recorded as fired")
	}
	if n.Fired(TriggerAnomaly) {
		t.Fatal("unfired trigger reported as fired")
	}

	n.Reset()
	if !n.Fire(TriggerStream1) {
		t.Fatal("reset should re-arm triggers")
	}
}
