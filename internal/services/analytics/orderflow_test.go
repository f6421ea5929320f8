package analytics

import (
	"testing"

	"QuantLab/internal/domain/models"
)

func flowSnapshots(n int) []models.TickerSnapshot {
	out := make([]models.TickerSnapshot, 0, n)
	for i := 0; i < n; i++ {
		pct := 1.0
		if i%2 == 1 {
			pct = -1.0
		}
		out = append(out, models.TickerSnapshot{
			Symbol:        string(rune('A' + i)),
			ChangePercent: pct,
			Category:      models.CategoryEquity,
		})
	}
	return out
}

func TestGenerate_AdmissionThreshold(t *testing.T) {
	// Admission draw must be strictly above 0.7.
	s := NewSynthesizer(&stubRand{draws: []float64{0.7}}, fixedNow)
	if got := s.Generate(flowSnapshots(5)); len(got) != 0 {
		t.Fatalf("draw of exactly 0.7 should not admit, got %d signals", len(got))
	}
}

func TestGenerate_ConsidersFirstFiveOnly(t *testing.T) {
	// Every draw admits; even so at most five signals come out.
	s := NewSynthesizer(&stubRand{draws: []float64{0.99}}, fixedNow)
	got := s.Generate(flowSnapshots(8))
	if len(got) != 5 {
		t.Fatalf("expected 5 signals from 8 snapshots, got %d", len(got))
	}
}

func TestGenerate_SideFollowsChange(t *testing.T) {
	s := NewSynthesizer(&stubRand{draws: []float64{0.99}}, fixedNow)
	got := s.Generate(flowSnapshots(2))
	if len(got) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(got))
	}
	if got[0].Side != models.SideBuy {
		t.Errorf("positive change should be BUY, got %s", got[0].Side)
	}
	if got[1].Side != models.SideSell {
		t.Errorf("negative change should be SELL, got %s", got[1].Side)
	}
}

func TestGenerate_SizeAndSource(t *testing.T) {
	// Draw order per admitted snapshot: admission, size, then source draws.
	// admission=0.8, size draw=0.46 -> round(23)/10 = 2.3,
	// source draw 0.4 <= 0.6 then 0.55 > 0.5 -> DARK_POOL.
	s := NewSynthesizer(&stubRand{draws: []float64{0.8, 0.46, 0.4, 0.55, 0}}, fixedNow)
	got := s.Generate(flowSnapshots(1))
	if len(got) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(got))
	}
	sig := got[0]
	if sig.Size != 2.3 {
		t.Errorf("expected size 2.3, got %v", sig.Size)
	}
	if sig.Source != models.SourceDarkPool {
		t.Errorf("expected DARK_POOL, got %s", sig.Source)
	}
	if sig.Asset != "A" {
		t.Errorf("expected asset A, got %s", sig.Asset)
	}
	if !sig.Timestamp.Equal(fixedNow()) {
		t.Errorf("unexpected timestamp %v", sig.Timestamp)
	}
}

func TestGenerate_SourceInstitutional(t *testing.T) {
	s := NewSynthesizer(&stubRand{draws: []float64{0.9, 0.1, 0.7}}, fixedNow)
	got := s.Generate(flowSnapshots(1))
	if len(got) != 1 || got[0].Source != models.SourceInstitutional {
		t.Fatalf("expected INSTITUTIONAL signal, got %+v", got)
	}
}
