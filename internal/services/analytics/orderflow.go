package analytics

import (
	"math"
	"time"

	"QuantLab/internal/domain/models"
)

// orderFlowSample caps how many snapshots the synthesizer looks at.
const orderFlowSample = 5

// Synthesizer fabricates a small plausible-looking order-flow sample. It is
// a stand-in for a real feed; the only contract is the branching structure
// and value ranges, not any statistical property.
type Synthesizer struct {
	rand Rand
	now  func() time.Time
}

// NewSynthesizer creates a Synthesizer with the given random source and
// clock; nil arguments fall back to the system defaults.
func NewSynthesizer(r Rand, now func() time.Time) *Synthesizer {
	if r == nil {
		r = SystemRand()
	}
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rand: r, now: now}
}

// Generate emits at most one signal per snapshot for the first five
// snapshots, each admitted with probability 0.3. The source split uses two
// independent draws: >0.6 institutional, else >0.5 dark pool, else retail.
func (s *Synthesizer) Generate(snapshots []models.TickerSnapshot) []models.OrderFlowSignal {
	signals := make([]models.OrderFlowSignal, 0)

	n := len(snapshots)
	if n > orderFlowSample {
		n = orderFlowSample
	}

	for _, t := range snapshots[:n] {
		if s.rand.Float64() <= 0.7 {
			continue
		}

		side := models.SideSell
		if t.ChangePercent > 0 {
			side = models.SideBuy
		}

		size := math.Round(s.rand.Float64()*50) / 10

		source := models.SourceRetail
		if s.rand.Float64() > 0.6 {
			source = models.SourceInstitutional
		} else if s.rand.Float64() > 0.5 {
			source = models.SourceDarkPool
		}

		signals = append(signals, models.OrderFlowSignal{
			Side:      side,
			Size:      size,
			Asset:     t.Symbol,
			Timestamp: s.now(),
			Source:    source,
		})
	}

	return signals
}
