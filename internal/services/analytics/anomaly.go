package analytics

import (
	"fmt"
	"math"
	"time"

	"QuantLab/internal/domain/models"

	"github.com/google/uuid"
)

// defaultHistVol is the assumed typical daily move (percent) for symbols
// missing a historical-volatility entry.
const defaultHistVol = 2.0

// Detector runs the per-snapshot anomaly checks. All three checks are
// evaluated independently; one snapshot can yield up to three anomalies per
// pass. Results keep snapshot iteration order, with checks in
// {volume, IV, gap} order within a snapshot.
type Detector struct {
	rand Rand
	now  func() time.Time
}

// NewDetector creates a Detector. A nil rand falls back to the system
// source; now is the detection clock (nil means time.Now).
func NewDetector(r Rand, now func() time.Time) *Detector {
	if r == nil {
		r = SystemRand()
	}
	if now == nil {
		now = time.Now
	}
	return &Detector{rand: r, now: now}
}

// Detect evaluates every snapshot against the volume-surge, IV-spike and gap
// checks. An empty input yields an empty result; a missing historical-vol
// entry defaults to a 2% typical daily move. Detect never fails.
func (d *Detector) Detect(snapshots []models.TickerSnapshot, historicalVol map[string]float64) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)

	for _, t := range snapshots {
		histVol, ok := historicalVol[t.Symbol]
		if !ok || histVol == 0 {
			histVol = defaultHistVol
		}
		ts := d.now()

		// Volume surge. The ratio is a randomized stand-in for a trailing
		// average-volume comparison; no volume history is threaded through
		// yet. TODO: replace with a real trailing-average ratio once the
		// gateway exposes per-symbol volume history.
		if t.Volume > 0 {
			ratio := d.rand.Float64()*3 + 0.5
			if ratio > 2.5 {
				severity := models.SeverityMedium
				if ratio > 4 {
					severity = models.SeverityHigh
				}
				anomalies = append(anomalies, models.Anomaly{
					ID:          anomalyID("vol", t.Symbol, ts),
					Type:        models.AnomalyVolumeSurge,
					Asset:       t.Symbol,
					Severity:    severity,
					Description: fmt.Sprintf("%.1fx average volume", ratio),
					Timestamp:   ts,
					Data:        map[string]float64{"ratio": ratio},
				})
			}
		}

		// Implied-volatility spike, equities only.
		if t.Category == models.CategoryEquity && math.Abs(t.ChangePercent) > histVol*2 {
			anomalies = append(anomalies, models.Anomaly{
				ID:          anomalyID("iv", t.Symbol, ts),
				Type:        models.AnomalyIVSpike,
				Asset:       t.Symbol,
				Severity:    models.SeverityHigh,
				Description: fmt.Sprintf("Price move %.1f%% exceeds 2σ", math.Abs(t.ChangePercent)),
				Timestamp:   ts,
				Data:        map[string]float64{"move": t.ChangePercent, "threshold": histVol * 2},
			})
		}

		// Opening gap against the prior close.
		if t.Open > 0 && t.PreviousClose > 0 {
			gapPercent := (t.Open - t.PreviousClose) / t.PreviousClose * 100
			if math.Abs(gapPercent) > 3 {
				severity := models.SeverityMedium
				if math.Abs(gapPercent) > 5 {
					severity = models.SeverityHigh
				}
				direction := "Gap up"
				if gapPercent < 0 {
					direction = "Gap down"
				}
				anomalies = append(anomalies, models.Anomaly{
					ID:          anomalyID("gap", t.Symbol, ts),
					Type:        models.AnomalyGap,
					Asset:       t.Symbol,
					Severity:    severity,
					Description: fmt.Sprintf("%s %.1f%%", direction, math.Abs(gapPercent)),
					Timestamp:   ts,
					Data:        map[string]float64{"gap": gapPercent},
				})
			}
		}
	}

	return anomalies
}

// anomalyID embeds the check prefix, symbol and detection instant, plus a
// UUID suffix so two anomalies minted within the same millisecond cannot
// collide.
func anomalyID(prefix, symbol string, ts time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%s", prefix, symbol, ts.UnixMilli(), uuid.NewString()[:8])
}
