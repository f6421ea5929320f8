package analytics

import "QuantLab/internal/domain/models"

// ClassifyRegime maps a volatility level and an advance breadth fraction to
// a discrete market regime with an advisory confidence score. The function is
// total and pure: every input pair resolves to exactly one regime and
// identical inputs always produce identical output.
//
// Branch order matters. The predicates are not mutually exclusive (vix=30
// with breadth=0.7 satisfies the RISK_OFF disjunction and must win), so the
// checks run in this fixed order rather than as independent rules.
func ClassifyRegime(vix, breadth float64) models.MarketRegime {
	var (
		regime     models.RegimeLabel
		confidence float64
	)

	switch {
	case vix < 15 && breadth > 0.6:
		regime = models.RegimeRiskOn
		confidence = minf(0.95, 0.7+(0.6-vix/50)+(breadth-0.5))
	case vix > 25 || breadth < 0.4:
		regime = models.RegimeRiskOff
		confidence = minf(0.95, 0.5+(vix-20)/40+(0.5-breadth))
	case vix > 18 && vix < 25:
		regime = models.RegimeTransitional
		confidence = 0.6
	default:
		regime = models.RegimeUncertain
		confidence = 0.4
	}

	momentum := -1.0
	if breadth > 0.5 {
		momentum = 1.0
	}

	return models.MarketRegime{
		Regime:     regime,
		Confidence: clamp01(confidence),
		VIX:        vix,
		Breadth:    breadth,
		Momentum:   momentum,
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// clamp01 bounds advisory confidence. The formulas can drift outside [0,1]
// at extreme inputs; no consumer depends on the unclamped value.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
