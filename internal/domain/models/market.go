package models

import "time"

// AssetCategory classifies a tradable instrument.
type AssetCategory string

const (
	CategoryEquity AssetCategory = "equity"
	CategoryCrypto AssetCategory = "crypto"
	CategoryETF    AssetCategory = "etf"
	CategoryMacro  AssetCategory = "macro"
)

// TickerSnapshot is a point-in-time quote for one instrument. Snapshots are
// immutable once constructed; a new fetch cycle supersedes them wholesale.
type TickerSnapshot struct {
	Symbol        string        `json:"symbol"`
	Price         float64       `json:"price"`
	Change        float64       `json:"change"`
	ChangePercent float64       `json:"changePercent"`
	Volume        int64         `json:"volume"`
	High          float64       `json:"high"`
	Low           float64       `json:"low"`
	Open          float64       `json:"open"`
	PreviousClose float64       `json:"previousClose"`
	Timestamp     int64         `json:"timestamp"` // epoch millis
	Category      AssetCategory `json:"category"`
}

// RegimeLabel is a coarse discrete label for aggregate market risk appetite.
type RegimeLabel string

const (
	RegimeRiskOn       RegimeLabel = "RISK_ON"
	RegimeRiskOff      RegimeLabel = "RISK_OFF"
	RegimeTransitional RegimeLabel = "TRANSITIONAL"
	RegimeUncertain    RegimeLabel = "UNCERTAIN"
)

// MarketRegime is derived from volatility and breadth on every refresh.
// It is never persisted.
type MarketRegime struct {
	Regime     RegimeLabel `json:"regime"`
	Confidence float64     `json:"confidence"`
	VIX        float64     `json:"vix"`
	Breadth    float64     `json:"breadth"`
	Momentum   float64     `json:"momentum"`
}

// AnomalyType identifies the heuristic check that flagged a snapshot.
type AnomalyType string

const (
	AnomalyIVSpike            AnomalyType = "IV_SPIKE"
	AnomalyVolumeSurge        AnomalyType = "VOLUME_SURGE"
	AnomalyCorrelationBreak   AnomalyType = "CORRELATION_BREAK"
	AnomalyGap                AnomalyType = "GAP"
	AnomalyMomentumDivergence AnomalyType = "MOMENTUM_DIVERGENCE"
)

// Severity grades an anomaly.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Anomaly is a heuristically flagged unusual condition in one instrument's
// snapshot. Regenerated on every detection pass.
type Anomaly struct {
	ID          string             `json:"id"`
	Type        AnomalyType        `json:"type"`
	Asset       string             `json:"asset"`
	Severity    Severity           `json:"severity"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
	Data        map[string]float64 `json:"data"`
}

// OrderSide is the direction of a synthesized flow signal.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// FlowSource labels where a synthesized order-flow signal came from.
type FlowSource string

const (
	SourceInstitutional FlowSource = "INSTITUTIONAL"
	SourceRetail        FlowSource = "RETAIL"
	SourceDarkPool      FlowSource = "DARK_POOL"
)

// OrderFlowSignal is a synthetic buy/sell flow sample. Size is in millions
// of units.
type OrderFlowSignal struct {
	Side      OrderSide  `json:"side"`
	Size      float64    `json:"size"`
	Asset     string     `json:"asset"`
	Timestamp time.Time  `json:"timestamp"`
	Source    FlowSource `json:"source"`
}

// MarketOverview is the full derived view served to the presentation layer.
type MarketOverview struct {
	Tickers   []TickerSnapshot  `json:"tickers"`
	Regime    MarketRegime      `json:"regime"`
	Anomalies []Anomaly         `json:"anomalies"`
	OrderFlow []OrderFlowSignal `json:"orderFlow"`
	Cached    bool              `json:"cached"`
	Fallback  bool              `json:"fallback,omitempty"`
	Timestamp int64             `json:"timestamp"` // epoch millis
}
