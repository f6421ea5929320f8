package marketdata

import "QuantLab/internal/domain/models"

// ProviderName identifies an upstream quote source.
type ProviderName string

const (
	ProviderPolygon   ProviderName = "polygon"
	ProviderCoinGecko ProviderName = "coingecko"
	ProviderFRED      ProviderName = "fred"
)

// Asset binds a tracked symbol to its upstream provider. ProviderID carries
// the provider-specific identifier (CoinGecko coin id, FRED series id);
// Polygon uses the symbol directly.
type Asset struct {
	Symbol     string
	Category   models.AssetCategory
	Provider   ProviderName
	ProviderID string
}

// DefaultAssets is the tracked universe: large-cap equities, index ETFs,
// the majors in crypto, and the VIX as the macro volatility input.
var DefaultAssets = []Asset{
	{Symbol: "NVDA", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "AAPL", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "MSFT", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "GOOGL", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "TSLA", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "META", Category: models.CategoryEquity, Provider: ProviderPolygon},
	{Symbol: "AMZN", Category: models.CategoryEquity, Provider: ProviderPolygon},

	{Symbol: "SPY", Category: models.CategoryETF, Provider: ProviderPolygon},
	{Symbol: "QQQ", Category: models.CategoryETF, Provider: ProviderPolygon},
	{Symbol: "IWM", Category: models.CategoryETF, Provider: ProviderPolygon},
	{Symbol: "TLT", Category: models.CategoryETF, Provider: ProviderPolygon},
	{Symbol: "GLD", Category: models.CategoryETF, Provider: ProviderPolygon},

	{Symbol: "BTC", Category: models.CategoryCrypto, Provider: ProviderCoinGecko, ProviderID: "bitcoin"},
	{Symbol: "ETH", Category: models.CategoryCrypto, Provider: ProviderCoinGecko, ProviderID: "ethereum"},
	{Symbol: "SOL", Category: models.CategoryCrypto, Provider: ProviderCoinGecko, ProviderID: "solana"},

	{Symbol: "VIX", Category: models.CategoryMacro, Provider: ProviderFRED, ProviderID: "VIXCLS"},
}
