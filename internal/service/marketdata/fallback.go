package marketdata

import (
	"time"

	"QuantLab/internal/domain/models"
)

// FallbackTickers returns the static sample set served when no provider is
// configured or every upstream fetch failed. The numbers are a plausible
// frozen market day, not live data.
func FallbackTickers(now time.Time) []models.TickerSnapshot {
	ts := now.UnixMilli()
	return []models.TickerSnapshot{
		{Symbol: "NVDA", Price: 892.34, Change: 21.42, ChangePercent: 2.46, Volume: 45230000, High: 898.12, Low: 871.23, Open: 870.92, PreviousClose: 870.92, Timestamp: ts, Category: models.CategoryEquity},
		{Symbol: "AAPL", Price: 187.42, Change: 1.54, ChangePercent: 0.83, Volume: 52100000, High: 188.94, Low: 185.67, Open: 185.88, PreviousClose: 185.88, Timestamp: ts, Category: models.CategoryEquity},
		{Symbol: "MSFT", Price: 402.18, Change: 4.51, ChangePercent: 1.13, Volume: 21340000, High: 404.23, Low: 397.12, Open: 397.67, PreviousClose: 397.67, Timestamp: ts, Category: models.CategoryEquity},
		{Symbol: "GOOGL", Price: 142.87, Change: -0.49, ChangePercent: -0.34, Volume: 18920000, High: 144.12, Low: 141.89, Open: 143.36, PreviousClose: 143.36, Timestamp: ts, Category: models.CategoryEquity},
		{Symbol: "TSLA", Price: 248.92, Change: -4.72, ChangePercent: -1.86, Volume: 89210000, High: 256.34, Low: 246.12, Open: 253.64, PreviousClose: 253.64, Timestamp: ts, Category: models.CategoryEquity},
		{Symbol: "BTC", Price: 67432, Change: -554, ChangePercent: -0.82, Volume: 28400000000, High: 68234, Low: 66890, Open: 67986, PreviousClose: 67986, Timestamp: ts, Category: models.CategoryCrypto},
		{Symbol: "ETH", Price: 3421, Change: 42, ChangePercent: 1.24, Volume: 12800000000, High: 3467, Low: 3378, Open: 3379, PreviousClose: 3379, Timestamp: ts, Category: models.CategoryCrypto},
		{Symbol: "SOL", Price: 124.87, Change: 4.12, ChangePercent: 3.41, Volume: 2340000000, High: 126.34, Low: 120.12, Open: 120.75, PreviousClose: 120.75, Timestamp: ts, Category: models.CategoryCrypto},
		{Symbol: "SPY", Price: 478.23, Change: 2.14, ChangePercent: 0.45, Volume: 67890000, High: 479.12, Low: 475.34, Open: 476.09, PreviousClose: 476.09, Timestamp: ts, Category: models.CategoryETF},
		{Symbol: "QQQ", Price: 412.87, Change: 3.78, ChangePercent: 0.92, Volume: 34210000, High: 414.23, Low: 408.67, Open: 409.09, PreviousClose: 409.09, Timestamp: ts, Category: models.CategoryETF},
		{Symbol: "VIX", Price: 14.2, Change: -0.79, ChangePercent: -5.27, Volume: 0, High: 15.34, Low: 13.89, Open: 14.99, PreviousClose: 14.99, Timestamp: ts, Category: models.CategoryMacro},
		{Symbol: "GLD", Price: 187.42, Change: -0.22, ChangePercent: -0.12, Volume: 8920000, High: 188.12, Low: 186.89, Open: 187.64, PreviousClose: 187.64, Timestamp: ts, Category: models.CategoryETF},
		{Symbol: "TLT", Price: 92.34, Change: 0.31, ChangePercent: 0.34, Volume: 12340000, High: 92.89, Low: 91.67, Open: 92.03, PreviousClose: 92.03, Timestamp: ts, Category: models.CategoryETF},
	}
}
