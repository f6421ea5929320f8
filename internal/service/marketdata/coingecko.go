package marketdata

import (
	"context"
	"fmt"
	"time"

	"QuantLab/internal/domain/models"
	xhttp "QuantLab/pkg/http"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com"

// CoinGeckoClient fetches spot prices for crypto assets. The simple-price
// endpoint needs no API key.
type CoinGeckoClient struct {
	baseURL string
	client  *xhttp.Client
	now     func() time.Time
}

func NewCoinGeckoClient(baseURL string, timeout time.Duration) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = defaultCoinGeckoBaseURL
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		now:     time.Now,
	}
}

type coinGeckoPrice struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
	USD24hVol    float64 `json:"usd_24h_vol"`
}

// Fetch returns the current price snapshot for the asset's CoinGecko id.
// CoinGecko's simple endpoint carries no OHLC, so those fields stay zero and
// the gap check naturally skips crypto.
func (c *CoinGeckoClient) Fetch(ctx context.Context, asset Asset) (*models.TickerSnapshot, error) {
	var resp map[string]coinGeckoPrice
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/v3/simple/price",
		QueryParams: map[string][]string{
			"ids":                 {asset.ProviderID},
			"vs_currencies":       {"usd"},
			"include_24hr_change": {"true"},
			"include_24hr_vol":    {"true"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch %s: %w", asset.Symbol, err)
	}

	coin, ok := resp[asset.ProviderID]
	if !ok {
		return nil, fmt.Errorf("coingecko fetch %s: id %q missing from response", asset.Symbol, asset.ProviderID)
	}

	return &models.TickerSnapshot{
		Symbol:        asset.Symbol,
		Price:         coin.USD,
		ChangePercent: coin.USD24hChange,
		Volume:        int64(coin.USD24hVol),
		Timestamp:     c.now().UnixMilli(),
		Category:      asset.Category,
	}, nil
}
