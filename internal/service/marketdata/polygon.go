package marketdata

import (
	"context"
	"fmt"
	"time"

	"QuantLab/internal/domain/models"
	xhttp "QuantLab/pkg/http"
)

const defaultPolygonBaseURL = "https://api.polygon.io"

// PolygonClient fetches previous-day aggregates for equities and ETFs.
type PolygonClient struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// NewPolygonClient creates a client; an empty baseURL uses the public API.
func NewPolygonClient(apiKey, baseURL string, timeout time.Duration) *PolygonClient {
	if baseURL == "" {
		baseURL = defaultPolygonBaseURL
	}
	return &PolygonClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Configured reports whether an API key is present.
func (p *PolygonClient) Configured() bool { return p.apiKey != "" }

type polygonAgg struct {
	C float64 `json:"c"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type polygonPrevResp struct {
	Results []polygonAgg `json:"results"`
}

// Fetch returns the previous-day snapshot for the asset's symbol.
func (p *PolygonClient) Fetch(ctx context.Context, asset Asset) (*models.TickerSnapshot, error) {
	var resp polygonPrevResp
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v2/aggs/ticker/%s/prev", p.baseURL, asset.Symbol),
		QueryParams: map[string][]string{
			"adjusted": {"true"},
			"apiKey":   {p.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("polygon fetch %s: %w", asset.Symbol, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("polygon fetch %s: no results", asset.Symbol)
	}

	r := resp.Results[0]
	change := r.C - r.O
	changePercent := 0.0
	if r.O != 0 {
		changePercent = change / r.O * 100
	}

	return &models.TickerSnapshot{
		Symbol:        asset.Symbol,
		Price:         r.C,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        int64(r.V),
		High:          r.H,
		Low:           r.L,
		Open:          r.O,
		PreviousClose: r.C - change,
		Timestamp:     r.T,
		Category:      asset.Category,
	}, nil
}
