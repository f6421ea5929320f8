package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"QuantLab/internal/domain/models"
	xhttp "QuantLab/pkg/http"
	"QuantLab/pkg/util"
)

const defaultFREDBaseURL = "https://api.stlouisfed.org"

// FREDClient fetches macro series observations (the VIX volatility input).
type FREDClient struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
	now     func() time.Time
}

func NewFREDClient(apiKey, baseURL string, timeout time.Duration) *FREDClient {
	if baseURL == "" {
		baseURL = defaultFREDBaseURL
	}
	return &FREDClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		now:     time.Now,
	}
}

// Configured reports whether an API key is present.
func (f *FREDClient) Configured() bool { return f.apiKey != "" }

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredObservationsResp struct {
	Observations []fredObservation `json:"observations"`
}

// Fetch returns the latest observation of the asset's FRED series as a
// snapshot, with the prior observation as open/previousClose. FRED series
// have no volume by convention.
func (f *FREDClient) Fetch(ctx context.Context, asset Asset) (*models.TickerSnapshot, error) {
	var resp fredObservationsResp
	err := f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    f.baseURL + "/fred/series/observations",
		QueryParams: map[string][]string{
			"series_id":  {asset.ProviderID},
			"api_key":    {f.apiKey},
			"file_type":  {"json"},
			"sort_order": {"desc"},
			"limit":      {"5"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", asset.Symbol, err)
	}
	// FRED reports missing values as "."; keep only observations with a
	// parseable date and value.
	values := make([]float64, 0, 2)
	for _, obs := range resp.Observations {
		if _, ok := util.ParseDate(obs.Date); !ok {
			continue
		}
		v, perr := strconv.ParseFloat(obs.Value, 64)
		if perr != nil {
			continue
		}
		values = append(values, v)
		if len(values) == 2 {
			break
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("fred fetch %s: no observations", asset.Symbol)
	}

	current := values[0]
	previous := current
	if len(values) > 1 {
		previous = values[1]
	}

	change := current - previous
	changePercent := 0.0
	if previous != 0 {
		changePercent = change / previous * 100
	}

	return &models.TickerSnapshot{
		Symbol:        asset.Symbol,
		Price:         current,
		Change:        change,
		ChangePercent: changePercent,
		Open:          previous,
		PreviousClose: previous,
		Timestamp:     f.now().UnixMilli(),
		Category:      asset.Category,
	}, nil
}
