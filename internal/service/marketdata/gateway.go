package marketdata

import (
	"context"
	"sync"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/service/ratelimit"
	applogger "QuantLab/pkg/logger"
	"QuantLab/pkg/metrics"
)

// Provider fetches one asset's snapshot from its upstream source.
type Provider interface {
	Fetch(ctx context.Context, asset Asset) (*models.TickerSnapshot, error)
}

// Source produces a full snapshot set per fetch cycle. An empty result
// means no provider is configured (or everything failed upstream); callers
// treat that as "use fallback data", never as an error.
type Source interface {
	FetchAll(ctx context.Context) ([]models.TickerSnapshot, error)
}

// Gateway fans a fetch cycle out over the tracked assets, one goroutine per
// asset per the upstream sources' independence, and collects the snapshots
// in asset order. Individual provider failures degrade to a smaller set;
// they never fail the cycle.
type Gateway struct {
	assets    []Asset
	providers map[ProviderName]Provider
	limiter   *ratelimit.Limiter
	logger    *applogger.Logger
	rec       *metrics.Recorder
}

// NewGateway creates a Gateway over the given asset universe. Providers
// missing from the map (for example Polygon without an API key) have their
// assets skipped.
func NewGateway(assets []Asset, providers map[ProviderName]Provider, limiter *ratelimit.Limiter, logger *applogger.Logger, rec *metrics.Recorder) *Gateway {
	if len(assets) == 0 {
		assets = DefaultAssets
	}
	return &Gateway{
		assets:    assets,
		providers: providers,
		limiter:   limiter,
		logger:    logger,
		rec:       rec,
	}
}

// FetchAll fetches a snapshot for every tracked asset concurrently and
// returns them in asset order, dropping failures.
func (g *Gateway) FetchAll(ctx context.Context) ([]models.TickerSnapshot, error) {
	results := make([]*models.TickerSnapshot, len(g.assets))
	var wg sync.WaitGroup

	for i, asset := range g.assets {
		provider, ok := g.providers[asset.Provider]
		if !ok || provider == nil {
			continue
		}
		if g.limiter != nil && !g.limiter.Allow(string(asset.Provider)) {
			g.logger.Warn("provider rate limited",
				applogger.String("provider", string(asset.Provider)),
				applogger.String("symbol", asset.Symbol),
			)
			if g.rec != nil {
				g.rec.RecordFetch(string(asset.Provider), "rate_limited")
			}
			continue
		}

		wg.Add(1)
		go func(i int, asset Asset, provider Provider) {
			defer wg.Done()
			snap, err := provider.Fetch(ctx, asset)
			if err != nil {
				g.logger.Warn("ticker fetch failed",
					applogger.String("symbol", asset.Symbol),
					applogger.Error(err),
				)
				if g.rec != nil {
					g.rec.RecordFetch(string(asset.Provider), "error")
				}
				return
			}
			if g.rec != nil {
				g.rec.RecordFetch(string(asset.Provider), "ok")
				g.rec.RecordLastPrice(snap.Symbol, snap.Price)
			}
			results[i] = snap
		}(i, asset, provider)
	}
	wg.Wait()

	snapshots := make([]models.TickerSnapshot, 0, len(results))
	for _, r := range results {
		if r != nil {
			snapshots = append(snapshots, *r)
		}
	}
	return snapshots, nil
}
