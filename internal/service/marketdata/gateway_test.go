package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/service/cache"
	"QuantLab/internal/service/ratelimit"
	applogger "QuantLab/pkg/logger"
)

// stubProvider returns a canned snapshot per symbol, or an error.
type stubProvider struct {
	fail map[string]bool
}

func (s *stubProvider) Fetch(_ context.Context, asset Asset) (*models.TickerSnapshot, error) {
	if s.fail[asset.Symbol] {
		return nil, errors.New("upstream down")
	}
	return &models.TickerSnapshot{
		Symbol:   asset.Symbol,
		Price:    100,
		Category: asset.Category,
	}, nil
}

func testAssets() []Asset {
	return []Asset{
		{Symbol: "NVDA", Category: models.CategoryEquity, Provider: ProviderPolygon},
		{Symbol: "BTC", Category: models.CategoryCrypto, Provider: ProviderCoinGecko, ProviderID: "bitcoin"},
		{Symbol: "VIX", Category: models.CategoryMacro, Provider: ProviderFRED, ProviderID: "VIXCLS"},
	}
}

func TestGateway_FetchAllPreservesAssetOrder(t *testing.T) {
	p := &stubProvider{}
	g := NewGateway(testAssets(), map[ProviderName]Provider{
		ProviderPolygon:   p,
		ProviderCoinGecko: p,
		ProviderFRED:      p,
	}, nil, applogger.Nop(), nil)

	got, err := g.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"NVDA", "BTC", "VIX"}
	if len(got) != len(want) {
		t.Fatalf("expected %d snapshots, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Symbol != w {
			t.Errorf("position %d: expected %s, got %s", i, w, got[i].Symbol)
		}
	}
}

func TestGateway_DropsFailedFetches(t *testing.T) {
	p := &stubProvider{fail: map[string]bool{"BTC": true}}
	g := NewGateway(testAssets(), map[ProviderName]Provider{
		ProviderPolygon:   p,
		ProviderCoinGecko: p,
		ProviderFRED:      p,
	}, nil, applogger.Nop(), nil)

	got, err := g.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots after one failure, got %d", len(got))
	}
	for _, s := range got {
		if s.Symbol == "BTC" {
			t.Error("failed symbol should be dropped")
		}
	}
}

func TestGateway_SkipsUnconfiguredProviders(t *testing.T) {
	p := &stubProvider{}
	g := NewGateway(testAssets(), map[ProviderName]Provider{
		ProviderCoinGecko: p,
	}, nil, applogger.Nop(), nil)

	got, err := g.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "BTC" {
		t.Fatalf("expected only the CoinGecko asset, got %+v", got)
	}
}

func TestGateway_EmptyWhenNothingConfigured(t *testing.T) {
	g := NewGateway(testAssets(), nil, nil, applogger.Nop(), nil)
	got, err := g.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestGateway_RateLimiterSkips(t *testing.T) {
	p := &stubProvider{}
	assets := []Asset{
		{Symbol: "NVDA", Category: models.CategoryEquity, Provider: ProviderPolygon},
		{Symbol: "AAPL", Category: models.CategoryEquity, Provider: ProviderPolygon},
	}
	// Capacity 1 with no refill: the second asset is skipped this cycle.
	g := NewGateway(assets, map[ProviderName]Provider{ProviderPolygon: p}, ratelimit.New(1, 0), applogger.Nop(), nil)

	got, err := g.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 snapshot under the rate limit, got %d", len(got))
	}
}

// stubSource returns fixed snapshot sets in sequence.
type stubSource struct {
	sets  [][]models.TickerSnapshot
	calls int
}

func (s *stubSource) FetchAll(context.Context) ([]models.TickerSnapshot, error) {
	set := s.sets[s.calls%len(s.sets)]
	s.calls++
	return set, nil
}

func TestCachedSource_HitWithinTTL(t *testing.T) {
	src := &stubSource{sets: [][]models.TickerSnapshot{
		{{Symbol: "NVDA", Price: 100, Category: models.CategoryEquity}},
	}}
	cs := NewCachedSource(src, cache.NewTTLCache(), time.Minute, applogger.Nop(), nil)

	_, _, cached, err := cs.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if cached {
		t.Fatal("first fetch should be fresh")
	}

	snaps, _, cached, err := cs.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if !cached {
		t.Fatal("second fetch should hit the cache")
	}
	if src.calls != 1 {
		t.Fatalf("upstream should be hit once, got %d", src.calls)
	}
	if len(snaps) != 1 || snaps[0].Symbol != "NVDA" {
		t.Fatalf("unexpected cached snapshots %+v", snaps)
	}
}

func TestCachedSource_CacheKeepsFetchInstant(t *testing.T) {
	src := &stubSource{sets: [][]models.TickerSnapshot{
		{{Symbol: "NVDA", Price: 100, Category: models.CategoryEquity}},
	}}
	cs := NewCachedSource(src, cache.NewTTLCache(), time.Minute, applogger.Nop(), nil)

	_, first, _, _ := cs.FetchAll(context.Background())
	_, second, cached, _ := cs.FetchAll(context.Background())
	if !cached {
		t.Fatal("expected cache hit")
	}
	if first.UnixMilli() != second.UnixMilli() {
		t.Fatalf("cache hit must reuse the fetch instant: %v vs %v", first, second)
	}
}

func TestCachedSource_EmptyResultNotCached(t *testing.T) {
	src := &stubSource{sets: [][]models.TickerSnapshot{{}}}
	cs := NewCachedSource(src, cache.NewTTLCache(), time.Minute, applogger.Nop(), nil)

	for i := 0; i < 3; i++ {
		snaps, _, cached, err := cs.FetchAll(context.Background())
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if cached {
			t.Fatal("empty cycles must not be cached")
		}
		if len(snaps) != 0 {
			t.Fatalf("expected empty set, got %d", len(snaps))
		}
	}
	if src.calls != 3 {
		t.Fatalf("every call should reach upstream, got %d", src.calls)
	}
}
