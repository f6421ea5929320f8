package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/service/cache"
	applogger "QuantLab/pkg/logger"
)

// countingSource records how many upstream cycles ran.
type countingSource struct {
	calls     int
	snapshots []models.TickerSnapshot
	err       error
}

func (s *countingSource) FetchAll(context.Context) ([]models.TickerSnapshot, error) {
	s.calls++
	return s.snapshots, s.err
}

// failingCache always errors on reads and writes.
type failingCache struct{}

func (failingCache) GetBytes(string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingCache) SetBytes(string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func TestCachedSource_SecondFetchHitsCache(t *testing.T) {
	src := &countingSource{snapshots: []models.TickerSnapshot{{Symbol: "NVDA", Price: 100}}}
	c := NewCachedSource(src, cache.NewTTLCache(), 10*time.Second, applogger.Nop(), nil)

	fixed := time.UnixMilli(1700000000000)
	c.now = func() time.Time { return fixed }

	first, firstAt, cached, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached {
		t.Error("first fetch should not be cached")
	}
	if !firstAt.Equal(fixed) {
		t.Errorf("expected fetch instant %v, got %v", fixed, firstAt)
	}

	second, secondAt, cached, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cached {
		t.Error("second fetch should be served from cache")
	}
	if src.calls != 1 {
		t.Errorf("expected 1 upstream cycle, got %d", src.calls)
	}
	if !secondAt.Equal(firstAt) {
		t.Errorf("cached instant %v should match original %v", secondAt, firstAt)
	}
	if len(second) != len(first) || second[0].Symbol != "NVDA" {
		t.Errorf("unexpected cached snapshots: %+v", second)
	}
}

func TestCachedSource_EmptyCycleNotCached(t *testing.T) {
	src := &countingSource{}
	c := NewCachedSource(src, cache.NewTTLCache(), 10*time.Second, applogger.Nop(), nil)

	if _, _, cached, err := c.FetchAll(context.Background()); err != nil || cached {
		t.Fatalf("unexpected result: cached=%v err=%v", cached, err)
	}
	if _, _, cached, err := c.FetchAll(context.Background()); err != nil || cached {
		t.Fatalf("unexpected result: cached=%v err=%v", cached, err)
	}
	if src.calls != 2 {
		t.Errorf("empty cycles must retry upstream, got %d calls", src.calls)
	}
}

func TestCachedSource_UpstreamErrorPropagates(t *testing.T) {
	src := &countingSource{err: errors.New("all providers down")}
	c := NewCachedSource(src, cache.NewTTLCache(), 10*time.Second, applogger.Nop(), nil)

	if _, _, _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestCachedSource_BrokenBackendDegradesToFetch(t *testing.T) {
	src := &countingSource{snapshots: []models.TickerSnapshot{{Symbol: "SPY", Price: 500}}}
	c := NewCachedSource(src, failingCache{}, 10*time.Second, applogger.Nop(), nil)

	got, _, cached, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the fetch: %v", err)
	}
	if cached {
		t.Error("broken backend cannot serve a hit")
	}
	if len(got) != 1 || got[0].Symbol != "SPY" {
		t.Errorf("unexpected snapshots: %+v", got)
	}
}
