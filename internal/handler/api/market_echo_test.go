package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "QuantLab/internal/domain/models"
	"QuantLab/internal/services/analytics"
	"QuantLab/internal/usecase"
	xlogger "QuantLab/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type stubSource struct {
	snapshots []models.TickerSnapshot
	err       error
}

func (s *stubSource) FetchAll(ctx context.Context) ([]models.TickerSnapshot, time.Time, bool, error) {
	return s.snapshots, time.UnixMilli(1_700_000_000_000), false, s.err
}

type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

func newHandler(src usecase.SnapshotSource) *MarketHandler {
	now := func() time.Time { return time.UnixMilli(1_700_000_100_000) }
	agg := usecase.NewOverviewAggregator(
		src,
		analytics.NewDetector(fixedRand{0.5}, now),
		analytics.NewSynthesizer(fixedRand{0.5}, now),
		nil,
		xlogger.Nop(),
		nil,
	)
	return NewMarketHandler(xlogger.Nop(), agg, time.Second)
}

func liveSnapshots() []models.TickerSnapshot {
	return []models.TickerSnapshot{
		{Symbol: "SPY", Price: 520, ChangePercent: 0.8, Volume: 1000, Category: models.CategoryEquity},
		{Symbol: "QQQ", Price: 440, ChangePercent: 1.1, Volume: 1000, Category: models.CategoryEquity},
		{Symbol: "VIX", Price: 13.2, ChangePercent: -2.0, Volume: 0, Category: models.CategoryMacro},
	}
}

func newEcho(h *MarketHandler) *echo.Echo {
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func TestMarketReturnsFlatOverview(t *testing.T) {
	e := newEcho(newHandler(&stubSource{snapshots: liveSnapshots()}))

	req := httptest.NewRequest(http.MethodGet, "/api/market", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out models.MarketOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Tickers) != 3 {
		t.Fatalf("tickers = %d, want 3", len(out.Tickers))
	}
	if out.Regime.Regime == "" {
		t.Fatal("regime missing from payload")
	}
	if out.Timestamp == 0 {
		t.Fatal("timestamp missing from payload")
	}
	// Flat payload, not wrapped in a status envelope.
	if strings.Contains(rec.Body.String(), `"data"`) {
		t.Fatal("overview must not be wrapped in an envelope")
	}
}

func TestMarketServesFallbackInsteadOfError(t *testing.T) {
	e := newEcho(newHandler(&stubSource{}))

	req := httptest.NewRequest(http.MethodGet, "/api/market", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out models.MarketOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Fallback {
		t.Fatal("expected fallback payload")
	}
}

func TestMarketErrorUsesEnvelope(t *testing.T) {
	e := newEcho(newHandler(&stubSource{err: errors.New("cache backend down")}))

	req := httptest.NewRequest(http.MethodGet, "/api/market", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != float64(http.StatusInternalServerError) {
		t.Fatalf("envelope status = %v, want 500", body["status"])
	}
}

func TestHealthz(t *testing.T) {
	e := newEcho(newHandler(&stubSource{snapshots: liveSnapshots()}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStreamRejectsBadInterval(t *testing.T) {
	e := newEcho(newHandler(&stubSource{snapshots: liveSnapshots()}))

	req := httptest.NewRequest(http.MethodGet, "/api/market/stream?interval=120", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("validation errors use the 200 envelope, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ERR_LTE") {
		t.Fatalf("expected lte validation error, body = %s", rec.Body.String())
	}
}

func TestStreamSendsInitialOverview(t *testing.T) {
	e := newEcho(newHandler(&stubSource{snapshots: liveSnapshots()}))
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/market/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out models.MarketOverview
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read initial push: %v", err)
	}
	if len(out.Tickers) != 3 {
		t.Fatalf("tickers = %d, want 3", len(out.Tickers))
	}
}
