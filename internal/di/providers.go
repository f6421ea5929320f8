package di

import (
	"context"
	"fmt"
	"io"

	"QuantLab/internal/handler/api"
	"QuantLab/internal/scheduler"
	icache "QuantLab/internal/service/cache"
	"QuantLab/internal/service/marketdata"
	"QuantLab/internal/service/ratelimit"
	"QuantLab/internal/services/analytics"
	"QuantLab/internal/usecase"
	"QuantLab/pkg/config"
	xhttp "QuantLab/pkg/http"
	pkgkafka "QuantLab/pkg/kafka"
	applogger "QuantLab/pkg/logger"
	"QuantLab/pkg/metrics"
	"QuantLab/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: format,
		Output: "stdout",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache selects the snapshot cache backend: Redis when enabled,
// otherwise in-process TTL cache.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideGateway builds the provider fan-out from whichever upstreams are
// configured. A missing API key just removes that provider's assets from
// the cycle.
func ProvideGateway(cfg *config.Config, l *applogger.Logger, rec *metrics.Recorder) *marketdata.Gateway {
	providers := make(map[marketdata.ProviderName]marketdata.Provider)

	polygon := marketdata.NewPolygonClient(cfg.Market.Polygon.APIKey, cfg.Market.Polygon.BaseURL, cfg.Market.FetchTimeout)
	if polygon.Configured() {
		providers[marketdata.ProviderPolygon] = polygon
	}
	providers[marketdata.ProviderCoinGecko] = marketdata.NewCoinGeckoClient(cfg.Market.CoinGecko.BaseURL, cfg.Market.FetchTimeout)
	fred := marketdata.NewFREDClient(cfg.Market.FRED.APIKey, cfg.Market.FRED.BaseURL, cfg.Market.FetchTimeout)
	if fred.Configured() {
		providers[marketdata.ProviderFRED] = fred
	}

	limiter := ratelimit.New(cfg.Market.Rate.Capacity, cfg.Market.Rate.RefillPerSec)
	return marketdata.NewGateway(marketdata.DefaultAssets, providers, limiter, l, rec)
}

// ProvideSource wraps the gateway with the TTL snapshot cache.
func ProvideSource(gw *marketdata.Gateway, store icache.BytesCache, cfg *config.Config, l *applogger.Logger, rec *metrics.Recorder) *marketdata.CachedSource {
	return marketdata.NewCachedSource(gw, store, cfg.Market.CacheTTL, l, rec)
}

// ProvideDetector creates the anomaly detector with system randomness.
func ProvideDetector() *analytics.Detector {
	return analytics.NewDetector(nil, nil)
}

// ProvideSynthesizer creates the order-flow synthesizer.
func ProvideSynthesizer() *analytics.Synthesizer {
	return analytics.NewSynthesizer(nil, nil)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAnomalySink wraps the producer as an anomaly feed, or nil when
// Kafka is disabled.
func ProvideAnomalySink(producer *pkgkafka.Producer, cfg *config.Config) usecase.AnomalySink {
	if producer == nil {
		return nil
	}
	return usecase.NewKafkaAnomalyFeed(producer, cfg.Kafka.Topic)
}

// ProvideAggregator creates the market overview use case.
func ProvideAggregator(src *marketdata.CachedSource, det *analytics.Detector, flow *analytics.Synthesizer, sink usecase.AnomalySink, l *applogger.Logger, rec *metrics.Recorder) *usecase.OverviewAggregator {
	return usecase.NewOverviewAggregator(src, det, flow, sink, l, rec)
}

// ProvideHandler creates the Echo route surface: market API plus the demo
// session endpoints.
func ProvideHandler(l *applogger.Logger, agg *usecase.OverviewAggregator, cfg *config.Config) xhttp.Handler {
	return xhttp.Combine(
		api.NewMarketHandler(l, agg, cfg.Market.StreamInterval),
		api.NewDemoHandler(l),
	)
}

// ProvideWarmer schedules background cache refreshes through the cached
// source so interactive requests hit warm data.
func ProvideWarmer(src *marketdata.CachedSource, cfg *config.Config, l *applogger.Logger) *scheduler.Warmer {
	refresh := func(ctx context.Context) error {
		_, _, _, err := src.FetchAll(ctx)
		return err
	}
	return scheduler.NewWarmer(cfg.Market.WarmInterval, refresh, l)
}

// ProvideApp creates the application server and registers closers.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	warmer *scheduler.Warmer,
	store icache.BytesCache,
	producer *pkgkafka.Producer,
) *server.App {
	app := server.New(cfg, l, handler, warmer)
	if c, ok := store.(io.Closer); ok {
		app.AddCloser(c)
	}
	if producer != nil {
		app.AddCloser(producer)
	}
	return app
}
