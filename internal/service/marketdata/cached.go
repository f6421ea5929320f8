package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/service/cache"
	applogger "QuantLab/pkg/logger"
	"QuantLab/pkg/metrics"
)

// snapshotCacheKey is the singleton key for the cached fetch cycle.
const snapshotCacheKey = "marketdata:snapshots"

// cachedCycle is what the byte cache stores: one fetch cycle plus its
// wall-clock instant.
type cachedCycle struct {
	Snapshots []models.TickerSnapshot `json:"snapshots"`
	FetchedAt int64                   `json:"fetchedAt"` // epoch millis
}

// CachedSource fronts a Source with a short-TTL cache so bursts of requests
// within one TTL window share a single upstream fetch cycle. Empty fetch
// results are not cached; the caller falls back to sample data and the next
// request retries upstream.
type CachedSource struct {
	src    Source
	store  cache.BytesCache
	ttl    time.Duration
	logger *applogger.Logger
	rec    *metrics.Recorder
	now    func() time.Time
}

// NewCachedSource creates the caching decorator.
func NewCachedSource(src Source, store cache.BytesCache, ttl time.Duration, logger *applogger.Logger, rec *metrics.Recorder) *CachedSource {
	return &CachedSource{
		src:    src,
		store:  store,
		ttl:    ttl,
		logger: logger,
		rec:    rec,
		now:    time.Now,
	}
}

// FetchAll returns the current snapshot set, its fetch instant and whether
// it came from the cache.
func (c *CachedSource) FetchAll(ctx context.Context) ([]models.TickerSnapshot, time.Time, bool, error) {
	if b, ok, err := c.store.GetBytes(snapshotCacheKey); err != nil {
		// A broken cache backend degrades to a fresh fetch.
		c.logger.Warn("snapshot cache read failed", applogger.Error(err))
	} else if ok {
		var cycle cachedCycle
		if uerr := json.Unmarshal(b, &cycle); uerr == nil && len(cycle.Snapshots) > 0 {
			if c.rec != nil {
				c.rec.RecordCache("hit")
			}
			return cycle.Snapshots, time.UnixMilli(cycle.FetchedAt), true, nil
		}
	}

	if c.rec != nil {
		c.rec.RecordCache("miss")
	}

	snapshots, err := c.src.FetchAll(ctx)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("fetch all tickers: %w", err)
	}

	fetchedAt := c.now()
	if len(snapshots) > 0 {
		cycle := cachedCycle{Snapshots: snapshots, FetchedAt: fetchedAt.UnixMilli()}
		if b, merr := json.Marshal(cycle); merr == nil {
			if serr := c.store.SetBytes(snapshotCacheKey, b, c.ttl); serr != nil {
				c.logger.Warn("snapshot cache write failed", applogger.Error(serr))
			}
		}
	}
	return snapshots, fetchedAt, false, nil
}
