package collector

import (
	"sync"
	"time"

	"TickerBoard/internal/model"
)

type barsEntry struct {
	expiresAt time.Time
	bars      []model.OHLCV
}

type summaryEntry struct {
	expiresAt time.Time
	summary   *model.Summary
}

// CachingFetcher caches per-symbol results for a short TTL. The quote path
// and a freshly opened detail view both want the same 1-minute series; the
// cache keeps that from hitting the provider twice within seconds.
// A TTL of zero disables caching entirely. Errors are never cached.
type CachingFetcher struct {
	F   Fetcher
	TTL time.Duration

	mu        sync.RWMutex
	bars      map[string]barsEntry
	summaries map[string]summaryEntry
}

// NewCachingFetcher wraps an existing fetcher.
func NewCachingFetcher(f Fetcher, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		F:         f,
		TTL:       ttl,
		bars:      make(map[string]barsEntry),
		summaries: make(map[string]summaryEntry),
	}
}

func (c *CachingFetcher) Name() string { return c.F.Name() }

func (c *CachingFetcher) FetchIntradayBars(symbol string) ([]model.OHLCV, error) {
	if c.TTL <= 0 {
		return c.F.FetchIntradayBars(symbol)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.bars[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.bars, nil
	}

	bars, err := c.F.FetchIntradayBars(symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.bars[symbol] = barsEntry{expiresAt: now.Add(c.TTL), bars: bars}
	c.mu.Unlock()
	return bars, nil
}

func (c *CachingFetcher) FetchSummary(symbol string) (*model.Summary, error) {
	if c.TTL <= 0 {
		return c.F.FetchSummary(symbol)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.summaries[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.summary, nil
	}

	summary, err := c.F.FetchSummary(symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.summaries[symbol] = summaryEntry{expiresAt: now.Add(c.TTL), summary: summary}
	c.mu.Unlock()
	return summary, nil
}
