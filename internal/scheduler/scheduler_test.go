package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TickerBoard/internal/model"
)

// stubSource returns canned results; symbols in failing get transport-style
// error quotes, everything else succeeds.
type stubSource struct {
	failing map[string]bool
}

func (s *stubSource) FetchQuote(symbol string) model.Quote {
	if s.failing[symbol] {
		return model.ErrorQuote(symbol, fmt.Sprintf("error fetching %s: connection refused", symbol))
	}
	return model.NewQuote(symbol, 101.0, 100.0)
}

func (s *stubSource) FetchIntraday(symbol string) (model.IntradaySeries, bool) {
	if s.failing[symbol] {
		return nil, false
	}
	now := time.Now()
	return model.IntradaySeries{
		{Time: now.Add(-time.Minute), Close: 100.0},
		{Time: now, Close: 101.0},
	}, true
}

func (s *stubSource) FetchFundamentals(symbol string) model.FundamentalsSnapshot {
	return model.FundamentalsSnapshot{Symbol: symbol, MarketCap: "$1.00B"}
}

// recordingCallbacks captures delivered updates in arrival order.
type recordingCallbacks struct {
	mu      sync.Mutex
	prices  []model.Quote
	details []string
}

func (r *recordingCallbacks) OnPriceUpdate(_ string, q model.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prices = append(r.prices, q)
}

func (r *recordingCallbacks) OnDetailUpdate(symbol string, _ model.IntradaySeries, _ bool, _ model.FundamentalsSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = append(r.details, symbol)
}

func (r *recordingCallbacks) priceSnapshot() []model.Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Quote(nil), r.prices...)
}

func (r *recordingCallbacks) detailCount(symbol string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.details {
		if s == symbol {
			n++
		}
	}
	return n
}

func newTestScheduler(t *testing.T, source QuoteSource, cbs Callbacks, cfg Config) *Scheduler {
	t.Helper()
	s := NewScheduler(context.Background(), source, cbs, cfg)
	t.Cleanup(s.Stop)
	return s
}

func TestPriceCycle_FailureDoesNotBlockOthers(t *testing.T) {
	cbs := &recordingCallbacks{}
	s := newTestScheduler(t, &stubSource{failing: map[string]bool{"AAA": true}}, cbs, Config{
		Symbols:       []string{"AAA", "BBB"},
		PriceInterval: 20 * time.Millisecond,
		ChartInterval: time.Hour,
	})

	s.Start()
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	prices := cbs.priceSnapshot()
	require.GreaterOrEqual(t, len(prices), 4, "expected at least two full cycles")

	var aaa, bbb int
	for _, q := range prices {
		switch q.Symbol {
		case "AAA":
			aaa++
			require.NotEmpty(t, q.Err)
			require.Equal(t, model.DirectionNeutral, q.Direction)
		case "BBB":
			bbb++
			require.Empty(t, q.Err)
			require.Equal(t, model.DirectionUp, q.Direction)
		}
	}
	// AAA's failure cancels neither BBB nor the following cycles.
	require.GreaterOrEqual(t, aaa, 2)
	require.GreaterOrEqual(t, bbb, 2)
	require.LessOrEqual(t, aaa-bbb, 1)
}

func TestPriceCycle_DeliversInTrackedOrder(t *testing.T) {
	cbs := &recordingCallbacks{}
	s := newTestScheduler(t, &stubSource{}, cbs, Config{
		Symbols:       []string{"CCC", "AAA", "BBB"},
		PriceInterval: 20 * time.Millisecond,
		ChartInterval: time.Hour,
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	prices := cbs.priceSnapshot()
	require.GreaterOrEqual(t, len(prices), 3)
	want := []string{"CCC", "AAA", "BBB"}
	for i, q := range prices {
		require.Equal(t, want[i%3], q.Symbol, "delivery order must follow the tracked list")
	}
}

func TestDetailCycle_OnlyWhileOpen(t *testing.T) {
	cbs := &recordingCallbacks{}
	s := newTestScheduler(t, &stubSource{}, cbs, Config{
		Symbols:       []string{"AAA", "BBB"},
		PriceInterval: time.Hour,
		ChartInterval: 25 * time.Millisecond,
	})

	s.Start()
	s.OpenDetail("AAA")
	time.Sleep(70 * time.Millisecond)

	// Immediate delivery on open plus at least two re-armed ticks.
	require.GreaterOrEqual(t, cbs.detailCount("AAA"), 2)
	require.Zero(t, cbs.detailCount("BBB"), "never-opened symbols get no detail updates")

	s.CloseDetail("AAA")
	after := cbs.detailCount("AAA")
	time.Sleep(70 * time.Millisecond)

	// At most one in-flight delivery may land after close; the timer is dead.
	require.LessOrEqual(t, cbs.detailCount("AAA"), after+1)
}

func TestOpenDetail_SwitchingSymbolsCancelsPrior(t *testing.T) {
	cbs := &recordingCallbacks{}
	s := newTestScheduler(t, &stubSource{}, cbs, Config{
		Symbols:       []string{"AAA", "BBB"},
		PriceInterval: time.Hour,
		ChartInterval: 25 * time.Millisecond,
	})

	s.Start()
	s.OpenDetail("AAA")
	time.Sleep(40 * time.Millisecond)
	s.OpenDetail("BBB")
	aaaAtSwitch := cbs.detailCount("AAA")
	time.Sleep(70 * time.Millisecond)

	require.LessOrEqual(t, cbs.detailCount("AAA"), aaaAtSwitch+1, "prior symbol's timer must be cancelled")
	require.GreaterOrEqual(t, cbs.detailCount("BBB"), 2)
}

// blockingSource holds FetchIntraday until released, simulating a fetch that
// is still in flight when the view closes.
type blockingSource struct {
	stubSource
	release chan struct{}
}

func (b *blockingSource) FetchIntraday(symbol string) (model.IntradaySeries, bool) {
	<-b.release
	return b.stubSource.FetchIntraday(symbol)
}

func TestDetailCycle_CloseMidFetchDropsDelivery(t *testing.T) {
	cbs := &recordingCallbacks{}
	src := &blockingSource{release: make(chan struct{})}
	s := newTestScheduler(t, src, cbs, Config{
		Symbols:       []string{"AAA"},
		PriceInterval: time.Hour,
		ChartInterval: time.Hour,
	})

	s.Start()
	s.OpenDetail("AAA")
	time.Sleep(20 * time.Millisecond) // let the loop enter the fetch
	s.CloseDetail("AAA")

	// The in-flight fetch runs to completion, but its result is stale.
	close(src.release)
	time.Sleep(30 * time.Millisecond)

	require.Zero(t, cbs.detailCount("AAA"), "a view closed mid-fetch must not receive the late update")
}

func TestCloseDetail_WrongSymbolIsNoop(t *testing.T) {
	cbs := &recordingCallbacks{}
	s := newTestScheduler(t, &stubSource{}, cbs, Config{
		Symbols:       []string{"AAA"},
		PriceInterval: time.Hour,
		ChartInterval: 25 * time.Millisecond,
	})

	s.Start()
	s.OpenDetail("AAA")
	s.CloseDetail("BBB")
	time.Sleep(60 * time.Millisecond)

	require.GreaterOrEqual(t, cbs.detailCount("AAA"), 2, "closing an unrelated symbol must not stop the open view")
}
