package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"TickerBoard/internal/journal"
	"TickerBoard/internal/model"

	"github.com/robfig/cron/v3"
)

// QuoteSource is the adapter contract the scheduler drives. Implementations
// never return errors; failures arrive as data inside the results.
type QuoteSource interface {
	FetchQuote(symbol string) model.Quote
	FetchIntraday(symbol string) (model.IntradaySeries, bool)
	FetchFundamentals(symbol string) model.FundamentalsSnapshot
}

// Callbacks receives normalized results. OnPriceUpdate fires once per symbol
// per price cycle, in tracked-list order. OnDetailUpdate fires on detail-view
// open and on each chart cycle tick while the view stays open; ok is false
// when the intraday series is unavailable.
type Callbacks interface {
	OnPriceUpdate(symbol string, q model.Quote)
	OnDetailUpdate(symbol string, series model.IntradaySeries, ok bool, f model.FundamentalsSnapshot)
}

// Config holds the scheduler's tunables.
type Config struct {
	Symbols       []string
	PriceInterval time.Duration
	ChartInterval time.Duration
}

// Scheduler drives the two refresh cycles. The price cycle walks every
// tracked symbol; the detail cycle serves the one open detail view. Each
// cycle re-arms its timer from cycle completion, so intervals are "at least
// T apart" rather than fixed to a wall-clock grid. Wall-clock housekeeping
// (journal pruning) runs on a cron runner instead.
type Scheduler struct {
	source QuoteSource
	cbs    Callbacks
	cfg    Config
	cron   *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	detailSymbol string
	detailCancel context.CancelFunc
}

// NewScheduler creates a new Scheduler bound to the given context.
func NewScheduler(ctx context.Context, source QuoteSource, cbs Callbacks, cfg Config) *Scheduler {
	sctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		source: source,
		cbs:    cbs,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		ctx:    sctx,
		cancel: cancel,
	}
}

// RegisterMaintenance schedules the nightly journal prune.
func (s *Scheduler) RegisterMaintenance(cronSpec string, j journal.Journal, retention time.Duration) error {
	if _, err := s.cron.AddFunc(cronSpec, func() {
		if err := j.PruneBefore(time.Now().Add(-retention)); err != nil {
			log.Printf("[ERROR] journal prune: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register journal prune: %w", err)
	}
	return nil
}

// Start launches the price cycle and the cron runner. The first price cycle
// runs immediately.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.wg.Add(1)
	go s.priceLoop()
	log.Println("[INFO] scheduler started")
}

// Stop cancels all cycles and waits for them to drain. In-flight fetches run
// to completion; only pending timers are cancelled.
func (s *Scheduler) Stop() {
	s.cancel()
	s.cron.Stop()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) priceLoop() {
	defer s.wg.Done()
	for {
		s.runPriceCycle()

		timer := time.NewTimer(s.cfg.PriceInterval)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runPriceCycle fetches every tracked symbol in list order and delivers in
// that same order. One symbol's failure never blocks the rest of the cycle.
func (s *Scheduler) runPriceCycle() {
	for _, symbol := range s.cfg.Symbols {
		select {
		case <-s.ctx.Done():
			return
		default:
		}
		q := s.source.FetchQuote(symbol)
		if q.Err != "" {
			log.Printf("[WARN] price update for %s: %s", symbol, q.Err)
		}
		s.cbs.OnPriceUpdate(symbol, q)
	}
}

// OpenDetail activates the chart cycle for a symbol: an immediate fetch and
// delivery, then a re-arm every chart interval until the view closes. Any
// previously open detail view is closed first so its pending timer cannot
// waste fetches on a symbol nobody is looking at.
func (s *Scheduler) OpenDetail(symbol string) {
	s.mu.Lock()
	if s.detailCancel != nil {
		s.detailCancel()
	}
	dctx, cancel := context.WithCancel(s.ctx)
	s.detailSymbol = symbol
	s.detailCancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.detailLoop(dctx, symbol)
	log.Printf("[INFO] detail view opened: %s", symbol)
}

// CloseDetail deactivates the chart cycle for a symbol. Closing a symbol that
// is not the open detail view is a no-op.
func (s *Scheduler) CloseDetail(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailSymbol != symbol || s.detailCancel == nil {
		return
	}
	s.detailCancel()
	s.detailSymbol = ""
	s.detailCancel = nil
	log.Printf("[INFO] detail view closed: %s", symbol)
}

func (s *Scheduler) detailLoop(ctx context.Context, symbol string) {
	defer s.wg.Done()
	for {
		series, ok := s.source.FetchIntraday(symbol)
		fundamentals := s.source.FetchFundamentals(symbol)
		// A view closed mid-fetch lets the fetch finish but gets no
		// delivery; a stale update must not overwrite the board.
		if ctx.Err() != nil {
			return
		}
		s.cbs.OnDetailUpdate(symbol, series, ok, fundamentals)

		timer := time.NewTimer(s.cfg.ChartInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
