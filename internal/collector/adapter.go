package collector

import (
	"fmt"
	"log"
	"time"

	"TickerBoard/internal/format"
	"TickerBoard/internal/journal"
	"TickerBoard/internal/model"

	"golang.org/x/sync/singleflight"
)

// Adapter is the quote source boundary the rest of the system talks to.
// It translates provider responses and failures into stable internal shapes:
// none of its methods return an error, every failure is encoded in the
// returned value, and every fetch outcome is recorded in the journal.
type Adapter struct {
	fetcher Fetcher
	journal journal.Journal
	flight  singleflight.Group
}

// NewAdapter creates an adapter over the given fetcher. The journal must not
// be nil; pass a NoopJournal when persistence is not configured.
func NewAdapter(fetcher Fetcher, j journal.Journal) *Adapter {
	return &Adapter{fetcher: fetcher, journal: j}
}

// FetchQuote produces one symbol's latest tick snapshot from the two most
// recent session closes. Fewer than two samples, or any provider failure,
// yields an error-bearing quote with absent prices and NEUTRAL direction.
func (a *Adapter) FetchQuote(symbol string) model.Quote {
	bars, err := a.intradayBars(symbol, journal.KindQuote)
	if err != nil {
		return model.ErrorQuote(symbol, fmt.Sprintf("error fetching %s: %v", symbol, err))
	}
	if len(bars) < 2 {
		msg := fmt.Sprintf("insufficient data for %s", symbol)
		a.observe(journal.KindQuote, symbol, 0, fmt.Errorf("%s", msg))
		return model.ErrorQuote(symbol, msg)
	}

	latest := bars[len(bars)-1].Close
	previous := bars[len(bars)-2].Close
	return model.NewQuote(symbol, latest, previous)
}

// FetchIntraday produces the close series for charting. ok is false when the
// provider returned no rows or the call failed; the distinction between the
// two is a journal concern, not the caller's.
func (a *Adapter) FetchIntraday(symbol string) (model.IntradaySeries, bool) {
	bars, err := a.intradayBars(symbol, journal.KindIntraday)
	if err != nil {
		log.Printf("[WARN] intraday fetch failed for %s: %v", symbol, err)
		return nil, false
	}
	if len(bars) == 0 {
		return nil, false
	}
	return model.SeriesFromBars(bars), true
}

// FetchFundamentals produces the formatted fundamentals view. Individual
// missing fields render "not available" independently; a total fetch failure
// sets Err and forces every field to the sentinel.
func (a *Adapter) FetchFundamentals(symbol string) model.FundamentalsSnapshot {
	start := time.Now()
	summary, err := a.fetcher.FetchSummary(symbol)
	a.observe(journal.KindFundamentals, symbol, time.Since(start), err)
	if err != nil {
		log.Printf("[WARN] fundamentals fetch failed for %s: %v", symbol, err)
		return unavailableFundamentals(symbol, fmt.Sprintf("error fetching %s: %v", symbol, err))
	}

	return model.FundamentalsSnapshot{
		Symbol:        symbol,
		MarketCap:     format.USDOrNA(summary.MarketCap),
		PERatio:       format.RatioOrNA(summary.TrailingPE),
		DividendYield: format.PercentOrNA(summary.DividendYield),
		Week52High:    format.USDOrNA(summary.FiftyTwoWeekHigh),
		Week52Low:     format.USDOrNA(summary.FiftyTwoWeekLow),
		DayHigh:       format.USDOrNA(summary.DayHigh),
		DayLow:        format.USDOrNA(summary.DayLow),
	}
}

// intradayBars fetches the session bars, collapsing concurrent requests for
// the same symbol (price cycle vs detail cycle) into one provider call.
func (a *Adapter) intradayBars(symbol, kind string) ([]model.OHLCV, error) {
	start := time.Now()
	v, err, _ := a.flight.Do(symbol, func() (interface{}, error) {
		return a.fetcher.FetchIntradayBars(symbol)
	})
	a.observe(kind, symbol, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return v.([]model.OHLCV), nil
}

func (a *Adapter) observe(kind, symbol string, d time.Duration, err error) {
	evt := &journal.FetchEvent{Symbol: symbol, Kind: kind, OK: err == nil, Duration: d}
	if err != nil {
		evt.Err = err.Error()
	}
	if recErr := a.journal.RecordFetch(evt); recErr != nil {
		log.Printf("[ERROR] record fetch event: %v", recErr)
	}
}

func unavailableFundamentals(symbol, msg string) model.FundamentalsSnapshot {
	return model.FundamentalsSnapshot{
		Symbol:        symbol,
		MarketCap:     format.NotAvailable,
		PERatio:       format.NotAvailable,
		DividendYield: format.NotAvailable,
		Week52High:    format.NotAvailable,
		Week52Low:     format.NotAvailable,
		DayHigh:       format.NotAvailable,
		DayLow:        format.NotAvailable,
		Err:           msg,
	}
}
