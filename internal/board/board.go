// Package board is the console presentation layer. It owns the only shared
// state in the system: an explicit symbol-to-latest mapping updated solely
// through the scheduler callbacks.
package board

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"TickerBoard/internal/model"
)

// Board holds the latest delivered snapshot per symbol and logs each update
// as a formatted line.
type Board struct {
	mu           sync.RWMutex
	quotes       map[string]model.Quote
	series       map[string]model.IntradaySeries
	fundamentals map[string]model.FundamentalsSnapshot
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		quotes:       make(map[string]model.Quote),
		series:       make(map[string]model.IntradaySeries),
		fundamentals: make(map[string]model.FundamentalsSnapshot),
	}
}

// OnPriceUpdate replaces the symbol's quote with the fresh snapshot.
func (b *Board) OnPriceUpdate(symbol string, q model.Quote) {
	b.mu.Lock()
	b.quotes[symbol] = q
	b.mu.Unlock()

	log.Printf("[INFO] %s", FormatQuoteLine(q))
}

// OnDetailUpdate replaces the symbol's chart and fundamentals. An unavailable
// series clears any stale chart rather than showing outdated data.
func (b *Board) OnDetailUpdate(symbol string, series model.IntradaySeries, ok bool, f model.FundamentalsSnapshot) {
	b.mu.Lock()
	if ok {
		b.series[symbol] = series
	} else {
		delete(b.series, symbol)
	}
	b.fundamentals[symbol] = f
	b.mu.Unlock()

	if !ok {
		log.Printf("[WARN] %s: intraday chart unavailable", symbol)
	} else {
		log.Printf("[INFO] %s: chart updated (%d points)", symbol, len(series))
	}
	log.Printf("[INFO] %s fundamentals:\n%s", symbol, FormatFundamentals(&f))
}

// Quote returns the latest delivered quote for a symbol.
func (b *Board) Quote(symbol string) (model.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.quotes[symbol]
	return q, ok
}

// Series returns the latest delivered intraday series for a symbol.
func (b *Board) Series(symbol string) (model.IntradaySeries, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.series[symbol]
	return s, ok
}

// Fundamentals returns the latest delivered fundamentals for a symbol.
func (b *Board) Fundamentals(symbol string) (model.FundamentalsSnapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.fundamentals[symbol]
	return f, ok
}

// FormatQuoteLine renders one ticker-card line: symbol, price, change and a
// direction marker.
func FormatQuoteLine(q model.Quote) string {
	if q.Err != "" {
		return fmt.Sprintf("%-6s %s", q.Symbol, q.Err)
	}
	marker := "•"
	switch q.Direction {
	case model.DirectionUp:
		marker = "▲"
	case model.DirectionDown:
		marker = "▼"
	}
	return fmt.Sprintf("%-6s %10.2f  %s %+.2f", q.Symbol, *q.Price, marker, q.Change)
}

// FormatFundamentals renders the detail-view metrics block.
func FormatFundamentals(f *model.FundamentalsSnapshot) string {
	var b strings.Builder
	if f.Err != "" {
		b.WriteString(fmt.Sprintf("  (%s)\n", f.Err))
	}
	b.WriteString(fmt.Sprintf("  Market Cap:     %s\n", f.MarketCap))
	b.WriteString(fmt.Sprintf("  P/E Ratio:      %s\n", f.PERatio))
	b.WriteString(fmt.Sprintf("  Dividend Yield: %s\n", f.DividendYield))
	b.WriteString(fmt.Sprintf("  52W High/Low:   %s / %s\n", f.Week52High, f.Week52Low))
	b.WriteString(fmt.Sprintf("  Day High/Low:   %s / %s", f.DayHigh, f.DayLow))
	return b.String()
}
