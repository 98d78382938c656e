package collector

import "TickerBoard/internal/model"

// Fetcher defines the provider boundary: given a symbol, return the current
// session's most granular close series, or the raw fundamentals summary.
// Any provider satisfying this contract is substitutable.
type Fetcher interface {
	FetchIntradayBars(symbol string) ([]model.OHLCV, error)
	FetchSummary(symbol string) (*model.Summary, error)
	Name() string
}
