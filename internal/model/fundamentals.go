package model

// Summary holds raw per-symbol fundamentals as supplied by a provider.
// A nil field means the provider did not report it; the adapter decides how
// missing values render.
type Summary struct {
	MarketCap        *float64
	TrailingPE       *float64
	DividendYield    *float64 // fractional, e.g. 0.0042 for 0.42%
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
	DayHigh          *float64
	DayLow           *float64
}

// FundamentalsSnapshot is the formatted, display-ready view of a symbol's
// fundamentals. Fields that the provider did not supply carry the
// "not available" sentinel independently; Err is set only on total fetch
// failure, in which case every field falls back to the sentinel.
type FundamentalsSnapshot struct {
	Symbol        string
	MarketCap     string
	PERatio       string
	DividendYield string
	Week52High    string
	Week52Low     string
	DayHigh       string
	DayLow        string
	Err           string
}
