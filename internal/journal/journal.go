package journal

import "time"

// FetchKind identifies which adapter operation produced an event.
const (
	KindQuote        = "quote"
	KindIntraday     = "intraday"
	KindFundamentals = "fundamentals"
)

// FetchEvent records the outcome of one provider fetch.
type FetchEvent struct {
	Symbol   string
	Kind     string // quote, intraday, fundamentals
	OK       bool
	Err      string
	Duration time.Duration
}

// Journal is the observability sink for fetch outcomes. Every provider
// failure must land here; nothing else in the system persists history.
type Journal interface {
	RecordFetch(evt *FetchEvent) error
	PruneBefore(cutoff time.Time) error
	Close() error
}
