package journal

import "time"

// NoopJournal is a no-op implementation used when SQLite is not configured.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (n *NoopJournal) RecordFetch(_ *FetchEvent) error  { return nil }
func (n *NoopJournal) PruneBefore(_ time.Time) error    { return nil }
func (n *NoopJournal) Close() error                     { return nil }
