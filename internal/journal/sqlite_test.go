package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteJournal_RecordAndPrune(t *testing.T) {
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordFetch(&FetchEvent{
		Symbol:   "AAPL",
		Kind:     KindQuote,
		OK:       true,
		Duration: 120 * time.Millisecond,
	}))
	require.NoError(t, j.RecordFetch(&FetchEvent{
		Symbol: "TSLA",
		Kind:   KindIntraday,
		OK:     false,
		Err:    "error fetching TSLA: connection refused",
	}))

	var count int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM fetch_events`).Scan(&count))
	require.Equal(t, 2, count)

	// A cutoff in the past keeps everything.
	require.NoError(t, j.PruneBefore(time.Now().Add(-time.Hour)))
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM fetch_events`).Scan(&count))
	require.Equal(t, 2, count)

	// A cutoff in the future clears the table.
	require.NoError(t, j.PruneBefore(time.Now().Add(time.Hour)))
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM fetch_events`).Scan(&count))
	require.Zero(t, count)
}

func TestSQLiteJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordFetch(&FetchEvent{Symbol: "MSFT", Kind: KindFundamentals, OK: true}))
	require.NoError(t, j.Close())

	// Reopening migrates idempotently and the prior event survives.
	j2, err := NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j2.Close()

	var count int
	require.NoError(t, j2.db.QueryRow(`SELECT COUNT(*) FROM fetch_events`).Scan(&count))
	require.Equal(t, 1, count)
}
