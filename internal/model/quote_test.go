package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		previous *float64
		want     Direction
	}{
		{"up", fp(101.5), fp(100.0), DirectionUp},
		{"down", fp(99.9), fp(100.0), DirectionDown},
		{"equal", fp(100.0), fp(100.0), DirectionNeutral},
		{"price missing", nil, fp(100.0), DirectionNeutral},
		{"previous missing", fp(100.0), nil, DirectionNeutral},
		{"both missing", nil, nil, DirectionNeutral},
		{"tiny move up", fp(100.0001), fp(100.0), DirectionUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DirectionOf(tt.price, tt.previous))
		})
	}
}

func TestNewQuote(t *testing.T) {
	q := NewQuote("AAPL", 232.40, 231.90)

	require.Equal(t, "AAPL", q.Symbol)
	require.NotNil(t, q.Price)
	require.NotNil(t, q.PreviousPrice)
	require.InDelta(t, 0.5, q.Change, 1e-9)
	require.Equal(t, DirectionUp, q.Direction)
	require.Empty(t, q.Err)
}

func TestNewQuote_Flat(t *testing.T) {
	q := NewQuote("IBM", 180.0, 180.0)
	require.Equal(t, DirectionNeutral, q.Direction)
	require.Zero(t, q.Change)
}

func TestErrorQuote(t *testing.T) {
	q := ErrorQuote("TSLA", "insufficient data for TSLA")

	require.Equal(t, "TSLA", q.Symbol)
	require.Nil(t, q.Price)
	require.Nil(t, q.PreviousPrice)
	require.Zero(t, q.Change)
	require.Equal(t, DirectionNeutral, q.Direction)
	require.Equal(t, "insufficient data for TSLA", q.Err)
}
