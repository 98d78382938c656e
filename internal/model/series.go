package model

import "time"

// OHLCV represents a single candlestick bar as returned by a provider.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Point is one (timestamp, close) sample of an intraday series.
type Point struct {
	Time  time.Time
	Close float64
}

// IntradaySeries is the close-price sequence for the current trading session,
// timestamps strictly increasing. An empty series is a valid "no data yet"
// state; total unavailability is signalled separately by the adapter.
type IntradaySeries []Point

// SeriesFromBars projects provider bars onto close-price points.
func SeriesFromBars(bars []OHLCV) IntradaySeries {
	series := make(IntradaySeries, len(bars))
	for i, b := range bars {
		series[i] = Point{Time: b.Time, Close: b.Close}
	}
	return series
}
