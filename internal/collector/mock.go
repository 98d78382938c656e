package collector

import (
	"time"

	"TickerBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	Bars       []model.OHLCV
	BarsErr    error
	Summary    *model.Summary
	SummaryErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntradayBars(_ string) ([]model.OHLCV, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, 30), nil
}

func (m *MockFetcher) FetchSummary(_ string) (*model.Summary, error) {
	if m.SummaryErr != nil {
		return nil, m.SummaryErr
	}
	if m.Summary != nil {
		return m.Summary, nil
	}
	mcap := m.Price * 1e9
	return &model.Summary{MarketCap: &mcap}, nil
}

// GenerateMockBars builds a gently drifting 1-minute series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	now := time.Now()
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   now.Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
