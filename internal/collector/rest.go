package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TickerBoard/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted market-data REST API.
// It is the substitutable alternative to Yahoo for deployments that proxy
// their own feed.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape for one bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchIntradayBars(symbol string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/intraday?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	body, err := f.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var restBars []restBar
	if err := json.Unmarshal(body, &restBars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(restBars))
	for i, rb := range restBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// restSummary uses pointer fields so absent keys stay nil.
type restSummary struct {
	MarketCap     *float64 `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	Week52High    *float64 `json:"week_52_high"`
	Week52Low     *float64 `json:"week_52_low"`
	DayHigh       *float64 `json:"day_high"`
	DayLow        *float64 `json:"day_low"`
}

func (f *RESTFetcher) FetchSummary(symbol string) (*model.Summary, error) {
	endpoint := fmt.Sprintf("%s/api/v1/summary?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	body, err := f.get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}

	var rs restSummary
	if err := json.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &model.Summary{
		MarketCap:        rs.MarketCap,
		TrailingPE:       rs.PERatio,
		DividendYield:    rs.DividendYield,
		FiftyTwoWeekHigh: rs.Week52High,
		FiftyTwoWeekLow:  rs.Week52Low,
		DayHigh:          rs.DayHigh,
		DayLow:           rs.DayLow,
	}, nil
}

func (f *RESTFetcher) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
