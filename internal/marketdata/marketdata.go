// Package marketdata fetches daily closing prices from the Yahoo Finance
// chart API. It exists to keep fresh data flowing into the price store;
// the return engine itself never performs I/O.
package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client defines the interface for fetching daily price data.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	RecentCloses(symbol string) ([]DailyClose, error)
	ClosesByDateRange(symbol string, startDate, endDate time.Time) ([]DailyClose, error)
}

// DailyClose is one trading day's closing price, dated at midnight UTC.
type DailyClose struct {
	Date  time.Time
	Close float64
}

// ChartClient fetches price data from the Yahoo Finance chart endpoint.
type ChartClient struct {
	httpClient *http.Client
}

// NewChartClient creates a new chart client with default HTTP settings.
func NewChartClient() *ChartClient {
	return &ChartClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// RecentCloses fetches the last 5 trading days of closing prices for a symbol.
// Typically used to pick up the most recent complete close.
func (c *ChartClient) RecentCloses(symbol string) ([]DailyClose, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	return c.queryCloses(url, symbol)
}

// ClosesByDateRange fetches daily closing prices for a symbol within an
// inclusive date range. Used for historical backfill.
func (c *ChartClient) ClosesByDateRange(symbol string, startDate, endDate time.Time) ([]DailyClose, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	return c.queryCloses(url, symbol)
}

func (c *ChartClient) queryCloses(url, symbol string) ([]DailyClose, error) {
	response, err := c.queryChart(url)
	if err != nil {
		return nil, err
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return extractCloses(response)
}

// extractCloses converts a raw chart API response into dated closing prices.
// Validates that timestamps and close prices are present and aligned.
func extractCloses(response Response) ([]DailyClose, error) {
	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return nil, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths")
	}

	closes := make([]DailyClose, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		closes[i] = DailyClose{
			Date:  day,
			Close: result.Indicators.Quote[0].Close[i],
		}
	}

	return closes, nil
}

// queryChart executes an HTTP request against the chart API.
// Sets a browser-like User-Agent to avoid API blocking.
func (c *ChartClient) queryChart(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("chart API error: %s", *response.Chart.Error)
	}

	return response, nil
}
