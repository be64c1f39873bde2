package testutil

import (
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/marketdata"
)

// MockMarketDataClient is a mock implementation of marketdata.Client for
// testing. It returns predefined data instead of making actual API calls.
type MockMarketDataClient struct {
	// Closes is returned from both query methods
	Closes []marketdata.DailyClose
	// Err is the error to return from query methods
	Err error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockMarketDataClient creates a mock client with the given number of
// daily closes ending yesterday, priced 100, 101, 102, ...
func NewMockMarketDataClient(days int) *MockMarketDataClient {
	closes := make([]marketdata.DailyClose, days)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < days; i++ {
		closes[i] = marketdata.DailyClose{
			Date:  end.AddDate(0, 0, i-days),
			Close: 100 + float64(i),
		}
	}
	return &MockMarketDataClient{Closes: closes}
}

// RecentCloses returns the configured closes or error.
func (m *MockMarketDataClient) RecentCloses(_ string) ([]marketdata.DailyClose, error) {
	m.QueryCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Closes, nil
}

// ClosesByDateRange returns the configured closes or error.
func (m *MockMarketDataClient) ClosesByDateRange(_ string, _, _ time.Time) ([]marketdata.DailyClose, error) {
	m.QueryCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Closes, nil
}

// WithError configures the mock to return the specified error.
func (m *MockMarketDataClient) WithError(err error) *MockMarketDataClient {
	m.Err = err
	return m
}
