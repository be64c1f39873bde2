package model

import "time"

// Security represents a tracked security from the database.
// Key is the filename-friendly identifier used to match price CSV files
// and corporate action records (e.g. "tata_motors").
type Security struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Key      string `json:"key"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

// PricePoint is a single daily closing price sample. Dates carry day
// granularity only; all dates are stored as midnight UTC.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// SecurityPrice is a stored price row for a security.
type SecurityPrice struct {
	ID         string    `json:"id"`
	SecurityID string    `json:"securityId"`
	Date       time.Time `json:"date"`
	Close      float64   `json:"close"`
}

// PricePoint returns the engine-facing view of a stored price row.
func (p SecurityPrice) PricePoint() PricePoint {
	return PricePoint{Date: p.Date, Close: p.Close}
}

// CorporateAction is a share-multiplier event (split, bonus issue) for a
// security. Post-event shares = pre-event shares * Factor.
type CorporateAction struct {
	ID          string    `json:"id"`
	SecurityID  string    `json:"securityId"`
	Date        time.Time `json:"date"`
	Factor      float64   `json:"factor"`
	Description string    `json:"description"`
}
