package model

import "time"

// InitialInvestmentEvent labels the first entry of every share-adjustment
// timeline: the purchase made at the resolved start date.
const InitialInvestmentEvent = "Initial Investment"

// ShareAdjustment is one entry of the share-count timeline built by the
// corporate action adjuster. The first entry always represents the initial
// purchase; subsequent entries record the share count after each applied
// action. Entries are produced in date order and never mutated.
type ShareAdjustment struct {
	Date       time.Time `json:"date"`
	Shares     float64   `json:"shares"`
	Event      string    `json:"event"`
	Factor     float64   `json:"factor,omitempty"`
	PrevShares float64   `json:"prevShares,omitempty"`
}

// GrowthPoint is one sampled month of portfolio value for charting.
type GrowthPoint struct {
	Date   time.Time `json:"date"`
	Value  float64   `json:"value"`
	Shares float64   `json:"shares"`
}

// ReturnResult is the complete output of one return calculation.
// Constructed once per calculation and handed to the presentation layer
// as-is; the engine never returns a partially computed result.
type ReturnResult struct {
	InitialInvestment float64           `json:"initialInvestment"`
	FinalValue        float64           `json:"finalValue"`
	AbsoluteReturn    float64           `json:"absoluteReturn"`
	ReturnPercentage  float64           `json:"returnPercentage"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           time.Time         `json:"endDate"`
	StartPrice        PricePoint        `json:"startPrice"`
	EndPrice          PricePoint        `json:"endPrice"`
	YearsDiff         float64           `json:"yearsDiff"`
	CAGR              float64           `json:"cagr"`
	BenchmarkRate     float64           `json:"benchmarkRate"`
	FDComparison      float64           `json:"fdComparison"`
	Adjustments       []ShareAdjustment `json:"adjustments"`
	GrowthSeries      []GrowthPoint     `json:"growthSeries"`
}
