package request

// ComputeReturnRequest represents the return calculation request body.
// Dates are YYYY-MM-DD.
type ComputeReturnRequest struct {
	SecurityID string  `json:"securityId"`
	Amount     float64 `json:"amount"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}
