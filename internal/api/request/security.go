package request

// CreateSecurityRequest represents the security creation request body.
type CreateSecurityRequest struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

// CreateCorporateActionRequest represents the corporate action creation
// request body. Factor is the share multiplier applied on Date, e.g. 2 for
// a 1:1 bonus issue or 5 for a 10-to-2 face value split.
type CreateCorporateActionRequest struct {
	Date        string  `json:"date"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}
