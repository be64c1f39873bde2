package validation

import (
	"strings"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/request"
)

// ValidateComputeReturn validates a return calculation request.
//
// Required fields:
//   - securityId: must be a valid UUID
//   - amount: invested amount, must be positive
//   - startDate: must be in YYYY-MM-DD format
//   - endDate: must be in YYYY-MM-DD format and after startDate
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateComputeReturn(req request.ComputeReturnRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.SecurityID); err != nil {
		errors["securityId"] = err.Error()
	}

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	var startDate, endDate time.Time
	var err error

	if strings.TrimSpace(req.StartDate) == "" {
		errors["startDate"] = "date is required"
	} else if startDate, err = time.Parse("2006-01-02", req.StartDate); err != nil {
		errors["startDate"] = err.Error()
	}

	if strings.TrimSpace(req.EndDate) == "" {
		errors["endDate"] = "date is required"
	} else if endDate, err = time.Parse("2006-01-02", req.EndDate); err != nil {
		errors["endDate"] = err.Error()
	}

	if !startDate.IsZero() && !endDate.IsZero() && !endDate.After(startDate) {
		errors["endDate"] = "endDate must be after startDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
