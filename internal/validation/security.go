package validation

import (
	"strings"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/request"
)

// ValidateCreateSecurity validates a security creation request.
//
// Required fields:
//   - name: display name
//   - key: filename-friendly identifier (lowercase, no spaces)
//
// Optional fields (validated if provided):
//   - currency: three-letter code
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateSecurity(req request.CreateSecurityRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		errors["key"] = "key is required"
	} else if strings.ContainsAny(key, " /\\") || key != strings.ToLower(key) {
		errors["key"] = "key must be lowercase with no spaces or slashes"
	}

	if req.Currency != "" && len(req.Currency) != 3 {
		errors["currency"] = "currency must be a three-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateCorporateAction validates a corporate action creation request.
//
// Required fields:
//   - date: must be in YYYY-MM-DD format
//   - factor: share multiplier, must be positive
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateCorporateAction(req request.CreateCorporateActionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Factor <= 0 {
		errors["factor"] = "factor must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
