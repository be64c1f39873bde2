package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSecurityNotFound indicates that a security with the given ID does not exist.
	ErrSecurityNotFound = errors.New("security not found")

	// ErrSecurityPriceNotFound indicates no price record for a specific security and date combination.
	ErrSecurityPriceNotFound = errors.New("security price not found")

	// ErrCorporateActionNotFound indicates that a corporate action record does not exist.
	ErrCorporateActionNotFound = errors.New("corporate action not found")

	// ErrSettingNotFound indicates that a system setting key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Calculation errors represent conditions under which the return engine
// cannot produce a result. The engine never returns a partial ReturnResult:
// any of these aborts the calculation.
var (
	// ErrInsufficientData indicates the price series has fewer than two samples.
	ErrInsufficientData = errors.New("insufficient price samples for calculation")

	// ErrNoDataAvailable indicates the resolver was given an empty price series.
	ErrNoDataAvailable = errors.New("no price data available")

	// ErrInvalidStartPrice indicates the resolved start price is zero or negative.
	ErrInvalidStartPrice = errors.New("resolved start price is not positive")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (end date on or before start date). CAGR is undefined for such ranges.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Parse errors represent failures of the CSV boundary adapter.
var (
	// ErrMalformedSchema indicates the Date or Close column is missing from the header.
	ErrMalformedSchema = errors.New("required Date and Close columns missing")

	// ErrEmptyOrInvalidData indicates every row of the input was unparseable.
	ErrEmptyOrInvalidData = errors.New("no valid rows in price data")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNonPositiveAmount indicates the investment amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrNonPositiveFactor indicates a corporate action factor is zero or negative.
	ErrNonPositiveFactor = errors.New("factor must be positive")

	// ErrInvalidSymbol indicates a security has no ticker symbol configured.
	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrInvalidDate indicates a date parameter is missing or unparseable.
	ErrInvalidDate = errors.New("date parameter is required")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveSecurities = errors.New("failed to retrieve securities")
	ErrFailedToRetrievePrices     = errors.New("failed to retrieve security prices")
	ErrFailedToRetrieveActions    = errors.New("failed to retrieve corporate actions")
	ErrFailedToComputeReturn      = errors.New("failed to compute return")
	ErrFailedToImportPrices       = errors.New("failed to import price data")
	ErrFailedToRefreshPrices      = errors.New("failed to refresh security prices")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
)
