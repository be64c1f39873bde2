package service

import (
	"math"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
)

// hoursPerYear converts elapsed time to fractional years using the average
// Gregorian year (365.25 days), matching the CAGR convention used throughout.
const hoursPerYear = 24 * 365.25

// ReturnService computes the historical return of a lump-sum investment in
// a single security, adjusted for corporate actions.
//
// The calculation itself (Compute) is a pure function over immutable input
// snapshots: it holds no state between calls and may run concurrently with
// other calls over disjoint inputs. The service wrapper only adds data
// loading and the configured benchmark rate.
type ReturnService struct {
	securityRepo  *repository.SecurityRepository
	benchmarkRate float64
}

// NewReturnService creates a ReturnService. benchmarkRate is the annual
// fixed-deposit percentage used for the benchmark comparison (e.g. 6).
func NewReturnService(securityRepo *repository.SecurityRepository, benchmarkRate float64) *ReturnService {
	return &ReturnService{
		securityRepo:  securityRepo,
		benchmarkRate: benchmarkRate,
	}
}

// ComputeForSecurity loads the stored price series and corporate actions for
// a security and computes the return of investing amount at startDate and
// holding until endDate.
//
// A security without corporate actions gets an empty action list, not an
// error. All data is loaded up front; Compute then runs on the snapshots.
func (s *ReturnService) ComputeForSecurity(securityID string, amount float64, startDate, endDate time.Time) (model.ReturnResult, error) {
	if _, err := s.securityRepo.GetSecurity(securityID); err != nil {
		return model.ReturnResult{}, err
	}

	series, err := s.securityRepo.GetPriceSeries(securityID)
	if err != nil {
		return model.ReturnResult{}, err
	}

	actions, err := s.securityRepo.GetCorporateActions(securityID)
	if err != nil {
		return model.ReturnResult{}, err
	}

	return s.Compute(series, amount, startDate, endDate, actions)
}

// Compute calculates the return of a hypothetical lump-sum investment.
//
// Algorithm:
//  1. Resolve the start and end prices via ResolveNearest.
//  2. shares0 = amount / startPrice.
//  3. Replay in-range corporate actions into a share-count timeline.
//  4. effectiveShares = shares as of endDate.
//  5. finalValue = effectiveShares * endPrice.
//  6. Derive absolute return, return percentage, CAGR and the fixed-deposit
//     benchmark comparison over the elapsed fractional years.
//  7. Generate the monthly growth series from the same timeline.
//
// Errors:
//   - apperrors.ErrInvalidDateRange when endDate is not after startDate
//     (CAGR is undefined for zero or negative periods)
//   - apperrors.ErrInsufficientData when the series has fewer than 2 samples
//   - apperrors.ErrNoDataAvailable when a price cannot be resolved
//   - apperrors.ErrInvalidStartPrice when the resolved start price is <= 0
//
// On any error no partial result is returned.
func (s *ReturnService) Compute(series []model.PricePoint, amount float64, startDate, endDate time.Time, actions []model.CorporateAction) (model.ReturnResult, error) {
	if !endDate.After(startDate) {
		return model.ReturnResult{}, apperrors.ErrInvalidDateRange
	}

	if len(series) < 2 {
		return model.ReturnResult{}, apperrors.ErrInsufficientData
	}

	startPrice, err := ResolveNearest(series, startDate)
	if err != nil {
		return model.ReturnResult{}, err
	}

	endPrice, err := ResolveNearest(series, endDate)
	if err != nil {
		return model.ReturnResult{}, err
	}

	if startPrice.Close <= 0 {
		return model.ReturnResult{}, apperrors.ErrInvalidStartPrice
	}

	sharesPurchased := amount / startPrice.Close

	timeline := BuildAdjustments(startDate, sharesPurchased, endDate, actions)
	effectiveShares := SharesAsOf(timeline, endDate)

	finalValue := effectiveShares * endPrice.Close
	absoluteReturn := finalValue - amount
	returnPercentage := (absoluteReturn / amount) * 100

	yearsDiff := endDate.Sub(startDate).Hours() / hoursPerYear

	cagr := (math.Pow(finalValue/amount, 1/yearsDiff) - 1) * 100

	fdValue := amount * math.Pow(1+s.benchmarkRate/100, yearsDiff)
	fdComparison := ((finalValue - fdValue) / fdValue) * 100

	growthSeries := GenerateGrowthSeries(series, timeline, startDate, endDate)

	return model.ReturnResult{
		InitialInvestment: amount,
		FinalValue:        finalValue,
		AbsoluteReturn:    absoluteReturn,
		ReturnPercentage:  returnPercentage,
		StartDate:         startDate,
		EndDate:           endDate,
		StartPrice:        startPrice,
		EndPrice:          endPrice,
		YearsDiff:         yearsDiff,
		CAGR:              cagr,
		BenchmarkRate:     s.benchmarkRate,
		FDComparison:      fdComparison,
		Adjustments:       timeline,
		GrowthSeries:      growthSeries,
	}, nil
}
