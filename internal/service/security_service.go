package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/marketdata"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
)

// SecurityService handles the security catalog and its price data:
// listing/creating securities, querying stored prices and corporate
// actions, and pulling new prices from the market data provider.
type SecurityService struct {
	securityRepo     *repository.SecurityRepository
	marketDataClient marketdata.Client
}

// NewSecurityService creates a new SecurityService with the provided dependencies.
func NewSecurityService(securityRepo *repository.SecurityRepository, marketDataClient marketdata.Client) *SecurityService {
	return &SecurityService{
		securityRepo:     securityRepo,
		marketDataClient: marketDataClient,
	}
}

// GetSecurity retrieves a single security by ID.
func (s *SecurityService) GetSecurity(securityID string) (model.Security, error) {
	return s.securityRepo.GetSecurity(securityID)
}

// GetAllSecurities retrieves all securities ordered by name.
func (s *SecurityService) GetAllSecurities() ([]model.Security, error) {
	return s.securityRepo.GetAllSecurities()
}

// CreateSecurity creates a new security with a generated ID.
func (s *SecurityService) CreateSecurity(ctx context.Context, sec model.Security) (*model.Security, error) {
	sec.ID = uuid.New().String()
	if sec.Currency == "" {
		sec.Currency = "INR"
	}

	if err := s.securityRepo.InsertSecurity(ctx, &sec); err != nil {
		return nil, fmt.Errorf("failed to create security: %w", err)
	}

	return &sec, nil
}

// GetPriceSeries retrieves the full stored closing-price series for a
// security, sorted ascending by date.
func (s *SecurityService) GetPriceSeries(securityID string) ([]model.PricePoint, error) {
	if _, err := s.securityRepo.GetSecurity(securityID); err != nil {
		return nil, err
	}
	return s.securityRepo.GetPriceSeries(securityID)
}

// GetCorporateActions retrieves all corporate actions for a security.
// A security without recorded actions yields an empty list.
func (s *SecurityService) GetCorporateActions(securityID string) ([]model.CorporateAction, error) {
	if _, err := s.securityRepo.GetSecurity(securityID); err != nil {
		return nil, err
	}
	return s.securityRepo.GetCorporateActions(securityID)
}

// CreateCorporateAction records a new share-multiplier event for a security.
func (s *SecurityService) CreateCorporateAction(ctx context.Context, action model.CorporateAction) (*model.CorporateAction, error) {
	if _, err := s.securityRepo.GetSecurity(action.SecurityID); err != nil {
		return nil, err
	}
	if action.Factor <= 0 {
		return nil, apperrors.ErrNonPositiveFactor
	}

	action.ID = uuid.New().String()
	if err := s.securityRepo.InsertCorporateAction(ctx, &action); err != nil {
		return nil, fmt.Errorf("failed to create corporate action: %w", err)
	}

	return &action, nil
}

// RefreshLatestPrice fetches the most recent closing prices for a security
// from the provider and stores any that are not yet in the database.
//
// The provider returns the last few trading days; duplicate dates are
// ignored by the unique constraint, so calling this repeatedly is safe.
// Returns the number of newly stored prices.
func (s *SecurityService) RefreshLatestPrice(ctx context.Context, securityID string) (int, error) {
	security, err := s.securityRepo.GetSecurity(securityID)
	if err != nil {
		return 0, err
	}

	if security.Symbol == "" {
		return 0, apperrors.ErrInvalidSymbol
	}

	closes, err := s.marketDataClient.RecentCloses(security.Symbol)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	return s.securityRepo.InsertPrices(ctx, securityID, toPricePoints(closes))
}

// RefreshHistoricalPrices backfills missing daily closes for a security
// over an inclusive date range. Existing rows are left untouched.
// Returns the number of newly stored prices.
func (s *SecurityService) RefreshHistoricalPrices(ctx context.Context, securityID string, startDate, endDate time.Time) (int, error) {
	security, err := s.securityRepo.GetSecurity(securityID)
	if err != nil {
		return 0, err
	}

	if security.Symbol == "" {
		return 0, apperrors.ErrInvalidSymbol
	}

	closes, err := s.marketDataClient.ClosesByDateRange(security.Symbol, startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshPrices, err)
	}

	return s.securityRepo.InsertPrices(ctx, securityID, toPricePoints(closes))
}

// RefreshAll runs RefreshLatestPrice for every security that has a ticker
// symbol. Per-security failures are reported in the result slice rather
// than aborting the sweep; used by the scheduled refresh.
func (s *SecurityService) RefreshAll(ctx context.Context) ([]model.RefreshResult, error) {
	securities, err := s.securityRepo.GetAllSecurities()
	if err != nil {
		return nil, err
	}

	results := []model.RefreshResult{}
	for _, security := range securities {
		if security.Symbol == "" {
			continue
		}

		result := model.RefreshResult{
			SecurityID: security.ID,
			Symbol:     security.Symbol,
		}

		inserted, err := s.RefreshLatestPrice(ctx, security.ID)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.NewPrices = inserted
		}

		results = append(results, result)
	}

	return results, nil
}

func toPricePoints(closes []marketdata.DailyClose) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: c.Date, Close: c.Close}
	}
	return points
}
