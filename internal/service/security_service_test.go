package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/testutil"
)

// TestSecurityService_CreateSecurity tests security creation.
//
// WHY: Creation assigns the ID and currency default; everything downstream
// keys off the generated UUID.
func TestSecurityService_CreateSecurity(t *testing.T) {
	t.Run("assigns an ID and defaults the currency", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSecurityService(t, db)

		// Execute
		security, err := svc.CreateSecurity(context.Background(), model.Security{
			Name: "Tata Motors",
			Key:  "tata_motors",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateSecurity() returned unexpected error: %v", err)
		}
		if security.ID == "" {
			t.Error("Expected a generated ID")
		}
		if security.Currency != "INR" {
			t.Errorf("Expected default currency INR, got %q", security.Currency)
		}

		stored, err := svc.GetSecurity(security.ID)
		if err != nil {
			t.Fatalf("GetSecurity() returned unexpected error: %v", err)
		}
		if stored.Name != "Tata Motors" {
			t.Errorf("Expected stored name, got %q", stored.Name)
		}
	})

	t.Run("duplicate key fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSecurityService(t, db)

		testutil.NewSecurity().WithKey("tata_motors").Build(t, db)

		_, err := svc.CreateSecurity(context.Background(), model.Security{
			Name: "Duplicate",
			Key:  "tata_motors",
		})
		if err == nil {
			t.Error("Expected error for duplicate key, got nil")
		}
	})
}

// TestSecurityService_CorporateActions tests action listing and creation.
//
// WHY: Recorded actions feed straight into the return calculation; the
// factor precondition keeps nonsense multipliers out of the store.
func TestSecurityService_CorporateActions(t *testing.T) {
	t.Run("records and lists actions in date order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSecurityService(t, db)
		security := testutil.NewSecurity().Build(t, db)

		for _, action := range []model.CorporateAction{
			{SecurityID: security.ID, Date: testutil.Date(2021, 1, 1), Factor: 5, Description: "split"},
			{SecurityID: security.ID, Date: testutil.Date(2020, 1, 1), Factor: 2, Description: "bonus"},
		} {
			if _, err := svc.CreateCorporateAction(context.Background(), action); err != nil {
				t.Fatalf("CreateCorporateAction() returned unexpected error: %v", err)
			}
		}

		actions, err := svc.GetCorporateActions(security.ID)
		if err != nil {
			t.Fatalf("GetCorporateActions() returned unexpected error: %v", err)
		}
		if len(actions) != 2 {
			t.Fatalf("Expected 2 actions, got %d", len(actions))
		}
		if !actions[0].Date.Before(actions[1].Date) {
			t.Error("Expected actions sorted ascending by date")
		}
	})

	t.Run("non-positive factor fails with ErrNonPositiveFactor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSecurityService(t, db)
		security := testutil.NewSecurity().Build(t, db)

		_, err := svc.CreateCorporateAction(context.Background(), model.CorporateAction{
			SecurityID: security.ID,
			Date:       testutil.Date(2020, 1, 1),
			Factor:     0,
		})
		if !errors.Is(err, apperrors.ErrNonPositiveFactor) {
			t.Errorf("Expected ErrNonPositiveFactor, got %v", err)
		}
	})

	t.Run("unknown security fails with ErrSecurityNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSecurityService(t, db)

		_, err := svc.GetCorporateActions(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrSecurityNotFound) {
			t.Errorf("Expected ErrSecurityNotFound, got %v", err)
		}
	})
}

// TestSecurityService_RefreshLatestPrice tests pulling prices from the provider.
//
// WHY: Refresh runs unattended on a schedule, so it must be symbol-gated,
// duplicate-safe and report exactly how many rows were new.
func TestSecurityService_RefreshLatestPrice(t *testing.T) {
	t.Run("stores fetched closes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(5)
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)
		security := testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)

		// Execute
		inserted, err := svc.RefreshLatestPrice(context.Background(), security.ID)

		// Assert
		if err != nil {
			t.Fatalf("RefreshLatestPrice() returned unexpected error: %v", err)
		}
		if inserted != 5 {
			t.Errorf("Expected 5 new prices, got %d", inserted)
		}
		if mock.QueryCount != 1 {
			t.Errorf("Expected 1 provider query, got %d", mock.QueryCount)
		}
		testutil.AssertRowCount(t, db, "security_price", 5)
	})

	t.Run("refresh twice stores nothing new", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(5)
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)
		security := testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)

		if _, err := svc.RefreshLatestPrice(context.Background(), security.ID); err != nil {
			t.Fatalf("First refresh returned unexpected error: %v", err)
		}
		inserted, err := svc.RefreshLatestPrice(context.Background(), security.ID)
		if err != nil {
			t.Fatalf("Second refresh returned unexpected error: %v", err)
		}

		if inserted != 0 {
			t.Errorf("Expected 0 new prices on second refresh, got %d", inserted)
		}
		testutil.AssertRowCount(t, db, "security_price", 5)
	})

	t.Run("security without a symbol fails with ErrInvalidSymbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(5)
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)
		security := testutil.NewSecurity().Build(t, db)

		_, err := svc.RefreshLatestPrice(context.Background(), security.ID)
		if !errors.Is(err, apperrors.ErrInvalidSymbol) {
			t.Errorf("Expected ErrInvalidSymbol, got %v", err)
		}
		if mock.QueryCount != 0 {
			t.Errorf("Expected no provider query, got %d", mock.QueryCount)
		}
	})

	t.Run("provider failure is wrapped as ErrFailedToRefreshPrices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(0).WithError(fmt.Errorf("rate limited"))
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)
		security := testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)

		_, err := svc.RefreshLatestPrice(context.Background(), security.ID)
		if !errors.Is(err, apperrors.ErrFailedToRefreshPrices) {
			t.Errorf("Expected ErrFailedToRefreshPrices, got %v", err)
		}
	})
}

// TestSecurityService_RefreshAll tests the scheduled sweep over all securities.
//
// WHY: One bad symbol must not block the rest of the sweep; failures are
// reported per security instead.
func TestSecurityService_RefreshAll(t *testing.T) {
	t.Run("skips symbol-less securities and reports per-security results", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(3)
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)

		testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)
		testutil.NewSecurity().WithSymbol("INFY.NS").Build(t, db)
		testutil.NewSecurity().Build(t, db) // no symbol

		results, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		for _, result := range results {
			if result.Error != "" {
				t.Errorf("Expected no error for %s, got %q", result.Symbol, result.Error)
			}
			if result.NewPrices != 3 {
				t.Errorf("Expected 3 new prices for %s, got %d", result.Symbol, result.NewPrices)
			}
		}
	})

	t.Run("a failing provider marks results instead of aborting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockMarketDataClient(0).WithError(fmt.Errorf("provider down"))
		svc := testutil.NewTestSecurityServiceWithMockClient(t, db, mock)

		testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)

		results, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Error == "" {
			t.Errorf("Expected a per-security error, got %+v", results)
		}
	})
}
