package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/testutil"
)

// TestSecurityRepository_GetSecurity tests security retrieval by ID and key.
//
// WHY: The not-found sentinel is how every service layer distinguishes 404s
// from real database failures.
func TestSecurityRepository_GetSecurity(t *testing.T) {
	t.Run("retrieves a stored security by ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		created := testutil.NewSecurity().WithName("Tata Motors").WithSymbol("TATAMOTORS.NS").Build(t, db)

		// Execute
		security, err := repo.GetSecurity(created.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetSecurity() returned unexpected error: %v", err)
		}
		if security.Name != "Tata Motors" || security.Symbol != "TATAMOTORS.NS" {
			t.Errorf("Stored and retrieved security differ: %+v", security)
		}
	})

	t.Run("retrieves a stored security by key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		created := testutil.NewSecurity().WithKey("tata_motors").Build(t, db)

		security, err := repo.GetSecurityByKey("tata_motors")
		if err != nil {
			t.Fatalf("GetSecurityByKey() returned unexpected error: %v", err)
		}
		if security.ID != created.ID {
			t.Errorf("Expected ID %s, got %s", created.ID, security.ID)
		}
	})

	t.Run("unknown ID fails with ErrSecurityNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)

		_, err := repo.GetSecurity(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrSecurityNotFound) {
			t.Errorf("Expected ErrSecurityNotFound, got %v", err)
		}
	})

	t.Run("NULL symbol and exchange scan as empty strings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		created := testutil.NewSecurity().Build(t, db)

		security, err := repo.GetSecurity(created.ID)
		if err != nil {
			t.Fatalf("GetSecurity() returned unexpected error: %v", err)
		}
		if security.Symbol != "" || security.Exchange != "" {
			t.Errorf("Expected empty symbol/exchange, got %q/%q", security.Symbol, security.Exchange)
		}
	})
}

// TestSecurityRepository_Prices tests price storage and retrieval.
//
// WHY: The return engine assumes a date-ascending series with parsed dates;
// the unique constraint is what makes refresh and import idempotent.
func TestSecurityRepository_Prices(t *testing.T) {
	t.Run("price series comes back sorted ascending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		// Inserted deliberately out of order
		testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 3), 103)
		testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 1), 101)
		testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 2), 102)

		series, err := repo.GetPriceSeries(security.ID)
		if err != nil {
			t.Fatalf("GetPriceSeries() returned unexpected error: %v", err)
		}
		if len(series) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(series))
		}
		for i := 1; i < len(series); i++ {
			if !series[i].Date.After(series[i-1].Date) {
				t.Errorf("Series not sorted at index %d", i)
			}
		}
	})

	t.Run("batch insert ignores duplicate dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		points := []model.PricePoint{
			{Date: testutil.Date(2020, 1, 1), Close: 100},
			{Date: testutil.Date(2020, 1, 2), Close: 101},
		}

		inserted, err := repo.InsertPrices(context.Background(), security.ID, points)
		if err != nil {
			t.Fatalf("InsertPrices() returned unexpected error: %v", err)
		}
		if inserted != 2 {
			t.Errorf("Expected 2 inserted, got %d", inserted)
		}

		inserted, err = repo.InsertPrices(context.Background(), security.ID, points)
		if err != nil {
			t.Fatalf("Second InsertPrices() returned unexpected error: %v", err)
		}
		if inserted != 0 {
			t.Errorf("Expected 0 inserted on duplicate batch, got %d", inserted)
		}
		testutil.AssertRowCount(t, db, "security_price", 2)
	})

	t.Run("date range query is inclusive on both ends", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		for day := 1; day <= 5; day++ {
			testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, day), float64(100+day))
		}

		prices, err := repo.GetPricesByDateRange(security.ID, testutil.Date(2020, 1, 2), testutil.Date(2020, 1, 4))
		if err != nil {
			t.Fatalf("GetPricesByDateRange() returned unexpected error: %v", err)
		}
		if len(prices) != 3 {
			t.Errorf("Expected 3 prices in range, got %d", len(prices))
		}
	})

	t.Run("reversed range fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		_, err := repo.GetPricesByDateRange(security.ID, testutil.Date(2020, 1, 4), testutil.Date(2020, 1, 2))
		if err == nil {
			t.Error("Expected error for reversed range, got nil")
		}
	})

	t.Run("security without prices yields an empty series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		series, err := repo.GetPriceSeries(security.ID)
		if err != nil {
			t.Fatalf("GetPriceSeries() returned unexpected error: %v", err)
		}
		if len(series) != 0 {
			t.Errorf("Expected empty series, got %d points", len(series))
		}
	})
}

// TestSecurityRepository_CorporateActions tests action storage.
//
// WHY: ReplaceCorporateActions backs the idempotent bulk import; it must
// swap the whole list atomically rather than appending.
func TestSecurityRepository_CorporateActions(t *testing.T) {
	t.Run("replace swaps the full action list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.InsertCorporateAction(t, db, security.ID, testutil.Date(2019, 1, 1), 10, "old split")

		err := repo.ReplaceCorporateActions(context.Background(), security.ID, []model.CorporateAction{
			{SecurityID: security.ID, Date: testutil.Date(2020, 6, 1), Factor: 2, Description: "1:1 bonus"},
		})
		if err != nil {
			t.Fatalf("ReplaceCorporateActions() returned unexpected error: %v", err)
		}

		actions, err := repo.GetCorporateActions(security.ID)
		if err != nil {
			t.Fatalf("GetCorporateActions() returned unexpected error: %v", err)
		}
		if len(actions) != 1 || actions[0].Description != "1:1 bonus" {
			t.Errorf("Expected the old action replaced, got %+v", actions)
		}
	})

	t.Run("replace with an empty list clears actions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSecurityRepository(db)
		security := testutil.NewSecurity().Build(t, db)

		testutil.InsertCorporateAction(t, db, security.ID, testutil.Date(2019, 1, 1), 2, "split")

		if err := repo.ReplaceCorporateActions(context.Background(), security.ID, nil); err != nil {
			t.Fatalf("ReplaceCorporateActions() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "corporate_action", 0)
	})
}
