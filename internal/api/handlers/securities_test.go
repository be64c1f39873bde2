package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/testutil"
)

func setupSecurityHandler(t *testing.T) (*SecurityHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSecurityService(t, db)
	return NewSecurityHandler(svc), db
}

func TestSecurityHandler_Securities(t *testing.T) {
	t.Run("lists stored securities", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)

		testutil.CreateSecurity(t, db, "Tata Motors")
		testutil.CreateSecurity(t, db, "Infosys")

		req := httptest.NewRequest(http.MethodGet, "/api/security", nil)
		w := httptest.NewRecorder()
		handler.Securities(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var securities []model.Security
		json.NewDecoder(w.Body).Decode(&securities)

		if len(securities) != 2 {
			t.Errorf("Expected 2 securities, got %d", len(securities))
		}
	})

	t.Run("empty catalog yields an empty list, not null", func(t *testing.T) {
		handler, _ := setupSecurityHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/security", nil)
		w := httptest.NewRecorder()
		handler.Securities(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Errorf("Expected empty JSON array, got %s", w.Body.String())
		}
	})
}

func TestSecurityHandler_CreateSecurity(t *testing.T) {
	t.Run("creates a security from a valid request", func(t *testing.T) {
		handler, _ := setupSecurityHandler(t)

		body := strings.NewReader(`{"name": "Tata Motors", "key": "tata_motors", "symbol": "TATAMOTORS.NS"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/security", body)
		w := httptest.NewRecorder()
		handler.CreateSecurity(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var security model.Security
		json.NewDecoder(w.Body).Decode(&security)

		if security.ID == "" {
			t.Error("Expected a generated ID in the response")
		}
		if security.Currency != "INR" {
			t.Errorf("Expected default currency INR, got %q", security.Currency)
		}
	})

	t.Run("rejects a request missing required fields", func(t *testing.T) {
		handler, _ := setupSecurityHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/security", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.CreateSecurity(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSecurityHandler_PriceSeries(t *testing.T) {
	t.Run("returns the stored series", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)

		security := testutil.NewSecurity().Build(t, db)
		testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 1), 100)
		testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 2), 101)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/security/"+security.ID+"/prices",
			map[string]string{"uuid": security.ID})
		w := httptest.NewRecorder()
		handler.PriceSeries(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var series []model.PricePoint
		json.NewDecoder(w.Body).Decode(&series)

		if len(series) != 2 {
			t.Errorf("Expected 2 points, got %d", len(series))
		}
	})

	t.Run("returns 404 for an unknown security", func(t *testing.T) {
		handler, _ := setupSecurityHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/security/"+id+"/prices",
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()
		handler.PriceSeries(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSecurityHandler_CreateCorporateAction(t *testing.T) {
	t.Run("records an action for a security", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)
		security := testutil.NewSecurity().Build(t, db)

		body := strings.NewReader(`{"date": "2020-06-01", "factor": 2, "description": "1:1 bonus"}`)
		req := testutil.NewRequestWithURLParamsAndBody(http.MethodPost,
			"/api/security/"+security.ID+"/actions",
			map[string]string{"uuid": security.ID}, body)
		w := httptest.NewRecorder()
		handler.CreateCorporateAction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "corporate_action", 1)
	})

	t.Run("rejects a non-positive factor", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)
		security := testutil.NewSecurity().Build(t, db)

		body := strings.NewReader(`{"date": "2020-06-01", "factor": 0}`)
		req := testutil.NewRequestWithURLParamsAndBody(http.MethodPost,
			"/api/security/"+security.ID+"/actions",
			map[string]string{"uuid": security.ID}, body)
		w := httptest.NewRecorder()
		handler.CreateCorporateAction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSecurityHandler_Refresh(t *testing.T) {
	t.Run("rejects an unknown refresh type", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)
		security := testutil.NewSecurity().WithSymbol("TATAMOTORS.NS").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/security/"+security.ID+"/refresh?type=weekly",
			map[string]string{"uuid": security.ID})
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects refresh for a security without a symbol", func(t *testing.T) {
		handler, db := setupSecurityHandler(t)
		security := testutil.NewSecurity().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost,
			"/api/security/"+security.ID+"/refresh",
			map[string]string{"uuid": security.ID})
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
