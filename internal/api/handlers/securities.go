package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/request"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/validation"
)

// SecurityHandler handles security catalog HTTP requests
type SecurityHandler struct {
	securityService *service.SecurityService
}

// NewSecurityHandler creates a new SecurityHandler
func NewSecurityHandler(securityService *service.SecurityService) *SecurityHandler {
	return &SecurityHandler{
		securityService: securityService,
	}
}

// Securities handles GET requests listing all securities.
//
// Endpoint: GET /api/security
// Response: 200 OK with a list of securities ordered by name
func (h *SecurityHandler) Securities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.securityService.GetAllSecurities()
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveSecurities.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, securities)
}

// Security handles GET requests for a single security by ID.
//
// Endpoint: GET /api/security/{uuid}
// Response: 200 OK with the security, 404 if unknown
func (h *SecurityHandler) Security(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "uuid")

	security, err := h.securityService.GetSecurity(securityID)
	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveSecurities.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, security)
}

// CreateSecurity handles POST requests creating a new security.
//
// Endpoint: POST /api/security
// Response: 201 Created with the stored security
func (h *SecurityHandler) CreateSecurity(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSecurityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCreateSecurity(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"detail": err.Error(),
		})
		return
	}

	security, err := h.securityService.CreateSecurity(r.Context(), model.Security{
		Name:     req.Name,
		Key:      req.Key,
		Symbol:   req.Symbol,
		Exchange: req.Exchange,
		Currency: req.Currency,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to create security",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, security)
}

// PriceSeries handles GET requests for a security's stored price history.
//
// Endpoint: GET /api/security/{uuid}/prices
// Response: 200 OK with the date-ascending price series
func (h *SecurityHandler) PriceSeries(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "uuid")

	series, err := h.securityService.GetPriceSeries(securityID)
	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrievePrices.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// CorporateActions handles GET requests for a security's corporate actions.
//
// Endpoint: GET /api/security/{uuid}/actions
// Response: 200 OK with the date-ascending action list
func (h *SecurityHandler) CorporateActions(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "uuid")

	actions, err := h.securityService.GetCorporateActions(securityID)
	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveActions.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, actions)
}

// CreateCorporateAction handles POST requests recording a share-multiplier
// event for a security.
//
// Endpoint: POST /api/security/{uuid}/actions
// Response: 201 Created with the stored action
func (h *SecurityHandler) CreateCorporateAction(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "uuid")

	var req request.CreateCorporateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCreateCorporateAction(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"detail": err.Error(),
		})
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	action, err := h.securityService.CreateCorporateAction(r.Context(), model.CorporateAction{
		SecurityID:  securityID,
		Date:        date,
		Factor:      req.Factor,
		Description: req.Description,
	})
	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to create corporate action",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, action)
}

// Refresh handles POST requests pulling new prices from the market data
// provider. The optional type query parameter selects the mode:
//
//	latest (default) - fetch the most recent trading days
//	historical       - backfill a start_date..end_date range
//
// Endpoint: POST /api/security/{uuid}/refresh
// Response: 200 OK with the number of newly stored prices
func (h *SecurityHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	securityID := chi.URLParam(r, "uuid")

	var inserted int
	var err error

	switch r.URL.Query().Get("type") {
	case "", "latest":
		inserted, err = h.securityService.RefreshLatestPrice(r.Context(), securityID)
	case "historical":
		var startDate, endDate time.Time
		startDate, err = time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "failed to parse start_date",
				"detail": err.Error(),
			})
			return
		}
		endDate, err = time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "failed to parse end_date",
				"detail": err.Error(),
			})
			return
		}
		inserted, err = h.securityService.RefreshHistoricalPrices(r.Context(), securityID, startDate, endDate)
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "type must be latest or historical",
		})
		return
	}

	if errors.Is(err, apperrors.ErrSecurityNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if errors.Is(err, apperrors.ErrInvalidSymbol) {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  err.Error(),
			"detail": "security has no ticker symbol configured",
		})
		return
	}
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  apperrors.ErrFailedToRefreshPrices.Error(),
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"newPrices": inserted})
}
