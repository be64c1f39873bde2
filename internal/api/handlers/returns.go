package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api/request"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/validation"
)

// ReturnHandler handles return calculation HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{
		returnService: returnService,
	}
}

// Compute handles POST requests calculating the historical return of a
// lump-sum investment in a security over a date range.
//
// Endpoint: POST /api/returns
// Response: 200 OK with the full calculation result
// Errors: 400 on validation or calculation preconditions, 404 for an
// unknown security, 422 when the stored data cannot support a calculation
func (h *ReturnHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req request.ComputeReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateComputeReturn(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"detail": err.Error(),
		})
		return
	}

	// Both dates already validated as YYYY-MM-DD.
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	result, err := h.returnService.ComputeForSecurity(req.SecurityID, req.Amount, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSecurityNotFound):
			respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidDateRange):
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientData),
			errors.Is(err, apperrors.ErrNoDataAvailable),
			errors.Is(err, apperrors.ErrInvalidStartPrice):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"error":  apperrors.ErrFailedToComputeReturn.Error(),
				"detail": err.Error(),
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}
