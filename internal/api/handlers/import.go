package handlers

import (
	"net/http"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
)

// ImportHandler handles bulk data import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Import handles POST requests running a bulk import of the configured data
// directory: price CSV files, the security catalog and corporate actions.
//
// Endpoint: POST /api/import
// Response: 200 OK with the import summary, including per-row warnings
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	summary, err := h.importService.ImportAll(r.Context())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  apperrors.ErrFailedToImportPrices.Error(),
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
