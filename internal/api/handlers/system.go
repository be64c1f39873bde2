package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strings"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// healthResponse represents the health check response
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := healthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response := healthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response := model.VersionResponse{
		Version:   h.systemService.CheckVersion(),
		GoVersion: runtime.Version(),
	}

	respondJSON(w, http.StatusOK, response)
}

// providerTokenRequest represents the provider token update request body
type providerTokenRequest struct {
	Token string `json:"token"`
}

// ProviderToken handles GET requests for the configured market-data provider
// token. The token is returned masked; the endpoint only confirms presence.
//
// Endpoint: GET /api/system/settings/token
// Response: 200 OK with {"configured": true, "token": "abcd****"}
func (h *SystemHandler) ProviderToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.systemService.GetProviderToken()
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
		return
	}
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to read provider token",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"configured": true,
		"token":      maskToken(token),
	})
}

// SetProviderToken handles PUT requests storing the market-data provider token.
//
// Endpoint: PUT /api/system/settings/token
// Response: 204 No Content
func (h *SystemHandler) SetProviderToken(w http.ResponseWriter, r *http.Request) {
	var req providerTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "token is required",
		})
		return
	}

	if err := h.systemService.SetProviderToken(r.Context(), req.Token); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to store provider token",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// maskToken keeps the first four characters of a token and masks the rest.
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
