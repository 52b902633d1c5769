package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService   *service.SystemService
	settingsService *service.SettingsService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, settingsService *service.SettingsService) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingsService: settingsService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"appVersion"`
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.Version(),
	})
}

// UpdateKeys handles PUT requests that store provider API keys.
// Keys are encrypted before they reach the database.
//
// Endpoint: PUT /api/system/keys
// Response: 204 No Content
func (h *SystemHandler) UpdateKeys(w http.ResponseWriter, r *http.Request) {
	var req request.ProviderKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.settingsService.StoreProviderKeys(req.AlphaVantageKey, req.FredKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store provider keys", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
