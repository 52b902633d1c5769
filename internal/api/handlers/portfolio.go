package handlers

import (
	"errors"
	"net/http"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/response"
	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio-level endpoints:
// summary, history and batch refresh.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	historyService   *service.HistoryService
	refreshService   *service.RefreshService
	holdingService   *service.HoldingService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(
	portfolioService *service.PortfolioService,
	historyService *service.HistoryService,
	refreshService *service.RefreshService,
	holdingService *service.HoldingService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		historyService:   historyService,
		refreshService:   refreshService,
		holdingService:   holdingService,
	}
}

// Summary handles GET requests for the portfolio summary.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// History handles GET requests for the total-value series.
// With ?normalized=true the series is scaled so the first point equals
// 100; an empty series is a no-data condition answered with 204.
//
// Endpoint: GET /api/portfolio/history
// Response: 200 OK with array of HistoryPoint, or array of float64 when normalized
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("normalized") == "true" {
		normalized, err := h.historyService.Normalized()
		if err != nil {
			if errors.Is(err, apperrors.ErrEmptyHistory) {
				response.RespondJSON(w, http.StatusNoContent, nil)
				return
			}
			response.RespondError(w, http.StatusInternalServerError, "failed to load history", err.Error())
			return
		}
		response.RespondJSON(w, http.StatusOK, normalized)
		return
	}

	series, err := h.historyService.Series()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Refresh handles POST requests triggering a batch refresh. The batch
// runs synchronously; a second trigger while one is running is rejected.
//
// Endpoint: POST /api/portfolio/refresh
// Response: 200 OK with RefreshResult
// Error: 409 Conflict when a refresh is already running
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshInProgress) {
			response.RespondError(w, http.StatusConflict, "refresh already in progress", nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "refresh failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RefreshStatus handles GET requests for the refresh scheduler state.
//
// Endpoint: GET /api/portfolio/refresh
// Response: 200 OK with RefreshStatus
func (h *PortfolioHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.refreshService.Status())
}

// Clear handles DELETE requests that empty both the holdings and the
// history log. This is the only way history points are ever removed.
//
// Endpoint: DELETE /api/portfolio
// Response: 204 No Content
func (h *PortfolioHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.holdingService.ClearAll(); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
