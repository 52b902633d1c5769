package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/response"
	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/validation"
)

// HoldingHandler handles HTTP requests for holding endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the services.
type HoldingHandler struct {
	holdingService   *service.HoldingService
	portfolioService *service.PortfolioService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependencies.
func NewHoldingHandler(holdingService *service.HoldingService, portfolioService *service.PortfolioService) *HoldingHandler {
	return &HoldingHandler{
		holdingService:   holdingService,
		portfolioService: portfolioService,
	}
}

// Holdings handles GET requests to retrieve the per-holding metric rows.
//
// Endpoint: GET /api/holding
// Response: 200 OK with array of HoldingMetrics
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.portfolioService.Rows()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve holdings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, rows)
}

// AddHolding handles POST requests to add (or update) a holding.
// Validation failures persist nothing; a provider failure aborts just
// this add.
//
// Endpoint: POST /api/holding
// Response: 201 Created with the stored holding
// Error: 400 on invalid input, 502 on provider failure
func (h *HoldingHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	var req request.AddHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := validation.ParseAddHolding(req)
	if err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding, err := h.holdingService.AddHolding(r.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrDataUnavailable) || errors.Is(err, apperrors.ErrFetchFailed) {
			response.RespondError(w, http.StatusBadGateway, "failed to fetch data for symbol", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// DeleteHolding handles DELETE requests for a single holding.
//
// Endpoint: DELETE /api/holding/{symbol}
// Response: 204 No Content
// Error: 404 when the symbol is not held
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.holdingService.RemoveHolding(symbol); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, "holding not found", symbol)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete holding", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
