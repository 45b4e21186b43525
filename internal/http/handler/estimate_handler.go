package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/straye-as/concrete-calc/internal/service"
	"go.uber.org/zap"
)

// EstimateHandler handles saved, shareable estimates
type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

// NewEstimateHandler creates a new estimate handler instance
func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Save an estimate
// @Description Runs the calculation and stores inputs and result under a shareable id
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.CreateEstimateRequest true "Calculator, dimensions and options"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /estimates [post]
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEstimateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	log := middleware.LoggerFromContext(r.Context(), h.logger)
	estimate, err := h.estimateService.Create(r.Context(), &req)
	if err != nil {
		// the calculator is part of the body here, not the path
		if errors.Is(err, service.ErrCalculatorNotFound) {
			respondWithError(w, http.StatusBadRequest, "Unknown calculator: "+req.Calculator)
			return
		}
		respondServiceError(w, log, err, "create estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, estimate)
}

// Get godoc
// @Summary Get an estimate
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /estimates/{id} [get]
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEstimateID(w, r)
	if !ok {
		return
	}

	estimate, err := h.estimateService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, middleware.LoggerFromContext(r.Context(), h.logger), err, "get estimate")
		return
	}
	respondJSON(w, http.StatusOK, estimate)
}

// Print godoc
// @Summary Printable summary
// @Description HTML document with the inputs, results and materials of an estimate
// @Tags Estimates
// @Produce html
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /estimates/{id}/print [get]
func (h *EstimateHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEstimateID(w, r)
	if !ok {
		return
	}

	log := middleware.LoggerFromContext(r.Context(), h.logger)
	body, err := h.estimateService.Print(r.Context(), id)
	if err != nil {
		respondServiceError(w, log, err, "render estimate")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		log.Warn("failed to stream print", zap.String("estimate_id", id.String()), zap.Error(err))
	}
}

func parseEstimateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid estimate ID format")
		return uuid.Nil, false
	}
	return id, true
}
