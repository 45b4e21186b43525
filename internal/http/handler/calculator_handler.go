package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/straye-as/concrete-calc/internal/service"
	"go.uber.org/zap"
)

// CalculatorHandler serves the calculator catalog and runs calculations
type CalculatorHandler struct {
	calculatorService *service.CalculatorService
	logger            *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler instance
func NewCalculatorHandler(calculatorService *service.CalculatorService, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		calculatorService: calculatorService,
		logger:            logger,
	}
}

// Units godoc
// @Summary List units
// @Description Supported length units (factor to metres) and volume units (count per cubic metre)
// @Tags Reference
// @Produce json
// @Success 200 {object} domain.UnitsDTO
// @Router /units [get]
func (h *CalculatorHandler) Units(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.calculatorService.Units())
}

// Mixes godoc
// @Summary List nominal mixes
// @Description Nominal mix grades, dry volume factor bounds and premix bag sizes
// @Tags Reference
// @Produce json
// @Success 200 {object} domain.MixesDTO
// @Router /mixes [get]
func (h *CalculatorHandler) Mixes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.calculatorService.Mixes())
}

// List godoc
// @Summary List calculators
// @Tags Calculators
// @Produce json
// @Success 200 {object} domain.ListResponse[domain.CalculatorSummaryDTO]
// @Router /calculators [get]
func (h *CalculatorHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.calculatorService.List()
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.CalculatorSummaryDTO]{
		Data:  items,
		Total: len(items),
	})
}

// Get godoc
// @Summary Get calculator
// @Description Input definition, FAQs, breadcrumbs and JSON-LD for one calculator page
// @Tags Calculators
// @Produce json
// @Param slug path string true "Calculator slug"
// @Success 200 {object} domain.CalculatorDetailDTO
// @Failure 404 {object} domain.APIError
// @Router /calculators/{slug} [get]
func (h *CalculatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.calculatorService.Get(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get calculator")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Calculate godoc
// @Summary Run a calculation
// @Description Computes net and gross volume, and optionally materials, premix bags and cost
// @Tags Calculators
// @Accept json
// @Produce json
// @Param slug path string true "Calculator slug"
// @Param request body domain.CalculateRequest true "Dimensions and options"
// @Success 200 {object} calc.Result
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Router /calculators/{slug}/calculate [post]
func (h *CalculatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req domain.CalculateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.calculatorService.Calculate(r.Context(), slug, &req)
	if err != nil {
		respondServiceError(w, middleware.LoggerFromContext(r.Context(), h.logger), err, "calculate")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
