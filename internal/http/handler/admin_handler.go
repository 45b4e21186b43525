package handler

import (
	"net/http"
	"strconv"

	"github.com/straye-as/concrete-calc/internal/auth"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/straye-as/concrete-calc/internal/service"
	"go.uber.org/zap"
)

// AdminHandler serves the authenticated maintenance endpoints
type AdminHandler struct {
	estimateService *service.EstimateService
	tokens          *auth.TokenIssuer
	logger          *zap.Logger
}

// NewAdminHandler creates a new admin handler instance. tokens may be nil
// when no signing key is configured.
func NewAdminHandler(estimateService *service.EstimateService, tokens *auth.TokenIssuer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		estimateService: estimateService,
		tokens:          tokens,
		logger:          logger,
	}
}

// IssueToken godoc
// @Summary Issue an admin token
// @Description Exchanges the admin API key for a short-lived HS256 bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body domain.TokenRequest false "Optional token subject"
// @Success 200 {object} domain.TokenDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/token [post]
func (h *AdminHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.tokens == nil {
		respondWithError(w, http.StatusNotFound, "Bearer tokens are not enabled")
		return
	}

	var req domain.TokenRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	log := middleware.LoggerFromContext(r.Context(), h.logger)
	token, expiresAt, err := h.tokens.Issue(req.Subject)
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	log.Info("admin token issued", zap.String("subject", req.Subject), zap.Time("expires_at", expiresAt))
	respondJSON(w, http.StatusOK, domain.TokenDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// RecentEstimates godoc
// @Summary List recent estimates
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {object} domain.ListResponse[domain.EstimateSummaryDTO]
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/estimates [get]
func (h *AdminHandler) RecentEstimates(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.estimateService.Recent(r.Context(), limit)
	if err != nil {
		respondServiceError(w, middleware.LoggerFromContext(r.Context(), h.logger), err, "list estimates")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// PurgeExpired godoc
// @Summary Purge expired estimates
// @Description Deletes expired estimates and their cached printable summaries
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.PurgeResultDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/estimates/expired [delete]
func (h *AdminHandler) PurgeExpired(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromContext(r.Context(), h.logger)
	if p, ok := auth.FromContext(r.Context()); ok {
		log = log.With(zap.String("subject", p.Subject))
	}

	deleted, err := h.estimateService.PurgeExpired(r.Context())
	if err != nil {
		respondServiceError(w, log, err, "purge estimates")
		return
	}

	log.Info("expired estimates purged on request", zap.Int64("deleted", deleted))
	respondJSON(w, http.StatusOK, domain.PurgeResultDTO{Deleted: deleted})
}
