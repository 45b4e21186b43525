package handler

import (
	"errors"
	"net/http"

	"github.com/straye-as/concrete-calc/internal/database"
	"github.com/straye-as/concrete-calc/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// healthProbeKey is never written, so a healthy store answers ErrNotFound
const healthProbeKey = "health/probe"

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db     *gorm.DB
	store  storage.Storage
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db *gorm.DB, store storage.Storage, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		store:  store,
		logger: logger,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string                      `json:"status"`
	Service string                      `json:"service,omitempty"`
	Stats   *database.Stats             `json:"stats,omitempty"`
	Error   string                      `json:"error,omitempty"`
	Checks  map[string]dependencyStatus `json:"checks,omitempty"`
}

// Live godoc
// @Summary Liveness probe
// @Tags Health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Database godoc
// @Summary Database health
// @Description Pings the database and reports connection pool statistics
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health/db [get]
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(h.db)
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Service: "database",
			Error:   err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "database",
		Stats:   stats,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Description Checks the database and the print storage
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]dependencyStatus)
	allHealthy := true

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		allHealthy = false
	} else {
		checks["database"] = dependencyStatus{Status: "healthy"}
	}

	if err := h.checkStorage(r); err != nil {
		h.logger.Error("Storage health check failed", zap.Error(err))
		checks["storage"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		allHealthy = false
	} else {
		checks["storage"] = dependencyStatus{Status: "healthy"}
	}

	if allHealthy {
		respondJSON(w, http.StatusOK, healthResponse{Status: "healthy", Checks: checks})
		return
	}
	respondJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Checks: checks})
}

func (h *HealthHandler) checkStorage(r *http.Request) error {
	rc, err := h.store.Get(r.Context(), healthProbeKey)
	if err == nil {
		return rc.Close()
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}
