package rest

import (
	"log/slog"
	"net/http"
	"time"
)

const serviceName = "ecosnap"

// HealthHandler provides HTTP health check endpoints for the prediction service.
type HealthHandler struct {
	logger      *slog.Logger
	startTime   time.Time
	modelLoaded func() bool
}

// NewHealthHandler creates a new health check handler. modelLoaded reports
// whether the service can serve predictions.
func NewHealthHandler(modelLoaded func() bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		startTime:   time.Now(),
		modelLoaded: modelLoaded,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles readiness probe requests. The service stays up without a
// model, but is not ready.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:  "ready",
		Service: serviceName,
		Checks:  map[string]string{"model": "ok"},
	}
	status := http.StatusOK

	if !h.modelLoaded() {
		resp.Status = "not ready"
		resp.Checks["model"] = "not loaded"
		status = http.StatusServiceUnavailable
		h.logger.WarnContext(r.Context(), "readiness check failed", "model", "not loaded")
	}

	writeJSON(w, status, resp)
}
