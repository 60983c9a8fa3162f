package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecosnap/ecosnap/internal/application/dto"
	"github.com/ecosnap/ecosnap/internal/application/usecase"
)

// WelcomeMessage is returned by the root endpoint.
const WelcomeMessage = "EcoSnap AI is awake and ready! 🌿"

const maxRequestBytes = 1 << 20

// PredictionHandler serves the prediction API.
type PredictionHandler struct {
	predict  *usecase.PredictImpact
	describe *usecase.DescribeModel
	logger   *slog.Logger
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(
	predict *usecase.PredictImpact,
	describe *usecase.DescribeModel,
	logger *slog.Logger,
) *PredictionHandler {
	return &PredictionHandler{
		predict:  predict,
		describe: describe,
		logger:   logger,
	}
}

// MessageResponse is the JSON response of the root endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// predictRequest mirrors dto.PredictImpactRequest but can tell a missing
// field from an empty one.
type predictRequest struct {
	Material *string `json:"material"`
}

// RegisterRoutes registers the prediction endpoints on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("GET /model", h.ModelInfo)
}

// Home answers with a static greeting whether or not a model is loaded.
func (h *PredictionHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var body predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&body); err != nil {
		h.logger.WarnContext(r.Context(), "invalid predict request", "error", err)
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if body.Material == nil {
		h.logger.WarnContext(r.Context(), "invalid predict request", "error", "missing material")
		writeError(w, http.StatusUnprocessableEntity, "field required: material")
		return
	}

	resp, err := h.predict.Execute(r.Context(), dto.PredictImpactRequest{Material: *body.Material})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "prediction failed", "material", *body.Material, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ModelInfo handles GET /model.
func (h *PredictionHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := h.describe.Execute(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrModelNotLoaded) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
