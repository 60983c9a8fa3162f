package dto

import "github.com/ecosnap/ecosnap/internal/domain/port"

// PredictImpactRequest is the input DTO for the PredictImpact use case.
type PredictImpactRequest struct {
	Material string `json:"material"`
}

// PredictImpactResponse is the output DTO returned after a prediction.
type PredictImpactResponse struct {
	InputMaterial      string  `json:"input_material"`
	ImpactRating       string  `json:"impact_rating"`
	CO2EmissionsKg     float64 `json:"co2_emissions_kg"`
	RecyclabilityScore float64 `json:"recyclability_score"`
}

// ModelInfoResponse describes the loaded model.
type ModelInfoResponse struct {
	ModelID     string   `json:"model_id"`
	TrainedAt   string   `json:"trained_at"`
	Categories  []string `json:"categories"`
	Targets     []string `json:"targets"`
	NEstimators int      `json:"n_estimators"`
	Seed        uint64   `json:"seed"`
}

// FromModelInfo maps port.ModelInfo to the response DTO.
func FromModelInfo(info port.ModelInfo) ModelInfoResponse {
	return ModelInfoResponse{
		ModelID:     info.ModelID,
		TrainedAt:   info.TrainedAt,
		Categories:  info.Categories,
		Targets:     info.Targets,
		NEstimators: info.NEstimators,
		Seed:        info.Seed,
	}
}
