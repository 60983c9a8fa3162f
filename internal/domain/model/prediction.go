package model

import "fmt"

// Target column names, in model output order.
const (
	TargetCO2PerKg                 = "CO2_per_kg"
	TargetRecyclabilityScore       = "Recyclability_Score"
	TargetTotalSustainabilityScore = "Total_Sustainability_Score"

	// FeatureMaterial is the single categorical feature column.
	FeatureMaterial = "Material"
)

// Targets lists the regression outputs in the order the model emits them.
var Targets = []string{
	TargetCO2PerKg,
	TargetRecyclabilityScore,
	TargetTotalSustainabilityScore,
}

// FeatureRecord is the single-row input handed to a predictor.
type FeatureRecord struct {
	Material string
}

// Prediction is the ordered triple produced by the model for one record.
type Prediction struct {
	CO2PerKg                 float64
	RecyclabilityScore       float64
	TotalSustainabilityScore float64
}

// PredictionFromValues maps a raw model output row onto a Prediction.
func PredictionFromValues(values []float64) (Prediction, error) {
	if len(values) != len(Targets) {
		return Prediction{}, fmt.Errorf("expected %d model outputs, got %d", len(Targets), len(values))
	}
	return Prediction{
		CO2PerKg:                 values[0],
		RecyclabilityScore:       values[1],
		TotalSustainabilityScore: values[2],
	}, nil
}

// Values returns the prediction in model output order.
func (p Prediction) Values() []float64 {
	return []float64{p.CO2PerKg, p.RecyclabilityScore, p.TotalSustainabilityScore}
}

// TrainingSample is one dataset row: a material and its three target values.
type TrainingSample struct {
	Material string
	Targets  []float64
}

// Validate checks the sample carries one value per target.
func (s TrainingSample) Validate() error {
	if len(s.Targets) != len(Targets) {
		return fmt.Errorf("sample %q: expected %d targets, got %d", s.Material, len(Targets), len(s.Targets))
	}
	return nil
}
