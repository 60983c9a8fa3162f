package ml_test

import "github.com/ecosnap/ecosnap/internal/domain/model"

// categorySamples builds n rows per material with constant targets, so a
// fitted model should reproduce each material's targets.
func categorySamples(n int) []model.TrainingSample {
	targets := map[string][]float64{
		"Aluminium": {11.5, 0.9, 55},
		"Glass":     {0.85, 0.75, 70},
		"Plastic":   {6.0, 0.3, 35},
	}
	var samples []model.TrainingSample
	for _, m := range []string{"Plastic", "Glass", "Aluminium"} {
		for i := 0; i < n; i++ {
			samples = append(samples, model.TrainingSample{Material: m, Targets: targets[m]})
		}
	}
	return samples
}

// noisySamples varies targets within each material.
func noisySamples() []model.TrainingSample {
	return []model.TrainingSample{
		{Material: "Plastic", Targets: []float64{6.0, 0.30, 35}},
		{Material: "Plastic", Targets: []float64{6.4, 0.28, 33}},
		{Material: "Plastic", Targets: []float64{5.8, 0.35, 36}},
		{Material: "Glass", Targets: []float64{0.9, 0.80, 71}},
		{Material: "Glass", Targets: []float64{0.8, 0.70, 69}},
		{Material: "Steel", Targets: []float64{1.9, 0.85, 60}},
		{Material: "Steel", Targets: []float64{2.1, 0.88, 62}},
		{Material: "Aluminium", Targets: []float64{11.0, 0.90, 54}},
		{Material: "Aluminium", Targets: []float64{12.2, 0.92, 57}},
		{Material: "Paper", Targets: []float64{1.1, 0.65, 66}},
	}
}
