package port

import (
	"context"

	"github.com/ecosnap/ecosnap/internal/domain/model"
)

// Predictor is the read-only handle to a fitted model.
// Implementations must be safe for concurrent use.
type Predictor interface {
	// Predict returns the model outputs for one feature record.
	Predict(ctx context.Context, record model.FeatureRecord) (model.Prediction, error)
}

// ModelInfo describes a loaded or freshly trained model.
type ModelInfo struct {
	ModelID     string
	TrainedAt   string
	Categories  []string
	Targets     []string
	NEstimators int
	Seed        uint64
}

// DescribedPredictor is a Predictor that can report its own metadata.
type DescribedPredictor interface {
	Predictor
	Info() ModelInfo
}

// DatasetReader loads training samples from a tabular source.
type DatasetReader interface {
	Read(ctx context.Context, path string) ([]model.TrainingSample, error)
}

// ModelTrainer fits a predictor on training samples.
type ModelTrainer interface {
	Fit(ctx context.Context, samples []model.TrainingSample) (DescribedPredictor, error)
}

// ArtifactStore persists and restores fitted models.
type ArtifactStore interface {
	// Save writes the model to path, replacing any existing file atomically.
	Save(path string, predictor DescribedPredictor) error
	// Load restores a model previously written by Save.
	Load(path string) (DescribedPredictor, error)
}
