package ml

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/domain/port"
)

// Pipeline chains the one-hot encoder and the random forest. A fitted
// Pipeline is immutable and safe for concurrent Predict calls.
type Pipeline struct {
	trainedAt time.Time
	encoder   *OneHotEncoder
	forest    *RandomForest
	modelID   uuid.UUID
}

var _ port.DescribedPredictor = (*Pipeline)(nil)

// Trainer fits Pipelines. It implements port.ModelTrainer.
type Trainer struct {
	cfg ForestConfig
	now func() time.Time
}

var _ port.ModelTrainer = (*Trainer)(nil)

// NewTrainer creates a Trainer with the given forest configuration.
func NewTrainer(cfg ForestConfig) *Trainer {
	return &Trainer{cfg: cfg, now: time.Now}
}

// Fit encodes the Material column and fits the forest on all three targets.
func (t *Trainer) Fit(ctx context.Context, samples []model.TrainingSample) (port.DescribedPredictor, error) {
	return t.FitPipeline(ctx, samples)
}

// FitPipeline is Fit returning the concrete type.
func (t *Trainer) FitPipeline(ctx context.Context, samples []model.TrainingSample) (*Pipeline, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}

	materials := make([]string, len(samples))
	targets := mat.NewDense(len(samples), len(model.Targets), nil)
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		materials[i] = s.Material
		targets.SetRow(i, s.Targets)
	}

	encoder := NewOneHotEncoder()
	if err := encoder.Fit(materials); err != nil {
		return nil, err
	}
	features, err := encoder.Transform(materials)
	if err != nil {
		return nil, err
	}

	forest := NewRandomForest(t.cfg)
	if err := forest.Fit(ctx, features, targets); err != nil {
		return nil, err
	}

	return &Pipeline{
		modelID:   uuid.New(),
		trainedAt: t.now().UTC(),
		encoder:   encoder,
		forest:    forest,
	}, nil
}

// Predict returns the model outputs for one record. Unknown materials are
// encoded as all-zero rows rather than rejected.
func (p *Pipeline) Predict(ctx context.Context, record model.FeatureRecord) (model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return model.Prediction{}, err
	}

	x, err := p.encoder.Transform([]string{record.Material})
	if err != nil {
		return model.Prediction{}, fmt.Errorf("encode features: %w", err)
	}
	y, err := p.forest.Predict(x)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("predict: %w", err)
	}

	return model.PredictionFromValues(mat.Row(nil, 0, y))
}

// Known reports whether the material was part of the training data.
func (p *Pipeline) Known(material string) bool {
	return p.encoder.Known(material)
}

// Info describes the fitted pipeline.
func (p *Pipeline) Info() port.ModelInfo {
	cfg := p.forest.Config()
	return port.ModelInfo{
		ModelID:     p.modelID.String(),
		TrainedAt:   p.trainedAt.Format(time.RFC3339),
		Categories:  p.encoder.Categories(),
		Targets:     append([]string(nil), model.Targets...),
		NEstimators: len(p.forest.Trees()),
		Seed:        cfg.Seed,
	}
}
