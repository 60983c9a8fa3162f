package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecosnap/ecosnap/internal/application/dto"
	"github.com/ecosnap/ecosnap/internal/domain/port"
)

// TrainModel is the use case for fitting a model on a dataset and writing the
// artifact. Nothing is written unless every earlier step succeeds.
type TrainModel struct {
	reader  port.DatasetReader
	trainer port.ModelTrainer
	store   port.ArtifactStore
	logger  *slog.Logger
}

// NewTrainModel creates a new TrainModel use case.
func NewTrainModel(
	reader port.DatasetReader,
	trainer port.ModelTrainer,
	store port.ArtifactStore,
	logger *slog.Logger,
) *TrainModel {
	return &TrainModel{
		reader:  reader,
		trainer: trainer,
		store:   store,
		logger:  logger,
	}
}

// Execute loads the dataset, fits the pipeline and saves it.
func (uc *TrainModel) Execute(ctx context.Context, req dto.TrainModelRequest) (dto.TrainModelResponse, error) {
	// 1. Load the dataset.
	samples, err := uc.reader.Read(ctx, req.DatasetPath)
	if err != nil {
		return dto.TrainModelResponse{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	// 2. Fit encoder and forest on every row.
	uc.logger.Info("training model", slog.Int("rows", len(samples)))
	predictor, err := uc.trainer.Fit(ctx, samples)
	if err != nil {
		return dto.TrainModelResponse{}, fmt.Errorf("failed to fit model: %w", err)
	}
	info := predictor.Info()

	// 3. Persist the artifact.
	if err := uc.store.Save(req.OutputPath, predictor); err != nil {
		return dto.TrainModelResponse{}, fmt.Errorf("failed to save artifact: %w", err)
	}

	return dto.TrainModelResponse{
		ModelID:     info.ModelID,
		OutputPath:  req.OutputPath,
		Rows:        len(samples),
		Categories:  len(info.Categories),
		NEstimators: info.NEstimators,
	}, nil
}
