package usecase

import (
	"context"
	"errors"

	"github.com/ecosnap/ecosnap/internal/application/dto"
	"github.com/ecosnap/ecosnap/internal/domain/port"
)

// ErrModelInfoUnavailable is returned when the loaded predictor cannot
// describe itself.
var ErrModelInfoUnavailable = errors.New("model metadata is unavailable")

// DescribeModel is the use case for reporting loaded model metadata.
type DescribeModel struct {
	predictor port.Predictor
}

// NewDescribeModel creates a new DescribeModel use case.
func NewDescribeModel(predictor port.Predictor) *DescribeModel {
	return &DescribeModel{predictor: predictor}
}

// Execute returns metadata for the loaded model.
func (uc *DescribeModel) Execute(_ context.Context) (dto.ModelInfoResponse, error) {
	if uc.predictor == nil {
		return dto.ModelInfoResponse{}, ErrModelNotLoaded
	}
	described, ok := uc.predictor.(port.DescribedPredictor)
	if !ok {
		return dto.ModelInfoResponse{}, ErrModelInfoUnavailable
	}
	return dto.FromModelInfo(described.Info()), nil
}
