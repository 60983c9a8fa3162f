package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecosnap/ecosnap/internal/application/dto"
	"github.com/ecosnap/ecosnap/internal/domain/model"
	"github.com/ecosnap/ecosnap/internal/domain/port"
	"github.com/ecosnap/ecosnap/internal/domain/valueobject"
)

const instrumentationName = "github.com/ecosnap/ecosnap/internal/application/usecase"

// ErrModelNotLoaded is returned by every prediction while the service runs
// without a model artifact.
var ErrModelNotLoaded = errors.New("model is not loaded")

// PredictImpact is the use case for predicting a material's sustainability
// metrics. The predictor is set once at construction and only read afterwards,
// so Execute is safe for concurrent use.
type PredictImpact struct {
	predictor port.Predictor
	logger    *slog.Logger
	tracer    trace.Tracer
	requests  metric.Int64Counter
	duration  metric.Float64Histogram
	threshold float64
}

// NewPredictImpact creates a new PredictImpact use case. predictor may be nil,
// in which case every Execute returns ErrModelNotLoaded.
func NewPredictImpact(
	predictor port.Predictor,
	threshold float64,
	logger *slog.Logger,
	meter metric.Meter,
) (*PredictImpact, error) {
	requests, err := meter.Int64Counter("ecosnap.predictions",
		metric.WithDescription("Prediction requests by outcome and impact rating."))
	if err != nil {
		return nil, fmt.Errorf("create prediction counter: %w", err)
	}
	duration, err := meter.Float64Histogram("ecosnap.prediction.duration",
		metric.WithDescription("Model invocation latency."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create prediction histogram: %w", err)
	}

	return &PredictImpact{
		predictor: predictor,
		threshold: threshold,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		requests:  requests,
		duration:  duration,
	}, nil
}

// Ready reports whether a model is loaded.
func (uc *PredictImpact) Ready() bool {
	return uc.predictor != nil
}

// Execute normalizes the material, runs the model and shapes the result.
// Every failure comes back as an error; the response is only meaningful when
// the error is nil.
func (uc *PredictImpact) Execute(ctx context.Context, req dto.PredictImpactRequest) (dto.PredictImpactResponse, error) {
	material := valueobject.NewMaterial(req.Material)

	ctx, span := uc.tracer.Start(ctx, "PredictImpact",
		trace.WithAttributes(attribute.String("material", material.Normalized())))
	defer span.End()

	resp, err := uc.execute(ctx, material)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		uc.logger.Warn("prediction failed",
			slog.String("material", material.Normalized()),
			slog.String("error", err.Error()),
		)
		return dto.PredictImpactResponse{}, err
	}

	uc.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "success"),
		attribute.String("impact_rating", resp.ImpactRating),
	))
	return resp, nil
}

func (uc *PredictImpact) execute(ctx context.Context, material valueobject.Material) (dto.PredictImpactResponse, error) {
	if uc.predictor == nil {
		return dto.PredictImpactResponse{}, ErrModelNotLoaded
	}

	if k, ok := uc.predictor.(interface{ Known(string) bool }); ok && !k.Known(material.Normalized()) {
		uc.logger.Debug("material not seen during training, using zero encoding",
			slog.String("material", material.Normalized()))
	}

	start := time.Now()
	prediction, err := uc.predict(ctx, model.FeatureRecord{Material: material.Normalized()})
	uc.duration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return dto.PredictImpactResponse{}, err
	}

	co2, err := round2(prediction.CO2PerKg)
	if err != nil {
		return dto.PredictImpactResponse{}, fmt.Errorf("co2 emissions: %w", err)
	}
	recyclability, err := round2(prediction.RecyclabilityScore)
	if err != nil {
		return dto.PredictImpactResponse{}, fmt.Errorf("recyclability score: %w", err)
	}

	return dto.PredictImpactResponse{
		InputMaterial:      material.Raw(),
		CO2EmissionsKg:     co2,
		RecyclabilityScore: recyclability,
		ImpactRating:       valueobject.ImpactRatingFromCO2(co2, uc.threshold).String(),
	}, nil
}

// predict invokes the model, turning a panic inside it into an error.
func (uc *PredictImpact) predict(ctx context.Context, record model.FeatureRecord) (p model.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v", r)
		}
	}()
	return uc.predictor.Predict(ctx, record)
}

func round2(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("model returned non-finite value %v", v)
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64(), nil
}
