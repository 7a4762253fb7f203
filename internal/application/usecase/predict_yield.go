package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

// PredictYieldUseCase runs the yield formula.
type PredictYieldUseCase struct {
	estimator *service.YieldEstimator
	metrics   port.Metrics
}

// NewPredictYieldUseCase wires dependencies.
func NewPredictYieldUseCase(estimator *service.YieldEstimator, metrics port.Metrics) *PredictYieldUseCase {
	return &PredictYieldUseCase{estimator: estimator, metrics: metrics}
}

// Execute resolves defaults and estimates the yield. It never fails.
func (uc *PredictYieldUseCase) Execute(ctx context.Context, req dto.YieldPredictionRequest) (dto.YieldPredictionResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PredictYield")
	defer span.End()

	factors := req.Factors()
	estimate := uc.estimator.Predict(service.YieldInput{
		CropType:    valueobject.ParseCropType(factors.CropType),
		LandArea:    factors.LandArea,
		SoilQuality: factors.SoilQuality,
		WeatherData: factors.WeatherData,
		Irrigation:  factors.Irrigation,
		Fertilizer:  factors.Fertilizer,
	})
	span.SetAttributes(attribute.Float64("yield.predicted", estimate.PredictedYield))
	uc.metrics.RecordOperation(ctx, OperationYieldPrediction, nil)

	return dto.YieldPredictionResponse{
		PredictedYield: dto.Round2(estimate.PredictedYield),
		Confidence:     dto.Round2(estimate.Confidence),
		Factors:        factors,
		Timestamp:      time.Now().UTC(),
	}, nil
}
