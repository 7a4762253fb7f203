package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

const tracerName = "agriscore/usecase"

// Operation names used for metrics and span names.
const (
	OperationHealth          = "health"
	OperationCreditScore     = "credit_score"
	OperationLoanRisk        = "loan_risk"
	OperationYieldPrediction = "yield_prediction"
	OperationRetrain         = "retrain"
)

// ScoreCreditUseCase scores a borrower profile with the shared credit model,
// training it first if necessary.
type ScoreCreditUseCase struct {
	models    *ModelManager
	scorer    *service.CreditScorer
	publisher port.EventPublisher
	metrics   port.Metrics
	logger    *slog.Logger
}

// NewScoreCreditUseCase wires dependencies.
func NewScoreCreditUseCase(
	models *ModelManager,
	scorer *service.CreditScorer,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *ScoreCreditUseCase {
	return &ScoreCreditUseCase{
		models:    models,
		scorer:    scorer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute resolves defaults, scores the profile and publishes CreditScored.
func (uc *ScoreCreditUseCase) Execute(ctx context.Context, req dto.CreditScoreRequest) (resp dto.CreditScoreResponse, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ScoreCredit")
	defer span.End()
	defer func() {
		uc.metrics.RecordOperation(ctx, OperationCreditScore, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	factors := req.Factors()
	crop := valueobject.ParseCropType(factors.CropType)

	// One snapshot serves the whole request even if a retrain lands meanwhile.
	cm, err := uc.models.Current(ctx)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("score credit: %w", err)
	}

	score := uc.scorer.Score(cm, service.CreditProfile{
		CropType:     crop,
		YieldHistory: factors.YieldHistory,
		SalesHistory: factors.SalesHistory,
		WeatherData:  factors.WeatherData,
		LandArea:     factors.LandArea,
		SoilQuality:  factors.SoilQuality,
		Reputation:   factors.Reputation,
	})
	uc.metrics.RecordCreditScore(ctx, score.Score)

	now := time.Now().UTC()
	resp = dto.CreditScoreResponse{
		CreditScore: dto.Round2(score.Score),
		Confidence:  dto.Round2(score.Confidence),
		Factors:     factors,
		ModelID:     score.ModelID.String(),
		Timestamp:   now,
	}
	span.SetAttributes(
		attribute.String("model.id", resp.ModelID),
		attribute.Float64("credit.score", resp.CreditScore),
	)

	publishBestEffort(ctx, uc.publisher, uc.logger, event.CreditScored{
		ScoredAt:   now,
		ScoreID:    uuid.New(),
		ModelID:    score.ModelID,
		CropType:   crop.String(),
		Score:      resp.CreditScore,
		Confidence: resp.Confidence,
	})
	return resp, nil
}
