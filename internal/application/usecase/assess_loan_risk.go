package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

// AssessLoanRiskUseCase runs the loan risk rules.
type AssessLoanRiskUseCase struct {
	scorer    *service.LoanRiskScorer
	publisher port.EventPublisher
	metrics   port.Metrics
	logger    *slog.Logger
}

// NewAssessLoanRiskUseCase wires dependencies.
func NewAssessLoanRiskUseCase(
	scorer *service.LoanRiskScorer,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *AssessLoanRiskUseCase {
	return &AssessLoanRiskUseCase{
		scorer:    scorer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute scores the application and publishes LoanRiskAssessed, plus
// HighRiskLoanDetected for Very High assessments. It never fails.
func (uc *AssessLoanRiskUseCase) Execute(ctx context.Context, req dto.LoanRiskRequest) (dto.LoanRiskResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "AssessLoanRisk")
	defer span.End()

	factors := req.Factors()
	assessment := uc.scorer.Assess(service.LoanRiskInput{
		LoanAmount:          factors.LoanAmount,
		DurationDays:        factors.Duration,
		BorrowerCreditScore: factors.BorrowerCreditScore,
		WeatherForecast:     factors.WeatherForecast,
		MarketPrice:         factors.MarketPrice,
	})

	signals := make([]dto.RiskSignalResponse, 0, len(assessment.Signals))
	names := make([]string, 0, len(assessment.Signals))
	for _, s := range assessment.Signals {
		signals = append(signals, dto.RiskSignalResponse{Factor: s.Factor, Points: s.Points})
		names = append(names, s.Factor)
	}

	level := assessment.RiskLevel.String()
	span.SetAttributes(
		attribute.Int("risk.score", assessment.RiskScore),
		attribute.String("risk.level", level),
	)
	uc.metrics.RecordRiskScore(ctx, assessment.RiskScore, level)
	uc.metrics.RecordOperation(ctx, OperationLoanRisk, nil)

	now := time.Now().UTC()
	events := []event.Event{event.LoanRiskAssessed{
		AssessedAt:   now,
		AssessmentID: assessment.ID,
		RiskLevel:    level,
		CropType:     valueobject.ParseCropType(factors.CropType).String(),
		Season:       factors.Season,
		Signals:      names,
		RiskScore:    assessment.RiskScore,
	}}
	if assessment.RiskLevel.Equal(valueobject.RiskLevelVeryHigh) {
		events = append(events, event.HighRiskLoanDetected{
			DetectedAt:   now,
			AssessmentID: assessment.ID,
			Signals:      names,
			RiskScore:    assessment.RiskScore,
		})
	}
	publishBestEffort(ctx, uc.publisher, uc.logger, events...)

	return dto.LoanRiskResponse{
		AssessmentID:   assessment.ID.String(),
		RiskScore:      assessment.RiskScore,
		RiskLevel:      level,
		Recommendation: assessment.Recommendation(),
		Signals:        signals,
		Factors:        factors,
		Timestamp:      now,
	}, nil
}
