package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/agriscore/internal/domain/port"
)

// Compile-time assertion that Recorder implements port.Metrics.
var _ port.Metrics = (*Recorder)(nil)

const meterName = "github.com/bibbank/agriscore"

// Recorder records scoring measurements on OpenTelemetry instruments.
type Recorder struct {
	operations  metric.Int64Counter
	training    metric.Float64Histogram
	creditScore metric.Float64Histogram
	riskScore   metric.Int64Histogram
}

// NewRecorder creates the instruments on a meter from provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	operations, err := meter.Int64Counter("agriscore_operations",
		metric.WithDescription("Scoring operations by name and outcome."))
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}

	training, err := meter.Float64Histogram("agriscore_model_training_duration",
		metric.WithDescription("Credit model training time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30))
	if err != nil {
		return nil, fmt.Errorf("create training histogram: %w", err)
	}

	creditScore, err := meter.Float64Histogram("agriscore_credit_score",
		metric.WithDescription("Distribution of reported credit scores."),
		metric.WithExplicitBucketBoundaries(350, 400, 450, 500, 550, 600, 650, 700, 750, 800, 850))
	if err != nil {
		return nil, fmt.Errorf("create credit score histogram: %w", err)
	}

	riskScore, err := meter.Int64Histogram("agriscore_loan_risk_score",
		metric.WithDescription("Distribution of loan risk scores by tier."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
	if err != nil {
		return nil, fmt.Errorf("create risk score histogram: %w", err)
	}

	return &Recorder{
		operations:  operations,
		training:    training,
		creditScore: creditScore,
		riskScore:   riskScore,
	}, nil
}

// RecordOperation counts one operation with an outcome of "success" or "error".
func (r *Recorder) RecordOperation(ctx context.Context, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordTraining observes one training run.
func (r *Recorder) RecordTraining(ctx context.Context, d time.Duration) {
	r.training.Record(ctx, d.Seconds())
}

// RecordCreditScore observes one clamped credit score.
func (r *Recorder) RecordCreditScore(ctx context.Context, score float64) {
	r.creditScore.Record(ctx, score)
}

// RecordRiskScore observes one risk score under its tier.
func (r *Recorder) RecordRiskScore(ctx context.Context, score int, level string) {
	r.riskScore.Record(ctx, int64(score), metric.WithAttributes(attribute.String("risk_level", level)))
}
