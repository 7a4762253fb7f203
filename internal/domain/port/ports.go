package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/model"
)

// CreditModel is a fitted, read-only credit score regressor.
type CreditModel interface {
	// ID identifies the snapshot.
	ID() uuid.UUID

	// TrainedAt reports when the snapshot was fitted.
	TrainedAt() time.Time

	// Predict returns the raw (unclamped) regression output for a record.
	Predict(record model.FeatureRecord) float64
}

// ModelStore holds the single shared credit model snapshot. Implementations
// must swap snapshots atomically so readers never see a partial model.
type ModelStore interface {
	// Get returns the current snapshot, or model.ErrModelNotTrained.
	Get() (CreditModel, error)

	// Replace installs a fully built snapshot.
	Replace(m CreditModel)

	// Trained reports whether a snapshot is installed.
	Trained() bool
}

// ModelTrainer builds a new credit model snapshot from synthetic data.
type ModelTrainer interface {
	Train(ctx context.Context) (CreditModel, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...event.Event) error
}

// Metrics records operational measurements for the scoring operations.
type Metrics interface {
	RecordOperation(ctx context.Context, operation string, err error)
	RecordTraining(ctx context.Context, duration time.Duration)
	RecordCreditScore(ctx context.Context, score float64)
	RecordRiskScore(ctx context.Context, score int, level string)
}
