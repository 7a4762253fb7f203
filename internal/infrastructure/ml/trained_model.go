package ml

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/agriscore/internal/domain/model"
)

// TrainedModel is an immutable credit model snapshot: a fitted scaler and the
// forest trained on the scaled features. It is safe for concurrent reads.
type TrainedModel struct {
	trainedAt time.Time
	forest    *Forest
	scaler    StandardScaler
	id        uuid.UUID
	seed      int64
	samples   int
}

// Fit standardises the dataset and grows a forest on it.
func Fit(ctx context.Context, ds model.Dataset, cfg ForestConfig) (*TrainedModel, error) {
	xs := ds.Matrix()

	scaler, err := FitScaler(xs)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	forest, err := FitForest(ctx, scaler.TransformAll(xs), ds.Targets(), cfg)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	return &TrainedModel{
		id:        uuid.New(),
		trainedAt: time.Now().UTC(),
		seed:      cfg.Seed,
		samples:   len(ds),
		scaler:    scaler,
		forest:    forest,
	}, nil
}

// ID identifies the snapshot.
func (m *TrainedModel) ID() uuid.UUID { return m.id }

// TrainedAt reports when the snapshot was fitted.
func (m *TrainedModel) TrainedAt() time.Time { return m.trainedAt }

// Seed returns the seed the snapshot was trained with.
func (m *TrainedModel) Seed() int64 { return m.seed }

// Samples returns the training set size.
func (m *TrainedModel) Samples() int { return m.samples }

// Trees returns the forest size.
func (m *TrainedModel) Trees() int { return m.forest.Size() }

// Scaler returns a copy of the fitted scaler parameters.
func (m *TrainedModel) Scaler() StandardScaler {
	return StandardScaler{
		Mean:  append([]float64(nil), m.scaler.Mean...),
		Scale: append([]float64(nil), m.scaler.Scale...),
	}
}

// Predict standardises the record and averages the forest output. The result
// is not clamped.
func (m *TrainedModel) Predict(record model.FeatureRecord) float64 {
	return m.forest.Predict(m.scaler.Transform(record.Vector()))
}
