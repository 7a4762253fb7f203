package ml

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/agriscore/internal/domain/port"
)

// Compile-time assertion that Trainer implements port.ModelTrainer.
var _ port.ModelTrainer = (*Trainer)(nil)

// TrainerConfig holds the synthetic training parameters.
type TrainerConfig struct {
	Seed    int64
	Samples int
	Trees   int
	Workers int
}

// DefaultTrainerConfig returns the standard training parameters.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Seed:    DefaultSeed,
		Samples: DefaultSamples,
		Trees:   DefaultTrees,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Trainer builds credit model snapshots from freshly generated synthetic data.
type Trainer struct {
	logger *slog.Logger
	cfg    TrainerConfig
}

// NewTrainer creates a Trainer.
func NewTrainer(cfg TrainerConfig, logger *slog.Logger) *Trainer {
	return &Trainer{cfg: cfg, logger: logger}
}

// Config returns the trainer parameters.
func (t *Trainer) Config() TrainerConfig {
	return t.cfg
}

// Train generates the synthetic dataset and fits a new snapshot. Repeated
// calls with the same config produce identical scalers and predictions.
func (t *Trainer) Train(ctx context.Context) (port.CreditModel, error) {
	ctx, span := otel.Tracer("agriscore/ml").Start(ctx, "Trainer.Train")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("model.seed", t.cfg.Seed),
		attribute.Int("model.samples", t.cfg.Samples),
		attribute.Int("model.trees", t.cfg.Trees),
	)

	if t.cfg.Samples <= 0 {
		err := fmt.Errorf("train: sample count must be positive, got %d", t.cfg.Samples)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	start := time.Now()
	ds := GenerateDataset(t.cfg.Seed, t.cfg.Samples)

	m, err := Fit(ctx, ds, ForestConfig{
		Trees:   t.cfg.Trees,
		Seed:    t.cfg.Seed,
		Workers: t.cfg.Workers,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("train: %w", err)
	}

	t.logger.Info("credit model trained",
		slog.String("model_id", m.ID().String()),
		slog.Int64("seed", t.cfg.Seed),
		slog.Int("samples", t.cfg.Samples),
		slog.Int("trees", m.Trees()),
		slog.Duration("duration", time.Since(start)),
	)
	return m, nil
}

// TrainingParams reports the seed, sample count and tree count used by Train.
func (t *Trainer) TrainingParams() (int64, int, int) {
	return t.cfg.Seed, t.cfg.Samples, t.cfg.Trees
}
