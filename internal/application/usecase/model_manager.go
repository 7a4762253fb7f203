package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/port"
)

const trainKey = "credit-model"

// TrainingInfo describes the parameters a trainer runs with. Trainers that
// implement it get their parameters recorded on ModelRetrained events.
type TrainingInfo interface {
	TrainingParams() (seed int64, samples, trees int)
}

// ModelManager owns the lifecycle of the shared credit model: lazy training
// on first use and explicit retraining. Concurrent training requests are
// coalesced into a single run.
type ModelManager struct {
	store     port.ModelStore
	trainer   port.ModelTrainer
	publisher port.EventPublisher
	metrics   port.Metrics
	logger    *slog.Logger
	group     singleflight.Group
}

// NewModelManager wires dependencies.
func NewModelManager(
	store port.ModelStore,
	trainer port.ModelTrainer,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *ModelManager {
	return &ModelManager{
		store:     store,
		trainer:   trainer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Current returns the installed snapshot, training one first if the store is
// empty.
func (m *ModelManager) Current(ctx context.Context) (port.CreditModel, error) {
	cm, err := m.store.Get()
	if err == nil {
		return cm, nil
	}
	if !errors.Is(err, model.ErrModelNotTrained) {
		return nil, fmt.Errorf("load credit model: %w", err)
	}

	m.logger.Info("credit model not trained, training on demand")
	return m.train(ctx, false)
}

// Retrain builds a new snapshot and installs it, replacing the current one.
func (m *ModelManager) Retrain(ctx context.Context) (port.CreditModel, error) {
	return m.train(ctx, true)
}

// Trained reports whether a snapshot is installed.
func (m *ModelManager) Trained() bool {
	return m.store.Trained()
}

// Snapshot returns the installed snapshot without training.
func (m *ModelManager) Snapshot() (port.CreditModel, error) {
	return m.store.Get()
}

// train runs at most one training at a time. The run is detached from the
// caller, who stops waiting when ctx ends while training continues and
// installs its snapshot.
func (m *ModelManager) train(ctx context.Context, force bool) (port.CreditModel, error) {
	trainCtx := context.WithoutCancel(ctx)

	ch := m.group.DoChan(trainKey, func() (any, error) {
		if !force {
			if cm, err := m.store.Get(); err == nil {
				return cm, nil
			}
		}

		start := time.Now()
		cm, err := m.trainer.Train(trainCtx)
		if err != nil {
			return nil, fmt.Errorf("train credit model: %w", err)
		}
		elapsed := time.Since(start)

		m.store.Replace(cm)
		m.metrics.RecordTraining(trainCtx, elapsed)

		evt := event.ModelRetrained{
			TrainedAt:  cm.TrainedAt(),
			ModelID:    cm.ID(),
			DurationMS: elapsed.Milliseconds(),
		}
		if info, ok := m.trainer.(TrainingInfo); ok {
			evt.Seed, evt.Samples, evt.Trees = info.TrainingParams()
		}
		publishBestEffort(trainCtx, m.publisher, m.logger, evt)

		m.logger.Info("credit model installed",
			slog.String("model_id", cm.ID().String()),
			slog.Duration("duration", elapsed),
		)
		return cm, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(port.CreditModel), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for credit model: %w", ctx.Err())
	}
}

// publishBestEffort sends events and logs, rather than returns, any failure.
func publishBestEffort(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, events ...event.Event) {
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish events",
			slog.Int("count", len(events)),
			slog.String("error", err.Error()),
		)
	}
}
