package usecase

import (
	"context"
	"log/slog"

	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
)

// Engine groups the scoring use cases behind one value so the transports and
// the CLI share a single wiring.
type Engine struct {
	Models       *ModelManager
	Health       *CheckHealthUseCase
	ScoreCredit  *ScoreCreditUseCase
	AssessRisk   *AssessLoanRiskUseCase
	PredictYield *PredictYieldUseCase
	Retrain      *RetrainModelUseCase

	events *EventDispatcher
}

// EngineDeps are the ports the engine is built from.
type EngineDeps struct {
	Store        port.ModelStore
	Trainer      port.ModelTrainer
	Publisher    port.EventPublisher
	Metrics      port.Metrics
	Perturbation service.Perturbation
	Logger       *slog.Logger
}

// NewEngine wires every use case from deps.
func NewEngine(deps EngineDeps) *Engine {
	events := NewEventDispatcher(deps.Publisher, deps.Logger)
	models := NewModelManager(deps.Store, deps.Trainer, events, deps.Metrics, deps.Logger)

	return &Engine{
		Models: models,
		Health: NewCheckHealthUseCase(models),
		ScoreCredit: NewScoreCreditUseCase(
			models,
			service.NewCreditScorer(service.NewFeatureEncoder()),
			events, deps.Metrics, deps.Logger,
		),
		AssessRisk: NewAssessLoanRiskUseCase(
			service.NewLoanRiskScorer(),
			events, deps.Metrics, deps.Logger,
		),
		PredictYield: NewPredictYieldUseCase(service.NewYieldEstimator(deps.Perturbation), deps.Metrics),
		Retrain:      NewRetrainModelUseCase(models, deps.Metrics),
		events:       events,
	}
}

// Close flushes pending domain events to the publisher. The publisher itself
// is left open for its owner to close.
func (e *Engine) Close(ctx context.Context) error {
	return e.events.Close(ctx)
}
