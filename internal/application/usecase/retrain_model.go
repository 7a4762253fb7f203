package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/domain/port"
)

// RetrainModelUseCase forces a new credit model snapshot.
type RetrainModelUseCase struct {
	models  *ModelManager
	metrics port.Metrics
}

// NewRetrainModelUseCase wires dependencies.
func NewRetrainModelUseCase(models *ModelManager, metrics port.Metrics) *RetrainModelUseCase {
	return &RetrainModelUseCase{models: models, metrics: metrics}
}

// Execute trains and installs a new snapshot.
func (uc *RetrainModelUseCase) Execute(ctx context.Context) (dto.RetrainResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "RetrainModel")
	defer span.End()

	cm, err := uc.models.Retrain(ctx)
	uc.metrics.RecordOperation(ctx, OperationRetrain, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.RetrainResponse{}, fmt.Errorf("retrain model: %w", err)
	}

	return dto.RetrainResponse{
		Status:    "OK",
		Message:   "Model retrained successfully",
		ModelID:   cm.ID().String(),
		Timestamp: time.Now().UTC(),
	}, nil
}
