package usecase

import (
	"context"
	"time"

	"github.com/bibbank/agriscore/internal/application/dto"
)

// CheckHealthUseCase reports liveness and whether a model is installed.
type CheckHealthUseCase struct {
	models *ModelManager
}

// NewCheckHealthUseCase wires dependencies.
func NewCheckHealthUseCase(models *ModelManager) *CheckHealthUseCase {
	return &CheckHealthUseCase{models: models}
}

// Execute never trains and never fails.
func (uc *CheckHealthUseCase) Execute(_ context.Context) dto.HealthResponse {
	resp := dto.HealthResponse{
		Status:    "OK",
		Message:   "AI Service is running",
		Timestamp: time.Now().UTC(),
	}
	if cm, err := uc.models.Snapshot(); err == nil {
		resp.ModelTrained = true
		resp.ModelID = cm.ID().String()
	}
	return resp
}
