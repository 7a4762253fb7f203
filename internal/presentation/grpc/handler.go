package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/model"
)

// Compile-time assertion that ScoringHandler implements ScoringServiceServer.
var _ ScoringServiceServer = (*ScoringHandler)(nil)

// ScoringHandler is the gRPC handler for the scoring operations.
type ScoringHandler struct {
	UnimplementedScoringServiceServer
	engine *usecase.Engine
	logger *slog.Logger
}

// NewScoringHandler creates a new handler backed by engine.
func NewScoringHandler(engine *usecase.Engine, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{engine: engine, logger: logger}
}

// Health reports service and model state.
func (h *ScoringHandler) Health(ctx context.Context, _ *HealthRequest) (*HealthResponse, error) {
	resp := h.engine.Health.Execute(ctx)
	return &resp, nil
}

// CreditScore scores a borrower profile.
func (h *ScoringHandler) CreditScore(ctx context.Context, req *CreditScoreRequest) (*CreditScoreResponse, error) {
	resp, err := h.engine.ScoreCredit.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "credit score calculation failed", err)
	}
	return &resp, nil
}

// LoanRisk assesses a loan application.
func (h *ScoringHandler) LoanRisk(ctx context.Context, req *LoanRiskRequest) (*LoanRiskResponse, error) {
	resp, err := h.engine.AssessRisk.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "loan risk calculation failed", err)
	}
	return &resp, nil
}

// YieldPrediction estimates a crop yield.
func (h *ScoringHandler) YieldPrediction(ctx context.Context, req *YieldPredictionRequest) (*YieldPredictionResponse, error) {
	resp, err := h.engine.PredictYield.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "yield prediction failed", err)
	}
	return &resp, nil
}

// RetrainModel replaces the credit model.
func (h *ScoringHandler) RetrainModel(ctx context.Context, _ *RetrainModelRequest) (*RetrainModelResponse, error) {
	resp, err := h.engine.Retrain.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "model training failed", err)
	}
	return &resp, nil
}

func (h *ScoringHandler) toStatus(ctx context.Context, label string, err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	h.logger.ErrorContext(ctx, label, "code", code.String(), "error", err)
	return status.Errorf(code, "%s: %v", label, err)
}
