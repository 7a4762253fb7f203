package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/model"
)

const maxBodyBytes = 1 << 20

// ScoringHandler exposes the scoring engine over HTTP.
type ScoringHandler struct {
	engine *usecase.Engine
	logger *slog.Logger
}

// NewScoringHandler creates a ScoringHandler.
func NewScoringHandler(engine *usecase.Engine, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{engine: engine, logger: logger}
}

// RegisterRoutes attaches the scoring routes to the given mux. retrain wraps
// the retrain endpoint, e.g. with a rate limiter; nil leaves it unwrapped.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux, retrain func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /credit-score", h.creditScore)
	mux.HandleFunc("POST /loan-risk", h.loanRisk)
	mux.HandleFunc("POST /yield-prediction", h.yieldPrediction)

	var train http.Handler = http.HandlerFunc(h.trainModel)
	if retrain != nil {
		train = retrain(train)
	}
	mux.Handle("POST /train-model", train)
}

func (h *ScoringHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Health.Execute(r.Context()))
}

func (h *ScoringHandler) creditScore(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditScoreRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, "Credit score calculation failed", err)
		return
	}
	resp, err := h.engine.ScoreCredit.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Credit score calculation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) loanRisk(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRiskRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, "Loan risk calculation failed", err)
		return
	}
	resp, err := h.engine.AssessRisk.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Loan risk calculation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) yieldPrediction(w http.ResponseWriter, r *http.Request) {
	var req dto.YieldPredictionRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, "Yield prediction failed", err)
		return
	}
	resp, err := h.engine.PredictYield.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Yield prediction failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) trainModel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.engine.Retrain.Execute(r.Context())
	if err != nil {
		h.writeError(w, r, "Model training failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON object into v. An empty body leaves v untouched so
// every field takes its default.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}

func (h *ScoringHandler) writeError(w http.ResponseWriter, r *http.Request, label string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
	}

	h.logger.ErrorContext(r.Context(), label,
		"path", r.URL.Path,
		"status", status,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeJSON(w, status, dto.ErrorResponse{Error: label, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode response failed","message":"result is not representable as JSON"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
