package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
)

type harness struct {
	engine    *usecase.Engine
	store     *mockStore
	trainer   *mockTrainer
	publisher *mockPublisher
	metrics   *mockMetrics
}

func newHarness(modelOut float64) *harness {
	h := &harness{
		store:     &mockStore{},
		trainer:   &mockTrainer{out: modelOut},
		publisher: &mockPublisher{},
		metrics:   newMockMetrics(),
	}
	h.engine = usecase.NewEngine(usecase.EngineDeps{
		Store:        h.store,
		Trainer:      h.trainer,
		Publisher:    h.publisher,
		Metrics:      h.metrics,
		Perturbation: service.FixedPerturbation(1.0),
		Logger:       discardLogger(),
	})
	return h
}

// flushedEvents drains the engine's event queue and returns what reached the
// publisher.
func (h *harness) flushedEvents(t *testing.T) []event.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.engine.Close(ctx))
	return h.publisher.events()
}

func TestEngine_SlowPublisherDoesNotDelayRequests(t *testing.T) {
	h := newHarness(640)
	release := make(chan struct{})
	h.publisher.publishFunc = func(ctx context.Context, _ ...event.Event) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.ScoreCredit.Execute(ctx, dto.CreditScoreRequest{})
	require.NoError(t, err)
	assert.Equal(t, 640.0, resp.CreditScore)

	_, err = h.engine.AssessRisk.Execute(ctx, dto.LoanRiskRequest{})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestScoreCredit_Execute(t *testing.T) {
	t.Run("trains on first use and rounds the score", func(t *testing.T) {
		h := newHarness(612.3456)

		resp, err := h.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{
			YieldHistory: ptr(1200.0),
			SalesHistory: ptr(60000.0),
			LandArea:     ptr(10.0),
			CropType:     ptr("Rice"),
		})
		require.NoError(t, err)

		assert.Equal(t, 612.35, resp.CreditScore)
		assert.Equal(t, 0.9, resp.Confidence)
		assert.Equal(t, "Rice", resp.Factors.CropType)
		assert.Equal(t, 0.5, resp.Factors.WeatherData)
		assert.Equal(t, 50.0, resp.Factors.SoilQuality)
		assert.NotEmpty(t, resp.ModelID)
		assert.False(t, resp.Timestamp.IsZero())
		assert.Equal(t, int32(1), h.trainer.calls.Load())
		assert.Equal(t, 1, h.metrics.operations[usecase.OperationCreditScore])
	})

	t.Run("clamps out-of-range model output", func(t *testing.T) {
		low := newHarness(-50)
		resp, err := low.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{})
		require.NoError(t, err)
		assert.Equal(t, 300.0, resp.CreditScore)

		high := newHarness(9000)
		resp, err = high.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{})
		require.NoError(t, err)
		assert.Equal(t, 850.0, resp.CreditScore)
	})

	t.Run("default profile confidence counts soil quality only", func(t *testing.T) {
		h := newHarness(500)
		resp, err := h.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{})
		require.NoError(t, err)
		assert.Equal(t, 0.6, resp.Confidence)
	})

	t.Run("publishes CreditScored after ModelRetrained", func(t *testing.T) {
		h := newHarness(700)
		resp, err := h.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{CropType: ptr("quinoa")})
		require.NoError(t, err)

		evts := h.flushedEvents(t)
		require.Len(t, evts, 2)
		assert.Equal(t, event.EventTypeModelRetrained, evts[0].EventType())
		scored, ok := evts[1].(event.CreditScored)
		require.True(t, ok)
		assert.Equal(t, resp.ModelID, scored.ModelID.String())
		assert.Equal(t, "unknown", scored.CropType)
		assert.Equal(t, 700.0, scored.Score)
	})

	t.Run("training failure is returned", func(t *testing.T) {
		h := newHarness(0)
		h.trainer.trainFunc = func(context.Context) (port.CreditModel, error) { return nil, errTrainingFailed }

		_, err := h.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{})
		assert.ErrorIs(t, err, errTrainingFailed)
		assert.Equal(t, 1, h.metrics.failures[usecase.OperationCreditScore])
	})

	t.Run("uses installed model without training", func(t *testing.T) {
		h := newHarness(0)
		installed := &stubModel{id: uuid.New(), out: 444}
		h.store.Replace(installed)

		resp, err := h.engine.ScoreCredit.Execute(context.Background(), dto.CreditScoreRequest{})
		require.NoError(t, err)
		assert.Equal(t, 444.0, resp.CreditScore)
		assert.Equal(t, installed.id.String(), resp.ModelID)
		assert.Zero(t, h.trainer.calls.Load())
	})
}

func TestAssessLoanRisk_Execute(t *testing.T) {
	t.Run("worst case is rejected and flagged", func(t *testing.T) {
		h := newHarness(0)
		resp, err := h.engine.AssessRisk.Execute(context.Background(), dto.LoanRiskRequest{
			LoanAmount:          ptr(15000.0),
			Duration:            ptr(400.0),
			BorrowerCreditScore: ptr(450.0),
			WeatherForecast:     ptr(0.2),
			MarketPrice:         ptr(0.4),
		})
		require.NoError(t, err)

		assert.Equal(t, 100, resp.RiskScore)
		assert.Equal(t, "Very High", resp.RiskLevel)
		assert.Equal(t, "Reject loan application", resp.Recommendation)
		assert.Len(t, resp.Signals, 5)
		assert.Equal(t, 15000.0, resp.Factors.LoanAmountValue)

		evts := h.flushedEvents(t)
		require.Len(t, evts, 2)
		assert.Equal(t, event.EventTypeLoanRiskAssessed, evts[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskLoanDetected, evts[1].EventType())
		assert.Equal(t, []string{"Very High"}, h.metrics.riskLevels)
	})

	t.Run("defaults", func(t *testing.T) {
		h := newHarness(0)

		resp, err := h.engine.AssessRisk.Execute(context.Background(), dto.LoanRiskRequest{})
		require.NoError(t, err)

		// credit 300 -> 40, weather 0.5 -> 10, market 0 -> 15
		assert.Equal(t, 65, resp.RiskScore)
		assert.Equal(t, "High", resp.RiskLevel)
		assert.Equal(t, "Approve loan with collateral requirement", resp.Recommendation)
		assert.Equal(t, "unknown", resp.Factors.Season)

		evts := h.flushedEvents(t)
		require.Len(t, evts, 1)
		assessed := evts[0].(event.LoanRiskAssessed)
		assert.Equal(t, resp.AssessmentID, assessed.AssessmentID.String())
		assert.Equal(t, []string{"borrower_credit_score", "weather_forecast", "market_price"}, assessed.Signals)
	})

	t.Run("low risk has no signals", func(t *testing.T) {
		h := newHarness(0)

		resp, err := h.engine.AssessRisk.Execute(context.Background(), dto.LoanRiskRequest{
			BorrowerCreditScore: ptr(820.0),
			WeatherForecast:     ptr(0.9),
			MarketPrice:         ptr(1.0),
		})
		require.NoError(t, err)

		assert.Equal(t, 0, resp.RiskScore)
		assert.Equal(t, "Low", resp.RiskLevel)
		assert.Empty(t, resp.Signals)
		assert.NotNil(t, resp.Signals)
	})
}

func TestPredictYield_Execute(t *testing.T) {
	h := newHarness(0)

	resp, err := h.engine.PredictYield.Execute(context.Background(), dto.YieldPredictionRequest{
		CropType:    ptr("rice"),
		LandArea:    ptr(10.0),
		SoilQuality: ptr(80.0),
		WeatherData: ptr(0.9),
		Irrigation:  ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, 38.88, resp.PredictedYield)
	assert.Equal(t, 0.95, resp.Confidence)
	assert.True(t, resp.Factors.Irrigation)
	assert.False(t, resp.Factors.Fertilizer)
	assert.Equal(t, 1, h.metrics.operations[usecase.OperationYieldPrediction])
}

func TestPredictYield_Defaults(t *testing.T) {
	h := newHarness(0)

	resp, err := h.engine.PredictYield.Execute(context.Background(), dto.YieldPredictionRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.PredictedYield)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Equal(t, "unknown", resp.Factors.CropType)
}

func TestRetrainModel_Execute(t *testing.T) {
	h := newHarness(600)

	first, err := h.engine.Retrain.Execute(context.Background())
	require.NoError(t, err)
	second, err := h.engine.Retrain.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "OK", second.Status)
	assert.Equal(t, "Model retrained successfully", second.Message)
	assert.NotEqual(t, first.ModelID, second.ModelID)
	assert.Equal(t, int32(2), h.trainer.calls.Load())
	assert.Equal(t, 2, h.metrics.operations[usecase.OperationRetrain])
}

func TestRetrainModel_Failure(t *testing.T) {
	h := newHarness(600)
	h.trainer.trainFunc = func(context.Context) (port.CreditModel, error) { return nil, errTrainingFailed }

	_, err := h.engine.Retrain.Execute(context.Background())
	assert.ErrorIs(t, err, errTrainingFailed)
	assert.Equal(t, 1, h.metrics.failures[usecase.OperationRetrain])
}

func TestCheckHealth_Execute(t *testing.T) {
	h := newHarness(600)

	before := h.engine.Health.Execute(context.Background())
	assert.Equal(t, "OK", before.Status)
	assert.Equal(t, "AI Service is running", before.Message)
	assert.False(t, before.ModelTrained)
	assert.Empty(t, before.ModelID)
	assert.Zero(t, h.trainer.calls.Load(), "health never trains")

	retrained, err := h.engine.Retrain.Execute(context.Background())
	require.NoError(t, err)

	after := h.engine.Health.Execute(context.Background())
	assert.True(t, after.ModelTrained)
	assert.Equal(t, retrained.ModelID, after.ModelID)
}
