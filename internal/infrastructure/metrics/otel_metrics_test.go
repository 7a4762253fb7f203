package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bibbank/agriscore/internal/infrastructure/metrics"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestRecorder_RecordsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := metrics.NewRecorder(provider)
	require.NoError(t, err)

	ctx := context.Background()
	r.RecordOperation(ctx, "credit_score", nil)
	r.RecordOperation(ctx, "credit_score", nil)
	r.RecordOperation(ctx, "retrain", errors.New("boom"))
	r.RecordTraining(ctx, 1500*time.Millisecond)
	r.RecordCreditScore(ctx, 612.5)
	r.RecordRiskScore(ctx, 100, "Very High")

	data := collect(t, reader)

	ops, ok := data["agriscore_operations"].(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range ops.DataPoints {
		op, _ := dp.Attributes.Value(attribute.Key("operation"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[op.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"credit_score/success": 2, "retrain/error": 1}, counts)

	training, ok := data["agriscore_model_training_duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, training.DataPoints, 1)
	assert.InDelta(t, 1.5, training.DataPoints[0].Sum, 1e-9)

	credit, ok := data["agriscore_credit_score"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Equal(t, uint64(1), credit.DataPoints[0].Count)

	risk, ok := data["agriscore_loan_risk_score"].(metricdata.Histogram[int64])
	require.True(t, ok)
	level, _ := risk.DataPoints[0].Attributes.Value(attribute.Key("risk_level"))
	assert.Equal(t, "Very High", level.AsString())
}

func TestRecorder_NoopProvider(t *testing.T) {
	r, err := metrics.NewRecorder(noop.NewMeterProvider())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		r.RecordOperation(context.Background(), "health", nil)
		r.RecordTraining(context.Background(), time.Second)
	})
}
