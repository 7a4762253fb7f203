package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/infrastructure/messaging"
	"github.com/bibbank/agriscore/internal/infrastructure/metrics"
	"github.com/bibbank/agriscore/internal/infrastructure/ml"
)

func ptr[T any](v T) *T { return &v }

func startServer(t *testing.T) (*ScoringServiceClient, *grpclib.ClientConn) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider())
	require.NoError(t, err)

	engine := usecase.NewEngine(usecase.EngineDeps{
		Store:        ml.NewModelStore(),
		Trainer:      ml.NewTrainer(ml.TrainerConfig{Seed: 42, Samples: 150, Trees: 5, Workers: 2}, logger),
		Publisher:    messaging.NewLogEventPublisher(logger),
		Metrics:      recorder,
		Perturbation: service.FixedPerturbation(1.0),
		Logger:       logger,
	})

	srv, err := NewServer(NewScoringHandler(engine, logger), ServerConfig{ServiceName: "agriscored", Reflection: true}, logger)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeListener(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewScoringServiceClient(conn), conn
}

func TestScoringService_RoundTrip(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	health, err := client.Health(ctx, &HealthRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)
	assert.False(t, health.ModelTrained)

	credit, err := client.CreditScore(ctx, &CreditScoreRequest{YieldHistory: ptr(900.0), CropType: ptr("corn")})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, credit.CreditScore, 300.0)
	assert.LessOrEqual(t, credit.CreditScore, 850.0)
	assert.Equal(t, "corn", credit.Factors.CropType)

	risk, err := client.LoanRisk(ctx, &LoanRiskRequest{BorrowerCreditScore: ptr(820.0), WeatherForecast: ptr(0.9), MarketPrice: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, 0, risk.RiskScore)
	assert.Equal(t, "Low", risk.RiskLevel)
	assert.Equal(t, "Approve loan with standard terms", risk.Recommendation)

	yield, err := client.YieldPrediction(ctx, &YieldPredictionRequest{CropType: ptr("rice"), LandArea: ptr(10.0), SoilQuality: ptr(80.0), WeatherData: ptr(0.9), Irrigation: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 38.88, yield.PredictedYield)

	retrained, err := client.RetrainModel(ctx, &RetrainModelRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, credit.ModelID, retrained.ModelID)

	health, err = client.Health(ctx, &HealthRequest{})
	require.NoError(t, err)
	assert.True(t, health.ModelTrained)
	assert.Equal(t, retrained.ModelID, health.ModelID)
}

func TestScoringService_HealthCheck(t *testing.T) {
	_, conn := startServer(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestScoringHandler_ToStatus(t *testing.T) {
	h := NewScoringHandler(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		err  error
		want codes.Code
	}{
		{err: fmt.Errorf("decode: %w", model.ErrInvalidInput), want: codes.InvalidArgument},
		{err: context.Canceled, want: codes.Canceled},
		{err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{err: io.ErrUnexpectedEOF, want: codes.Internal},
	}
	for _, tt := range tests {
		got := h.toStatus(context.Background(), "op failed", tt.err)
		assert.Equal(t, tt.want, status.Code(got), tt.err.Error())
	}
}

func TestJSONCodec_EmptyPayload(t *testing.T) {
	var req CreditScoreRequest
	require.NoError(t, jsonCodec{}.Unmarshal(nil, &req))
	assert.Nil(t, req.YieldHistory)
}

func TestScoringService_MalformedPayloadIsInvalidArgument(t *testing.T) {
	_, conn := startServer(t)

	tests := map[string]string{
		"CreditScore":     `{"land_area":"ten"}`,
		"LoanRisk":        `{"duration":[1]}`,
		"YieldPrediction": `{"irrigation":"yes"}`,
	}
	for method, payload := range tests {
		t.Run(method, func(t *testing.T) {
			var out map[string]any
			err := conn.Invoke(context.Background(), "/"+ServiceName+"/"+method,
				json.RawMessage(payload), &out, grpclib.CallContentSubtype(jsonCodec{}.Name()))
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, status.Convert(err).Message(), model.ErrInvalidInput.Error())
		})
	}
}
