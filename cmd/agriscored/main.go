package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/infrastructure/config"
	"github.com/bibbank/agriscore/internal/infrastructure/messaging"
	"github.com/bibbank/agriscore/internal/infrastructure/metrics"
	"github.com/bibbank/agriscore/internal/infrastructure/ml"
	grpcPresentation "github.com/bibbank/agriscore/internal/presentation/grpc"
	"github.com/bibbank/agriscore/internal/presentation/rest"
	"github.com/bibbank/agriscore/pkg/observability"
)

const shutdownTimeout = 15 * time.Second

type eventPublisher interface {
	port.EventPublisher
	Close() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("agriscored exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	logger.Info("starting agriscore service", "environment", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}

	publisher, err := newPublisher(cfg.Kafka, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", "error", err)
		}
	}()

	noiseSeed, err := ml.NewSeed()
	if err != nil {
		return fmt.Errorf("seed yield noise: %w", err)
	}

	engine := usecase.NewEngine(usecase.EngineDeps{
		Store: ml.NewModelStore(),
		Trainer: ml.NewTrainer(ml.TrainerConfig{
			Seed:    cfg.Model.Seed,
			Samples: cfg.Model.Samples,
			Trees:   cfg.Model.Trees,
			Workers: cfg.Model.Workers,
		}, logger),
		Publisher:    publisher,
		Metrics:      recorder,
		Perturbation: service.NewNormalPerturbation(noiseSeed, 1.0, 0.1),
		Logger:       logger,
	})
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := engine.Close(sctx); err != nil {
			logger.Warn("flush domain events", "error", err)
		}
	}()

	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewScoringHandler(engine, logger),
		grpcPresentation.ServerConfig{
			ServiceName: cfg.ServiceName,
			TLSCertFile: cfg.GRPC.TLSCert,
			TLSKeyFile:  cfg.GRPC.TLSKey,
			Reflection:  cfg.GRPC.Reflection,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("create grpc server: %w", err)
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Engine:        engine,
			Logger:        logger,
			Metrics:       metricsHandler,
			ServiceName:   cfg.ServiceName,
			AllowedOrigin: cfg.CORSAllowedOrigin,
			RetrainPerMin: cfg.RetrainPerMinute,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Model.TrainOnStartup {
		g.Go(func() error {
			if _, err := engine.Models.Current(gctx); err != nil {
				// Requests retry training lazily.
				logger.Warn("startup training failed", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr())
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(sctx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("agriscore service stopped")
	return nil
}

func newPublisher(cfg config.KafkaConfig, logger *slog.Logger) (eventPublisher, error) {
	if !cfg.Enabled() {
		logger.Info("kafka not configured, logging domain events")
		return messaging.NewLogEventPublisher(logger), nil
	}
	p, err := messaging.NewKafkaEventPublisher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	logger.Info("publishing domain events to kafka", "topic", cfg.Topic, "brokers", cfg.Brokers)
	return p, nil
}
