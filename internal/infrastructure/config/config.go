package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// KafkaConfig holds event publishing settings. No brokers disables Kafka.
type KafkaConfig struct {
	Brokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic         string   `env:"KAFKA_TOPIC" envDefault:"agriscore.events"`
	TLS           bool     `env:"KAFKA_TLS" envDefault:"false"`
	SASLMechanism string   `env:"KAFKA_SASL_MECHANISM"` // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string   `env:"KAFKA_SASL_USERNAME"`
	SASLPassword  string   `env:"KAFKA_SASL_PASSWORD"`
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// ModelConfig holds credit model training settings.
type ModelConfig struct {
	Seed           int64 `env:"MODEL_SEED" envDefault:"42"`
	Samples        int   `env:"MODEL_SAMPLES" envDefault:"1000"`
	Trees          int   `env:"MODEL_TREES" envDefault:"100"`
	Workers        int   `env:"MODEL_WORKERS" envDefault:"0"`
	TrainOnStartup bool  `env:"TRAIN_ON_STARTUP" envDefault:"true"`
}

// GRPCConfig holds gRPC server settings.
type GRPCConfig struct {
	Port       int    `env:"GRPC_PORT" envDefault:"8090"`
	TLSCert    string `env:"GRPC_TLS_CERT_FILE"`
	TLSKey     string `env:"GRPC_TLS_KEY_FILE"`
	Reflection bool   `env:"GRPC_REFLECTION" envDefault:"false"`
}

// Config is the full service configuration, read from the environment.
type Config struct {
	HTTPPort          int    `env:"PORT" envDefault:"5001"`
	Environment       string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string `env:"LOG_FORMAT" envDefault:"json"`
	OTLPEndpoint      string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	ServiceName       string `env:"SERVICE_NAME" envDefault:"agriscored"`

	// RetrainPerMinute caps POST /train-model; zero means unlimited.
	RetrainPerMinute float64 `env:"RETRAIN_RATE_PER_MINUTE" envDefault:"0"`

	GRPC  GRPCConfig
	Model ModelConfig
	Kafka KafkaConfig
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.HTTPPort))
	}
	if c.GRPC.Port <= 0 || c.GRPC.Port > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT out of range: %d", c.GRPC.Port))
	}
	if c.RetrainPerMinute < 0 {
		errs = append(errs, fmt.Errorf("RETRAIN_RATE_PER_MINUTE must not be negative: %v", c.RetrainPerMinute))
	}
	if c.Model.Samples <= 0 {
		errs = append(errs, fmt.Errorf("MODEL_SAMPLES must be positive: %d", c.Model.Samples))
	}
	if c.Model.Trees <= 0 {
		errs = append(errs, fmt.Errorf("MODEL_TREES must be positive: %d", c.Model.Trees))
	}
	if (c.GRPC.TLSCert == "") != (c.GRPC.TLSKey == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	switch strings.ToUpper(c.Kafka.SASLMechanism) {
	case "", "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
	default:
		errs = append(errs, fmt.Errorf("unsupported KAFKA_SASL_MECHANISM %q", c.Kafka.SASLMechanism))
	}
	return errors.Join(errs...)
}

// GRPCAddr returns the gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPC.Port)
}

// HTTPAddr returns the HTTP listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
