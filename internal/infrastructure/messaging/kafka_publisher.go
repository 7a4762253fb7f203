package messaging

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
	"github.com/bibbank/agriscore/internal/infrastructure/config"
)

// Compile-time assertion that KafkaEventPublisher implements port.EventPublisher.
var _ port.EventPublisher = (*KafkaEventPublisher)(nil)

const headerEventType = "event_type"

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaEventPublisher implements port.EventPublisher by writing JSON encoded
// events to a single Kafka topic, keyed by aggregate ID.
type KafkaEventPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher for cfg.Brokers and cfg.Topic.
func NewKafkaEventPublisher(cfg config.KafkaConfig, logger *slog.Logger) (*KafkaEventPublisher, error) {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
	}

	if cfg.TLS || cfg.SASLMechanism != "" {
		transport := &kafkago.Transport{}
		if cfg.TLS {
			transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		if cfg.SASLMechanism != "" {
			mech, err := saslMechanism(cfg)
			if err != nil {
				return nil, err
			}
			transport.SASL = mech
		}
		w.Transport = transport
	}

	return newKafkaEventPublisher(w, cfg.Topic, logger), nil
}

func newKafkaEventPublisher(w messageWriter, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: w, topic: topic, logger: logger}
}

// Publish serialises and sends domain events in one batch.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: []kafkago.Header{
				{Key: headerEventType, Value: []byte(evt.EventType())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}

	p.logger.Debug("published domain events", "topic", p.topic, "count", len(msgs))
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaEventPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

func saslMechanism(cfg config.KafkaConfig) (sasl.Mechanism, error) {
	switch strings.ToUpper(cfg.SASLMechanism) {
	case "PLAIN":
		return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
	default:
		return nil, fmt.Errorf("unsupported sasl mechanism %q", cfg.SASLMechanism)
	}
}
