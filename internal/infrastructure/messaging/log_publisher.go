package messaging

import (
	"context"
	"log/slog"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/port"
)

// Compile-time assertion that LogEventPublisher implements port.EventPublisher.
var _ port.EventPublisher = (*LogEventPublisher)(nil)

// LogEventPublisher writes events to the log. It is used when no Kafka
// brokers are configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates a LogEventPublisher.
func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish logs every event. It never fails.
func (p *LogEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	for _, evt := range events {
		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID().String(),
		)
	}
	return nil
}

// Close is a no-op.
func (p *LogEventPublisher) Close() error { return nil }
