package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/agriscore/internal/domain/event"
	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/port"
)

// --- Mock implementations ---

type stubModel struct {
	id  uuid.UUID
	out float64
}

func (m *stubModel) ID() uuid.UUID                         { return m.id }
func (m *stubModel) TrainedAt() time.Time                  { return time.Unix(0, 0).UTC() }
func (m *stubModel) Predict(_ model.FeatureRecord) float64 { return m.out }

type mockStore struct {
	mu      sync.Mutex
	current port.CreditModel
}

func (s *mockStore) Get() (port.CreditModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, model.ErrModelNotTrained
	}
	return s.current, nil
}

func (s *mockStore) Replace(m port.CreditModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = m
}

func (s *mockStore) Trained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

type mockTrainer struct {
	calls     atomic.Int32
	out       float64
	delay     time.Duration
	trainFunc func(ctx context.Context) (port.CreditModel, error)
}

func (t *mockTrainer) Train(ctx context.Context) (port.CreditModel, error) {
	t.calls.Add(1)
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
	if t.trainFunc != nil {
		return t.trainFunc(ctx)
	}
	return &stubModel{id: uuid.New(), out: t.out}, nil
}

func (t *mockTrainer) TrainingParams() (int64, int, int) {
	return 42, 1000, 100
}

type mockPublisher struct {
	mu              sync.Mutex
	publishFunc     func(ctx context.Context, events ...event.Event) error
	publishedEvents []event.Event
}

func (p *mockPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if p.publishFunc != nil {
		return p.publishFunc(ctx, events...)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishedEvents = append(p.publishedEvents, events...)
	return nil
}

func (p *mockPublisher) events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.publishedEvents...)
}

type mockMetrics struct {
	mu           sync.Mutex
	operations   map[string]int
	failures     map[string]int
	trainings    int
	creditScores []float64
	riskLevels   []string
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{operations: map[string]int{}, failures: map[string]int{}}
}

func (m *mockMetrics) RecordOperation(_ context.Context, op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[op]++
	if err != nil {
		m.failures[op]++
	}
}

func (m *mockMetrics) RecordTraining(_ context.Context, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainings++
}

func (m *mockMetrics) RecordCreditScore(_ context.Context, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creditScores = append(m.creditScores, score)
}

func (m *mockMetrics) RecordRiskScore(_ context.Context, _ int, level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riskLevels = append(m.riskLevels, level)
}

var errTrainingFailed = errors.New("training failed")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }
