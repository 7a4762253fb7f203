package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeModelRetrained is emitted when a new credit model snapshot is installed.
	EventTypeModelRetrained = "agriscore.model.retrained"

	// EventTypeCreditScored is emitted after a borrower profile is scored.
	EventTypeCreditScored = "agriscore.credit.scored"

	// EventTypeLoanRiskAssessed is emitted after every loan risk assessment.
	EventTypeLoanRiskAssessed = "agriscore.loan_risk.assessed"

	// EventTypeHighRiskLoanDetected is emitted when an assessment lands in the
	// Very High tier.
	EventTypeHighRiskLoanDetected = "agriscore.loan_risk.high_risk_detected"
)

// Event is implemented by every domain event published by the service.
type Event interface {
	EventType() string
	AggregateID() uuid.UUID
}

// ModelRetrained is published when a credit model snapshot replaces the
// previous one.
type ModelRetrained struct {
	TrainedAt  time.Time `json:"trained_at"`
	ModelID    uuid.UUID `json:"model_id"`
	Seed       int64     `json:"seed"`
	Samples    int       `json:"samples"`
	Trees      int       `json:"trees"`
	DurationMS int64     `json:"duration_ms"`
}

// EventType returns the event type identifier.
func (e ModelRetrained) EventType() string {
	return EventTypeModelRetrained
}

// AggregateID returns the model ID as the aggregate identifier.
func (e ModelRetrained) AggregateID() uuid.UUID {
	return e.ModelID
}

// CreditScored is published after a credit score is computed.
type CreditScored struct {
	ScoredAt   time.Time `json:"scored_at"`
	ScoreID    uuid.UUID `json:"score_id"`
	ModelID    uuid.UUID `json:"model_id"`
	CropType   string    `json:"crop_type"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
}

// EventType returns the event type identifier.
func (e CreditScored) EventType() string {
	return EventTypeCreditScored
}

// AggregateID returns the score ID as the aggregate identifier.
func (e CreditScored) AggregateID() uuid.UUID {
	return e.ScoreID
}

// LoanRiskAssessed is published after a loan risk assessment.
type LoanRiskAssessed struct {
	AssessedAt   time.Time `json:"assessed_at"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	RiskLevel    string    `json:"risk_level"`
	CropType     string    `json:"crop_type"`
	Season       string    `json:"season"`
	Signals      []string  `json:"signals"`
	RiskScore    int       `json:"risk_score"`
}

// EventType returns the event type identifier.
func (e LoanRiskAssessed) EventType() string {
	return EventTypeLoanRiskAssessed
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e LoanRiskAssessed) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// HighRiskLoanDetected is published alongside LoanRiskAssessed when the
// assessment recommends rejecting the application.
type HighRiskLoanDetected struct {
	DetectedAt   time.Time `json:"detected_at"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	Signals      []string  `json:"signals"`
	RiskScore    int       `json:"risk_score"`
}

// EventType returns the event type identifier.
func (e HighRiskLoanDetected) EventType() string {
	return EventTypeHighRiskLoanDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskLoanDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}
