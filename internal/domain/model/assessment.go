package model

import (
	"github.com/google/uuid"

	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

// CreditScore is the outcome of scoring a borrower profile.
type CreditScore struct {
	Score      float64
	Confidence float64
	ModelID    uuid.UUID
}

// RiskSignal records one factor that contributed to a loan risk score.
type RiskSignal struct {
	Factor string
	Points int
}

// RiskAssessment is the outcome of the loan risk rules.
type RiskAssessment struct {
	Signals   []RiskSignal
	RiskLevel valueobject.RiskLevel
	RiskScore int
	ID        uuid.UUID
}

// Recommendation returns the lending action tied to the assessment's tier.
func (a RiskAssessment) Recommendation() string {
	return a.RiskLevel.Recommendation()
}

// YieldEstimate is the outcome of the yield formula.
type YieldEstimate struct {
	PredictedYield float64
	Confidence     float64
}
