package service

import (
	"math"

	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/port"
)

const (
	// MinCreditScore and MaxCreditScore bound every reported credit score.
	MinCreditScore = 300.0
	MaxCreditScore = 850.0

	baseCreditConfidence = 0.5
	maxCreditConfidence  = 0.95
)

// CreditScorer scores borrower profiles against a fitted credit model.
type CreditScorer struct {
	encoder *FeatureEncoder
}

// NewCreditScorer creates a CreditScorer.
func NewCreditScorer(encoder *FeatureEncoder) *CreditScorer {
	return &CreditScorer{encoder: encoder}
}

// Score encodes the profile, queries the model and clamps the prediction to
// the 300-850 range.
func (s *CreditScorer) Score(m port.CreditModel, p CreditProfile) model.CreditScore {
	raw := m.Predict(s.encoder.Encode(p))

	return model.CreditScore{
		Score:      ClampCreditScore(raw),
		Confidence: CreditConfidence(p),
		ModelID:    m.ID(),
	}
}

// ClampCreditScore bounds a raw model output to [MinCreditScore, MaxCreditScore].
func ClampCreditScore(raw float64) float64 {
	if math.IsNaN(raw) {
		return MinCreditScore
	}
	return math.Max(MinCreditScore, math.Min(MaxCreditScore, raw))
}

// CreditConfidence reflects data completeness, not model uncertainty: 0.5 plus
// 0.1 for each of yield history, sales history, land area and soil quality
// that is positive, capped at 0.95.
func CreditConfidence(p CreditProfile) float64 {
	populated := 0
	for _, v := range []float64{p.YieldHistory, p.SalesHistory, p.LandArea, p.SoilQuality} {
		if v > 0 {
			populated++
		}
	}
	return math.Min(maxCreditConfidence, baseCreditConfidence+0.1*float64(populated))
}
