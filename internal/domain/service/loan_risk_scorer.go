package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

// LoanRiskInput contains the data required for loan risk scoring.
type LoanRiskInput struct {
	LoanAmount          decimal.Decimal
	DurationDays        float64
	BorrowerCreditScore float64
	WeatherForecast     float64
	MarketPrice         float64
}

// Signal names reported for each factor that adds points.
const (
	SignalLoanAmount      = "loan_amount"
	SignalDuration        = "duration"
	SignalCreditScore     = "borrower_credit_score"
	SignalWeatherForecast = "weather_forecast"
	SignalMarketPrice     = "market_price"
)

type amountBand struct {
	above  decimal.Decimal
	points int
}

type band struct {
	limit  float64
	points int
}

// Bands are ordered from the most to the least severe; the first match wins.
var (
	loanAmountBands = []amountBand{
		{above: decimal.NewFromInt(10000), points: 30},
		{above: decimal.NewFromInt(5000), points: 20},
		{above: decimal.NewFromInt(2000), points: 10},
	}
	durationBands    = []band{{365, 25}, {180, 15}, {90, 10}}
	creditScoreBands = []band{{500, 40}, {600, 30}, {700, 20}, {800, 10}}
	weatherBands     = []band{{0.3, 20}, {0.5, 15}, {0.7, 10}}
	marketPriceBands = []band{{0.5, 15}, {0.7, 10}}
)

// LoanRiskScorer is a domain service that scores loan applications with
// additive, rule-based bands.
type LoanRiskScorer struct{}

// NewLoanRiskScorer creates a new LoanRiskScorer instance.
func NewLoanRiskScorer() *LoanRiskScorer {
	return &LoanRiskScorer{}
}

// Assess sums the points of every factor, clamps the total to 0-100 and maps
// it onto a risk tier.
func (s *LoanRiskScorer) Assess(input LoanRiskInput) model.RiskAssessment {
	var signals []model.RiskSignal
	add := func(factor string, points int) {
		if points > 0 {
			signals = append(signals, model.RiskSignal{Factor: factor, Points: points})
		}
	}

	add(SignalLoanAmount, loanAmountPoints(input.LoanAmount))
	add(SignalDuration, pointsAbove(input.DurationDays, durationBands))
	add(SignalCreditScore, pointsBelow(input.BorrowerCreditScore, creditScoreBands))
	add(SignalWeatherForecast, pointsBelow(input.WeatherForecast, weatherBands))
	add(SignalMarketPrice, pointsBelow(input.MarketPrice, marketPriceBands))

	score := 0
	for _, sig := range signals {
		score += sig.Points
	}
	score = ClampRiskScore(score)

	return model.RiskAssessment{
		ID:        uuid.New(),
		RiskScore: score,
		RiskLevel: valueobject.RiskLevelFromScore(score),
		Signals:   signals,
	}
}

// ClampRiskScore bounds a score to [0, 100].
func ClampRiskScore(score int) int {
	return max(0, min(100, score))
}

func loanAmountPoints(amount decimal.Decimal) int {
	for _, b := range loanAmountBands {
		if amount.GreaterThan(b.above) {
			return b.points
		}
	}
	return 0
}

func pointsAbove(v float64, bands []band) int {
	for _, b := range bands {
		if v > b.limit {
			return b.points
		}
	}
	return 0
}

func pointsBelow(v float64, bands []band) int {
	for _, b := range bands {
		if v < b.limit {
			return b.points
		}
	}
	return 0
}
