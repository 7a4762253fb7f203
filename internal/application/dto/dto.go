package dto

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Field defaults applied when a request omits a value.
const (
	DefaultCropType            = "unknown"
	DefaultSeason              = "unknown"
	DefaultWeatherData         = 0.5
	DefaultSoilQuality         = 50.0
	DefaultWeatherForecast     = 0.5
	DefaultBorrowerCreditScore = 300.0
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreditScoreRequest carries a borrower profile. Nil fields take their
// documented default.
type CreditScoreRequest struct {
	YieldHistory *float64 `json:"yield_history,omitempty" yaml:"yield_history,omitempty"`
	SalesHistory *float64 `json:"sales_history,omitempty" yaml:"sales_history,omitempty"`
	WeatherData  *float64 `json:"weather_data,omitempty" yaml:"weather_data,omitempty"`
	LandArea     *float64 `json:"land_area,omitempty" yaml:"land_area,omitempty"`
	SoilQuality  *float64 `json:"soil_quality,omitempty" yaml:"soil_quality,omitempty"`
	Reputation   *float64 `json:"reputation,omitempty" yaml:"reputation,omitempty"`
	CropType     *string  `json:"crop_type,omitempty" yaml:"crop_type,omitempty"`
}

// Factors resolves the request against the defaults.
func (r CreditScoreRequest) Factors() CreditFactors {
	return CreditFactors{
		YieldHistory: floatOr(r.YieldHistory, 0),
		SalesHistory: floatOr(r.SalesHistory, 0),
		WeatherData:  floatOr(r.WeatherData, DefaultWeatherData),
		LandArea:     floatOr(r.LandArea, 0),
		SoilQuality:  floatOr(r.SoilQuality, DefaultSoilQuality),
		Reputation:   floatOr(r.Reputation, 0),
		CropType:     stringOr(r.CropType, DefaultCropType),
	}
}

// LoanRiskRequest carries a loan application. Nil fields take their
// documented default.
type LoanRiskRequest struct {
	LoanAmount          *float64 `json:"loan_amount,omitempty" yaml:"loan_amount,omitempty"`
	Duration            *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	BorrowerCreditScore *float64 `json:"borrower_credit_score,omitempty" yaml:"borrower_credit_score,omitempty"`
	CropType            *string  `json:"crop_type,omitempty" yaml:"crop_type,omitempty"`
	Season              *string  `json:"season,omitempty" yaml:"season,omitempty"`
	WeatherForecast     *float64 `json:"weather_forecast,omitempty" yaml:"weather_forecast,omitempty"`
	MarketPrice         *float64 `json:"market_price,omitempty" yaml:"market_price,omitempty"`
}

// Factors resolves the request against the defaults.
func (r LoanRiskRequest) Factors() LoanRiskFactors {
	value := floatOr(r.LoanAmount, 0)
	return LoanRiskFactors{
		LoanAmount:          decimal.NewFromFloat(value),
		LoanAmountValue:     value,
		Duration:            floatOr(r.Duration, 0),
		BorrowerCreditScore: floatOr(r.BorrowerCreditScore, DefaultBorrowerCreditScore),
		CropType:            stringOr(r.CropType, DefaultCropType),
		Season:              stringOr(r.Season, DefaultSeason),
		WeatherForecast:     floatOr(r.WeatherForecast, DefaultWeatherForecast),
		MarketPrice:         floatOr(r.MarketPrice, 0),
	}
}

// YieldPredictionRequest carries a field description. Nil fields take their
// documented default.
type YieldPredictionRequest struct {
	CropType    *string  `json:"crop_type,omitempty" yaml:"crop_type,omitempty"`
	LandArea    *float64 `json:"land_area,omitempty" yaml:"land_area,omitempty"`
	SoilQuality *float64 `json:"soil_quality,omitempty" yaml:"soil_quality,omitempty"`
	WeatherData *float64 `json:"weather_data,omitempty" yaml:"weather_data,omitempty"`
	Irrigation  *bool    `json:"irrigation,omitempty" yaml:"irrigation,omitempty"`
	Fertilizer  *bool    `json:"fertilizer,omitempty" yaml:"fertilizer,omitempty"`
}

// Factors resolves the request against the defaults.
func (r YieldPredictionRequest) Factors() YieldFactors {
	return YieldFactors{
		CropType:    stringOr(r.CropType, DefaultCropType),
		LandArea:    floatOr(r.LandArea, 0),
		SoilQuality: floatOr(r.SoilQuality, DefaultSoilQuality),
		WeatherData: floatOr(r.WeatherData, DefaultWeatherData),
		Irrigation:  r.Irrigation != nil && *r.Irrigation,
		Fertilizer:  r.Fertilizer != nil && *r.Fertilizer,
	}
}

// ---------------------------------------------------------------------------
// Resolved inputs, echoed back as "factors"
// ---------------------------------------------------------------------------

// CreditFactors is a credit request after defaulting.
type CreditFactors struct {
	YieldHistory float64 `json:"yield_history" yaml:"yield_history"`
	SalesHistory float64 `json:"sales_history" yaml:"sales_history"`
	WeatherData  float64 `json:"weather_data" yaml:"weather_data"`
	LandArea     float64 `json:"land_area" yaml:"land_area"`
	SoilQuality  float64 `json:"soil_quality" yaml:"soil_quality"`
	Reputation   float64 `json:"reputation" yaml:"reputation"`
	CropType     string  `json:"crop_type" yaml:"crop_type"`
}

// LoanRiskFactors is a loan risk request after defaulting. The amount is
// compared as a decimal and echoed as a JSON number.
type LoanRiskFactors struct {
	LoanAmount          decimal.Decimal `json:"-" yaml:"-"`
	LoanAmountValue     float64         `json:"loan_amount" yaml:"loan_amount"`
	Duration            float64         `json:"duration" yaml:"duration"`
	BorrowerCreditScore float64         `json:"borrower_credit_score" yaml:"borrower_credit_score"`
	CropType            string          `json:"crop_type" yaml:"crop_type"`
	Season              string          `json:"season" yaml:"season"`
	WeatherForecast     float64         `json:"weather_forecast" yaml:"weather_forecast"`
	MarketPrice         float64         `json:"market_price" yaml:"market_price"`
}

// YieldFactors is a yield request after defaulting.
type YieldFactors struct {
	CropType    string  `json:"crop_type" yaml:"crop_type"`
	LandArea    float64 `json:"land_area" yaml:"land_area"`
	SoilQuality float64 `json:"soil_quality" yaml:"soil_quality"`
	WeatherData float64 `json:"weather_data" yaml:"weather_data"`
	Irrigation  bool    `json:"irrigation" yaml:"irrigation"`
	Fertilizer  bool    `json:"fertilizer" yaml:"fertilizer"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// HealthResponse reports service liveness and model state.
type HealthResponse struct {
	Status       string    `json:"status" yaml:"status"`
	Message      string    `json:"message" yaml:"message"`
	ModelTrained bool      `json:"model_trained" yaml:"model_trained"`
	ModelID      string    `json:"model_id,omitempty" yaml:"model_id,omitempty"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
}

// CreditScoreResponse is the external representation of a credit score.
type CreditScoreResponse struct {
	CreditScore float64       `json:"credit_score" yaml:"credit_score"`
	Confidence  float64       `json:"confidence" yaml:"confidence"`
	Factors     CreditFactors `json:"factors" yaml:"factors"`
	ModelID     string        `json:"model_id" yaml:"model_id"`
	Timestamp   time.Time     `json:"timestamp" yaml:"timestamp"`
}

// RiskSignalResponse is one factor that added points to a risk score.
type RiskSignalResponse struct {
	Factor string `json:"factor" yaml:"factor"`
	Points int    `json:"points" yaml:"points"`
}

// LoanRiskResponse is the external representation of a risk assessment.
type LoanRiskResponse struct {
	AssessmentID   string               `json:"assessment_id" yaml:"assessment_id"`
	RiskScore      int                  `json:"risk_score" yaml:"risk_score"`
	RiskLevel      string               `json:"risk_level" yaml:"risk_level"`
	Recommendation string               `json:"recommendation" yaml:"recommendation"`
	Signals        []RiskSignalResponse `json:"signals" yaml:"signals"`
	Factors        LoanRiskFactors      `json:"factors" yaml:"factors"`
	Timestamp      time.Time            `json:"timestamp" yaml:"timestamp"`
}

// YieldPredictionResponse is the external representation of a yield estimate.
type YieldPredictionResponse struct {
	PredictedYield float64      `json:"predicted_yield" yaml:"predicted_yield"`
	Confidence     float64      `json:"confidence" yaml:"confidence"`
	Factors        YieldFactors `json:"factors" yaml:"factors"`
	Timestamp      time.Time    `json:"timestamp" yaml:"timestamp"`
}

// RetrainResponse reports a completed retrain.
type RetrainResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Message   string    `json:"message" yaml:"message"`
	ModelID   string    `json:"model_id" yaml:"model_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ErrorResponse is returned by the transports on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Round2 rounds half away from zero to two decimal places. Non-finite values
// are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
