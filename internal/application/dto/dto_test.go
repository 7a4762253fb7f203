package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agriscore/internal/application/dto"
)

func TestCreditScoreRequest_Defaults(t *testing.T) {
	var req dto.CreditScoreRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	assert.Equal(t, dto.CreditFactors{
		WeatherData: 0.5,
		SoilQuality: 50,
		CropType:    "unknown",
	}, req.Factors())
}

func TestCreditScoreRequest_ExplicitZeroIsKept(t *testing.T) {
	var req dto.CreditScoreRequest
	require.NoError(t, json.Unmarshal([]byte(`{"weather_data":0,"soil_quality":0,"crop_type":"Rice"}`), &req))

	f := req.Factors()
	assert.Equal(t, 0.0, f.WeatherData)
	assert.Equal(t, 0.0, f.SoilQuality)
	assert.Equal(t, "Rice", f.CropType)
}

func TestLoanRiskRequest_Defaults(t *testing.T) {
	f := dto.LoanRiskRequest{}.Factors()

	assert.True(t, f.LoanAmount.IsZero())
	assert.Equal(t, 0.0, f.Duration)
	assert.Equal(t, 300.0, f.BorrowerCreditScore)
	assert.Equal(t, "unknown", f.CropType)
	assert.Equal(t, "unknown", f.Season)
	assert.Equal(t, 0.5, f.WeatherForecast)
	assert.Equal(t, 0.0, f.MarketPrice)
}

func TestLoanRiskRequest_AmountIsDecimal(t *testing.T) {
	var req dto.LoanRiskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"loan_amount":15000.5}`), &req))

	f := req.Factors()
	assert.True(t, f.LoanAmount.Equal(decimal.RequireFromString("15000.5")))
	assert.Equal(t, 15000.5, f.LoanAmountValue)
}

func TestLoanRiskRequest_AmountRejectsString(t *testing.T) {
	var req dto.LoanRiskRequest
	err := json.Unmarshal([]byte(`{"loan_amount":"12000"}`), &req)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "loan_amount", typeErr.Field)
}

func TestLoanRiskFactors_EchoesAmountAsNumber(t *testing.T) {
	b, err := json.Marshal(dto.LoanRiskRequest{LoanAmount: ptr(2500.0)}.Factors())
	require.NoError(t, err)

	assert.Contains(t, string(b), `"loan_amount":2500`)
}

func TestYieldPredictionRequest_Defaults(t *testing.T) {
	assert.Equal(t, dto.YieldFactors{
		CropType:    "unknown",
		SoilQuality: 50,
		WeatherData: 0.5,
	}, dto.YieldPredictionRequest{}.Factors())
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{38.8799999, 38.88},
		{1.005, 1.01},
		{-1.005, -1.01},
		{0.125, 0.13},
		{850, 850},
		{0.95, 0.95},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func ptr[T any](v T) *T { return &v }
