package service

import (
	"math"

	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

const (
	irrigationBoost = 1.2
	fertilizerBoost = 1.15

	baseYieldConfidence = 0.6
	maxYieldConfidence  = 0.95
)

// YieldInput contains the data required for a yield estimate.
type YieldInput struct {
	CropType    valueobject.CropType
	LandArea    float64
	SoilQuality float64
	WeatherData float64
	Irrigation  bool
	Fertilizer  bool
}

// CropMultiplier returns the base yield per unit of land for a crop.
func CropMultiplier(c valueobject.CropType) float64 {
	switch {
	case c.Equal(valueobject.CropRice):
		return 4.5
	case c.Equal(valueobject.CropWheat):
		return 3.2
	case c.Equal(valueobject.CropCorn):
		return 3.8
	case c.Equal(valueobject.CropSugarcane):
		return 6.0
	case c.Equal(valueobject.CropCotton):
		return 2.5
	default:
		return 3.0
	}
}

// YieldEstimator is a domain service applying the multiplicative yield formula.
type YieldEstimator struct {
	perturbation Perturbation
}

// NewYieldEstimator creates a YieldEstimator drawing noise from p.
func NewYieldEstimator(p Perturbation) *YieldEstimator {
	return &YieldEstimator{perturbation: p}
}

// Predict estimates the yield as
//
//	land_area * multiplier * soil_quality/100 * weather_data
//	  * 1.2 (irrigation) * 1.15 (fertilizer) * noise
//
// floored at zero.
func (e *YieldEstimator) Predict(in YieldInput) model.YieldEstimate {
	y := in.LandArea * CropMultiplier(in.CropType)
	y *= in.SoilQuality / 100
	y *= in.WeatherData

	if in.Irrigation {
		y *= irrigationBoost
	}
	if in.Fertilizer {
		y *= fertilizerBoost
	}

	y *= e.perturbation.Factor()

	return model.YieldEstimate{
		PredictedYield: math.Max(0, y),
		Confidence:     YieldConfidence(in),
	}
}

// YieldConfidence is 0.6 plus 0.1 for each positive land area, soil quality and
// weather value and 0.05 each for irrigation and fertilizer, capped at 0.95.
func YieldConfidence(in YieldInput) float64 {
	c := baseYieldConfidence
	for _, v := range []float64{in.LandArea, in.SoilQuality, in.WeatherData} {
		if v > 0 {
			c += 0.1
		}
	}
	if in.Irrigation {
		c += 0.05
	}
	if in.Fertilizer {
		c += 0.05
	}
	return math.Min(maxYieldConfidence, c)
}
