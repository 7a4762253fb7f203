package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

func TestYieldEstimator_ClosedFormWithoutBoosts(t *testing.T) {
	estimator := service.NewYieldEstimator(service.FixedPerturbation(1.0))

	crops := []string{"rice", "wheat", "corn", "sugarcane", "cotton", "unknown", "millet"}
	for _, name := range crops {
		t.Run(name, func(t *testing.T) {
			crop := valueobject.ParseCropType(name)
			land, soil, weather := 12.5, 73.0, 0.83

			got := estimator.Predict(service.YieldInput{
				CropType:    crop,
				LandArea:    land,
				SoilQuality: soil,
				WeatherData: weather,
			})

			want := land * service.CropMultiplier(crop) * (soil / 100) * weather
			assert.Equal(t, want, got.PredictedYield)
		})
	}
}

func TestYieldEstimator_RiceIrrigated(t *testing.T) {
	estimator := service.NewYieldEstimator(service.FixedPerturbation(1.0))

	got := estimator.Predict(service.YieldInput{
		CropType:    valueobject.ParseCropType("rice"),
		LandArea:    10,
		SoilQuality: 80,
		WeatherData: 0.9,
		Irrigation:  true,
	})

	// 10 * 4.5 * 0.8 * 0.9 * 1.2
	assert.InDelta(t, 38.88, got.PredictedYield, 1e-9)
	assert.InDelta(t, 0.95, got.Confidence, 1e-9)
}

func TestYieldEstimator_FertilizerBoost(t *testing.T) {
	estimator := service.NewYieldEstimator(service.FixedPerturbation(1.0))
	in := service.YieldInput{
		CropType:    valueobject.CropWheat,
		LandArea:    5,
		SoilQuality: 60,
		WeatherData: 0.7,
	}

	plain := estimator.Predict(in)
	in.Fertilizer = true
	boosted := estimator.Predict(in)

	assert.InDelta(t, plain.PredictedYield*1.15, boosted.PredictedYield, 1e-9)
}

func TestYieldEstimator_PerturbationIsApplied(t *testing.T) {
	in := service.YieldInput{CropType: valueobject.CropCorn, LandArea: 10, SoilQuality: 100, WeatherData: 1}

	base := service.NewYieldEstimator(service.FixedPerturbation(1.0)).Predict(in)
	scaled := service.NewYieldEstimator(service.FixedPerturbation(0.9)).Predict(in)

	assert.InDelta(t, 38.0, base.PredictedYield, 1e-9)
	assert.InDelta(t, 34.2, scaled.PredictedYield, 1e-9)
}

func TestYieldEstimator_FlooredAtZero(t *testing.T) {
	estimator := service.NewYieldEstimator(service.FixedPerturbation(1.0))

	negativeLand := estimator.Predict(service.YieldInput{CropType: valueobject.CropRice, LandArea: -10, SoilQuality: 80, WeatherData: 0.9})
	negativeNoise := service.NewYieldEstimator(service.FixedPerturbation(-0.5)).Predict(service.YieldInput{
		CropType: valueobject.CropRice, LandArea: 10, SoilQuality: 80, WeatherData: 0.9,
	})

	assert.Equal(t, 0.0, negativeLand.PredictedYield)
	assert.Equal(t, 0.0, negativeNoise.PredictedYield)
}

func TestCropMultiplier(t *testing.T) {
	tests := map[string]float64{
		"rice":      4.5,
		"Wheat":     3.2,
		"CORN":      3.8,
		"sugarcane": 6.0,
		"cotton":    2.5,
		"unknown":   3.0,
		"barley":    3.0,
	}
	for name, want := range tests {
		assert.Equal(t, want, service.CropMultiplier(valueobject.ParseCropType(name)), name)
	}
}

func TestYieldConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   service.YieldInput
		want float64
	}{
		{"nothing populated", service.YieldInput{}, 0.6},
		{"land only", service.YieldInput{LandArea: 1}, 0.7},
		{"all numeric", service.YieldInput{LandArea: 1, SoilQuality: 1, WeatherData: 1}, 0.9},
		{"numeric plus irrigation", service.YieldInput{LandArea: 1, SoilQuality: 1, WeatherData: 1, Irrigation: true}, 0.95},
		{"everything capped", service.YieldInput{LandArea: 1, SoilQuality: 1, WeatherData: 1, Irrigation: true, Fertilizer: true}, 0.95},
		{"flags only", service.YieldInput{Irrigation: true, Fertilizer: true}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.YieldConfidence(tt.in), 1e-9)
		})
	}
}

func TestNormalPerturbation_SeededAndCentred(t *testing.T) {
	a := service.NewNormalPerturbation(7, 1.0, 0.1)
	b := service.NewNormalPerturbation(7, 1.0, 0.1)

	sum := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		fa, fb := a.Factor(), b.Factor()
		assert.Equal(t, fa, fb)
		sum += fa
	}
	assert.InDelta(t, 1.0, sum/n, 0.01)
	assert.False(t, math.IsNaN(sum))
}
