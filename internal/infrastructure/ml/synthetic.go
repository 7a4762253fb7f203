package ml

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bibbank/agriscore/internal/domain/model"
)

const (
	// DefaultSeed seeds synthetic data generation and tree bagging.
	DefaultSeed int64 = 42

	// DefaultSamples is the synthetic training set size.
	DefaultSamples = 1000

	// DefaultTrees is the forest size.
	DefaultTrees = 100
)

// GenerateDataset draws n synthetic borrower rows from a single source
// seeded with seed. Columns are drawn one after another:
//
//	yield_history      Normal(1000, 300)
//	sales_history      Normal(50000, 15000)
//	weather_data       Uniform[0.3, 1.0)
//	land_area          Uniform[1, 100)
//	soil_quality       Uniform[50, 100)
//	reputation         Uniform[0, 100)
//	crop_type_encoded  uniform integer in [0, 5)
//	credit_score       Uniform[300, 850)
//
// The credit score column is drawn independently of the features. The same
// seed and n always produce identical data.
func GenerateDataset(seed int64, n int) model.Dataset {
	if n <= 0 {
		return model.Dataset{}
	}
	src := rand.NewSource(uint64(seed))
	rng := rand.New(src)
	ds := make(model.Dataset, n)

	normal := func(mu, sigma float64) func() float64 {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}.Rand
	}
	uniform := func(lo, hi float64) func() float64 {
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand
	}

	columns := []struct {
		draw func() float64
		set  func(*model.Sample, float64)
	}{
		{normal(1000, 300), func(s *model.Sample, v float64) { s.Features.YieldHistory = v }},
		{normal(50000, 15000), func(s *model.Sample, v float64) { s.Features.SalesHistory = v }},
		{uniform(0.3, 1.0), func(s *model.Sample, v float64) { s.Features.WeatherData = v }},
		{uniform(1, 100), func(s *model.Sample, v float64) { s.Features.LandArea = v }},
		{uniform(50, 100), func(s *model.Sample, v float64) { s.Features.SoilQuality = v }},
		{uniform(0, 100), func(s *model.Sample, v float64) { s.Features.Reputation = v }},
		{func() float64 { return float64(rng.Intn(5)) }, func(s *model.Sample, v float64) { s.Features.CropTypeEncoded = v }},
		{uniform(300, 850), func(s *model.Sample, v float64) { s.CreditScore = v }},
	}

	for _, col := range columns {
		for i := range ds {
			col.set(&ds[i], col.draw())
		}
	}
	return ds
}
