package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agriscore/internal/domain/model"
)

func TestFeatureRecord_VectorOrder(t *testing.T) {
	r := model.FeatureRecord{
		YieldHistory:    1,
		SalesHistory:    2,
		WeatherData:     3,
		LandArea:        4,
		SoilQuality:     5,
		Reputation:      6,
		CropTypeEncoded: 7,
	}

	v := r.Vector()
	require.Len(t, v, model.FeatureCount)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, v)
	assert.Equal(t, "yield_history", model.FeatureNames[0])
	assert.Equal(t, "crop_type_encoded", model.FeatureNames[model.FeatureCount-1])
}

func TestDataset_MatrixAndTargets(t *testing.T) {
	ds := model.Dataset{
		{Features: model.FeatureRecord{YieldHistory: 10}, CreditScore: 400},
		{Features: model.FeatureRecord{SalesHistory: 20}, CreditScore: 700},
	}

	m := ds.Matrix()
	require.Len(t, m, 2)
	assert.Equal(t, 10.0, m[0][0])
	assert.Equal(t, 20.0, m[1][1])
	assert.Equal(t, []float64{400, 700}, ds.Targets())
}
