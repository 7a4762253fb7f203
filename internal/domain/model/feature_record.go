package model

// FeatureCount is the width of the credit model feature vector.
const FeatureCount = 7

// FeatureNames lists the feature vector columns in the order the model is
// trained and queried with.
var FeatureNames = [FeatureCount]string{
	"yield_history",
	"sales_history",
	"weather_data",
	"land_area",
	"soil_quality",
	"reputation",
	"crop_type_encoded",
}

// FeatureRecord is the numeric input of the credit model.
type FeatureRecord struct {
	YieldHistory    float64
	SalesHistory    float64
	WeatherData     float64
	LandArea        float64
	SoilQuality     float64
	Reputation      float64
	CropTypeEncoded float64
}

// Vector lays the record out in FeatureNames order. Training and inference
// both go through this method, so column order cannot drift between them.
func (r FeatureRecord) Vector() []float64 {
	return []float64{
		r.YieldHistory,
		r.SalesHistory,
		r.WeatherData,
		r.LandArea,
		r.SoilQuality,
		r.Reputation,
		r.CropTypeEncoded,
	}
}

// Sample is one labelled training row.
type Sample struct {
	Features    FeatureRecord
	CreditScore float64
}

// Dataset is an ordered collection of training samples.
type Dataset []Sample

// Matrix returns the feature vectors of all samples.
func (d Dataset) Matrix() [][]float64 {
	rows := make([][]float64, len(d))
	for i, s := range d {
		rows[i] = s.Features.Vector()
	}
	return rows
}

// Targets returns the credit score column.
func (d Dataset) Targets() []float64 {
	ys := make([]float64, len(d))
	for i, s := range d {
		ys[i] = s.CreditScore
	}
	return ys
}
