package service

import (
	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/valueobject"
)

// CreditProfile is a borrower profile after request defaults have been applied.
type CreditProfile struct {
	CropType     valueobject.CropType
	YieldHistory float64
	SalesHistory float64
	WeatherData  float64
	LandArea     float64
	SoilQuality  float64
	Reputation   float64
}

// FeatureEncoder turns borrower profiles into credit model feature records.
// Values are copied through unvalidated; negative or out-of-range inputs reach
// the model as given.
type FeatureEncoder struct{}

// NewFeatureEncoder creates a new FeatureEncoder.
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// Encode maps a profile onto the fixed feature layout.
func (e *FeatureEncoder) Encode(p CreditProfile) model.FeatureRecord {
	return model.FeatureRecord{
		YieldHistory:    p.YieldHistory,
		SalesHistory:    p.SalesHistory,
		WeatherData:     p.WeatherData,
		LandArea:        p.LandArea,
		SoilQuality:     p.SoilQuality,
		Reputation:      p.Reputation,
		CropTypeEncoded: float64(p.CropType.Code()),
	}
}
