package valueobject

import "fmt"

// RiskLevel is an immutable value object representing a loan risk tier.
type RiskLevel struct {
	value          string
	recommendation string
}

var (
	RiskLevelLow = RiskLevel{
		value:          "Low",
		recommendation: "Approve loan with standard terms",
	}
	RiskLevelMedium = RiskLevel{
		value:          "Medium",
		recommendation: "Approve loan with higher interest rate",
	}
	RiskLevelHigh = RiskLevel{
		value:          "High",
		recommendation: "Approve loan with collateral requirement",
	}
	RiskLevelVeryHigh = RiskLevel{
		value:          "Very High",
		recommendation: "Reject loan application",
	}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLevelLow, nil
	case "Medium":
		return RiskLevelMedium, nil
	case "High":
		return RiskLevelHigh, nil
	case "Very High":
		return RiskLevelVeryHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the tier from a 0-100 risk score.
//
//	score <  30 -> Low
//	score <  60 -> Medium
//	score <  80 -> High
//	score >= 80 -> Very High
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score < 30:
		return RiskLevelLow
	case score < 60:
		return RiskLevelMedium
	case score < 80:
		return RiskLevelHigh
	default:
		return RiskLevelVeryHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Recommendation returns the lending action for this tier.
func (r RiskLevel) Recommendation() string {
	return r.recommendation
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
