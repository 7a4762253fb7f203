package valueobject

import "strings"

// CropType is an immutable value object naming a supported crop.
type CropType struct {
	value string
}

var (
	CropRice      = CropType{value: "rice"}
	CropWheat     = CropType{value: "wheat"}
	CropCorn      = CropType{value: "corn"}
	CropSugarcane = CropType{value: "sugarcane"}
	CropCotton    = CropType{value: "cotton"}
	CropUnknown   = CropType{value: "unknown"}
)

// ParseCropType resolves a crop name case-insensitively. Unrecognised names
// resolve to CropUnknown; parsing never fails.
func ParseCropType(s string) CropType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rice":
		return CropRice
	case "wheat":
		return CropWheat
	case "corn":
		return CropCorn
	case "sugarcane":
		return CropSugarcane
	case "cotton":
		return CropCotton
	default:
		return CropUnknown
	}
}

// Code returns the numeric encoding used as the crop_type_encoded feature.
// Unknown crops share the corn code.
func (c CropType) Code() int {
	switch c.value {
	case "rice":
		return 0
	case "wheat":
		return 1
	case "sugarcane":
		return 3
	case "cotton":
		return 4
	default:
		return 2
	}
}

// String returns the canonical lower-case name.
func (c CropType) String() string {
	if c.value == "" {
		return CropUnknown.value
	}
	return c.value
}

// IsKnown reports whether the crop is one of the five modelled crops.
func (c CropType) IsKnown() bool {
	return c.value != "" && c.value != CropUnknown.value
}

// Equal checks equality with another CropType.
func (c CropType) Equal(other CropType) bool {
	return c.String() == other.String()
}
