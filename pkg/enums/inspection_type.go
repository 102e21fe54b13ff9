package enums

import "fmt"

// InspectionType marks whether a checklist was filled before or after a trip.
type InspectionType string

const (
	InspectionTypePreTrip  InspectionType = "pre_trip"
	InspectionTypePostTrip InspectionType = "post_trip"
)

var validInspectionTypes = []InspectionType{
	InspectionTypePreTrip,
	InspectionTypePostTrip,
}

// String implements fmt.Stringer.
func (v InspectionType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known InspectionType.
func (v InspectionType) IsValid() bool {
	for _, candidate := range validInspectionTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseInspectionType converts raw input into a InspectionType.
func ParseInspectionType(value string) (InspectionType, error) {
	for _, candidate := range validInspectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inspection type %q", value)
}
