package enums

import "fmt"

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

var validTripStatuses = []TripStatus{
	TripStatusActive,
	TripStatusCompleted,
	TripStatusCancelled,
}

// String implements fmt.Stringer.
func (v TripStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known TripStatus.
func (v TripStatus) IsValid() bool {
	for _, candidate := range validTripStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseTripStatus converts raw input into a TripStatus.
func ParseTripStatus(value string) (TripStatus, error) {
	for _, candidate := range validTripStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trip status %q", value)
}
