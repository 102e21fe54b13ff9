package enums

import "fmt"

// VehicleStatus represents where a vehicle sits in its lifecycle. Any status may follow any other.
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
	VehicleStatusAvailable   VehicleStatus = "available"
)

var validVehicleStatuses = []VehicleStatus{
	VehicleStatusActive,
	VehicleStatusMaintenance,
	VehicleStatusRetired,
	VehicleStatusAvailable,
}

// String implements fmt.Stringer.
func (v VehicleStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VehicleStatus.
func (v VehicleStatus) IsValid() bool {
	for _, candidate := range validVehicleStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleStatus converts raw input into a VehicleStatus.
func ParseVehicleStatus(value string) (VehicleStatus, error) {
	for _, candidate := range validVehicleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle status %q", value)
}

// CountsAsUtilized reports whether the vehicle counts toward fleet utilization.
func (v VehicleStatus) CountsAsUtilized() bool {
	return v == VehicleStatusActive || v == VehicleStatusAvailable
}

// CanStartTrip reports whether a trip may be opened on a vehicle in this status.
func (v VehicleStatus) CanStartTrip() bool {
	return v.CountsAsUtilized()
}
