package enums

import "fmt"

// MaintenanceType represents the kind of service a schedule tracks.
type MaintenanceType string

const (
	MaintenanceTypeOilChange           MaintenanceType = "oil_change"
	MaintenanceTypeTireRotation        MaintenanceType = "tire_rotation"
	MaintenanceTypeBrakeInspection     MaintenanceType = "brake_inspection"
	MaintenanceTypeEngineService       MaintenanceType = "engine_service"
	MaintenanceTypeTransmissionService MaintenanceType = "transmission_service"
	MaintenanceTypeBatteryCheck        MaintenanceType = "battery_check"
	MaintenanceTypeGeneralInspection   MaintenanceType = "general_inspection"
	MaintenanceTypeOther               MaintenanceType = "other"
)

var validMaintenanceTypes = []MaintenanceType{
	MaintenanceTypeOilChange,
	MaintenanceTypeTireRotation,
	MaintenanceTypeBrakeInspection,
	MaintenanceTypeEngineService,
	MaintenanceTypeTransmissionService,
	MaintenanceTypeBatteryCheck,
	MaintenanceTypeGeneralInspection,
	MaintenanceTypeOther,
}

// String implements fmt.Stringer.
func (v MaintenanceType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known MaintenanceType.
func (v MaintenanceType) IsValid() bool {
	for _, candidate := range validMaintenanceTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseMaintenanceType converts raw input into a MaintenanceType.
func ParseMaintenanceType(value string) (MaintenanceType, error) {
	for _, candidate := range validMaintenanceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance type %q", value)
}
