package enums

import "fmt"

// FuelType represents the propulsion a vehicle runs on.
type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

var validFuelTypes = []FuelType{
	FuelTypePetrol,
	FuelTypeDiesel,
	FuelTypeElectric,
	FuelTypeHybrid,
}

// String implements fmt.Stringer.
func (v FuelType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known FuelType.
func (v FuelType) IsValid() bool {
	for _, candidate := range validFuelTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseFuelType converts raw input into a FuelType.
func ParseFuelType(value string) (FuelType, error) {
	for _, candidate := range validFuelTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fuel type %q", value)
}
