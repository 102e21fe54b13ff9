package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Trip is one journey of a vehicle by a driver. Only CalculatedDistance is
// stored among the derived quantities.
type Trip struct {
	ID                 uint                `gorm:"primaryKey"`
	VehicleID          uint                `gorm:"column:vehicle_id;not null;index"`
	Vehicle            *Vehicle            `gorm:"foreignKey:VehicleID"`
	DriverID           uint                `gorm:"column:driver_id;not null;index"`
	Driver             *User               `gorm:"foreignKey:DriverID"`
	StartTime          time.Time           `gorm:"column:start_time;not null;index"`
	EndTime            *time.Time          `gorm:"column:end_time"`
	StartLocation      types.Location      `gorm:"column:start_location;type:jsonb;not null"`
	EndLocation        *types.Location     `gorm:"column:end_location;type:jsonb"`
	StartOdometer      int                 `gorm:"column:start_odometer;not null"`
	EndOdometer        *int                `gorm:"column:end_odometer"`
	CalculatedDistance *int                `gorm:"column:calculated_distance"`
	FuelConsumed       *float64            `gorm:"column:fuel_consumed"`
	FuelCost           decimal.NullDecimal `gorm:"column:fuel_cost;type:numeric(12,2)"`
	Purpose            *string             `gorm:"column:purpose"`
	Notes              *string             `gorm:"column:notes"`
	Status             enums.TripStatus    `gorm:"column:status;type:varchar(20);not null;default:'active'"`
	Inspections        []VehicleInspection `gorm:"foreignKey:TripID"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Distance prefers the stored distance and falls back to the odometer delta.
func (t Trip) Distance() int {
	if t.CalculatedDistance != nil {
		return *t.CalculatedDistance
	}
	if t.EndOdometer != nil && *t.EndOdometer >= t.StartOdometer {
		return *t.EndOdometer - t.StartOdometer
	}
	return 0
}

// Duration is zero until the trip has an end time.
func (t Trip) Duration() time.Duration {
	if t.EndTime == nil || t.EndTime.Before(t.StartTime) {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}
