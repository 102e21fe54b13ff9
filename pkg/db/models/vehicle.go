package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// Vehicle is a fleet asset. VIN and QR code are optional but unique when set.
type Vehicle struct {
	ID               uint                `gorm:"primaryKey"`
	NumberPlate      string              `gorm:"column:number_plate;type:varchar(20);not null;uniqueIndex"`
	VIN              *string             `gorm:"column:vin;type:varchar(17);uniqueIndex"`
	QRCode           *string             `gorm:"column:qr_code;type:varchar(100);uniqueIndex"`
	Make             string              `gorm:"column:make;type:varchar(50);not null"`
	Model            string              `gorm:"column:model;type:varchar(50);not null"`
	Year             int                 `gorm:"column:year;not null"`
	Color            *string             `gorm:"column:color;type:varchar(30)"`
	FuelType         enums.FuelType      `gorm:"column:fuel_type;type:varchar(20);not null;default:'petrol'"`
	Status           enums.VehicleStatus `gorm:"column:status;type:varchar(20);not null;default:'available'"`
	CurrentOdometer  int                 `gorm:"column:current_odometer;not null;default:0"`
	FuelCapacity     *float64            `gorm:"column:fuel_capacity"`
	DepartmentID     *uint               `gorm:"column:department_id;index"`
	Department       *Department         `gorm:"foreignKey:DepartmentID"`
	AssignedDriverID *uint               `gorm:"column:assigned_driver_id;index"`
	AssignedDriver   *User               `gorm:"foreignKey:AssignedDriverID"`
	IsActive         bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
