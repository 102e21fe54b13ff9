package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// VehicleStatusLog is append-only; rows are never updated.
type VehicleStatusLog struct {
	ID              uint                 `gorm:"primaryKey"`
	VehicleID       uint                 `gorm:"column:vehicle_id;not null;index"`
	PreviousStatus  *enums.VehicleStatus `gorm:"column:previous_status;type:varchar(20)"`
	NewStatus       enums.VehicleStatus  `gorm:"column:new_status;type:varchar(20);not null"`
	ChangedBy       *uint                `gorm:"column:changed_by"`
	OdometerReading *int                 `gorm:"column:odometer_reading"`
	Reason          *string              `gorm:"column:reason"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the singular table name used by the dashboard's SQL views.
func (VehicleStatusLog) TableName() string {
	return "vehicle_status_log"
}
