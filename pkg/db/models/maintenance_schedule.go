package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// MaintenanceSchedule tracks a recurring service for one vehicle. Interval
// and due fields are independently nullable.
type MaintenanceSchedule struct {
	ID              uint                  `gorm:"primaryKey"`
	VehicleID       uint                  `gorm:"column:vehicle_id;not null;index"`
	Vehicle         *Vehicle              `gorm:"foreignKey:VehicleID"`
	MaintenanceType enums.MaintenanceType `gorm:"column:maintenance_type;type:varchar(30);not null"`
	Description     *string               `gorm:"column:description"`
	IntervalKm      *int                  `gorm:"column:interval_km"`
	IntervalMonths  *int                  `gorm:"column:interval_months"`
	LastServiceDate *time.Time            `gorm:"column:last_service_date"`
	LastServiceKm   *int                  `gorm:"column:last_service_km"`
	NextDueDate     *time.Time            `gorm:"column:next_due_date;index"`
	NextDueKm       *int                  `gorm:"column:next_due_km"`
	EstimatedCost   decimal.NullDecimal   `gorm:"column:estimated_cost;type:numeric(12,2)"`
	LastCost        decimal.NullDecimal   `gorm:"column:last_cost;type:numeric(12,2)"`
	Notes           *string               `gorm:"column:notes"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
