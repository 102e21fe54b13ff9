package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// VehicleInspection is a pre- or post-trip checklist. Notes may carry a
// JSON-encoded issue list written by the dashboard.
type VehicleInspection struct {
	ID             uint                 `gorm:"primaryKey"`
	TripID         uint                 `gorm:"column:trip_id;not null;index"`
	VehicleID      uint                 `gorm:"column:vehicle_id;not null;index"`
	InspectorID    *uint                `gorm:"column:inspector_id"`
	InspectionType enums.InspectionType `gorm:"column:inspection_type;type:varchar(20);not null"`
	TyresOK        bool                 `gorm:"column:tyres_ok;not null;default:false"`
	LightsOK       bool                 `gorm:"column:lights_ok;not null;default:false"`
	BrakesOK       bool                 `gorm:"column:brakes_ok;not null;default:false"`
	FluidsOK       bool                 `gorm:"column:fluids_ok;not null;default:false"`
	BodyOK         bool                 `gorm:"column:body_ok;not null;default:false"`
	Notes          *string              `gorm:"column:notes"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// Passed reports whether every checklist item is ok.
func (v VehicleInspection) Passed() bool {
	return v.TyresOK && v.LightsOK && v.BrakesOK && v.FluidsOK && v.BodyOK
}
