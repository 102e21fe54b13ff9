package trips

import (
	"math"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	"github.com/angelmondragon/fleetdesk-backend/internal/vehicles"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// TripDTO is the transport shape for a trip. Distance, duration and fuel
// efficiency are derived on read.
type TripDTO struct {
	ID                 uint                 `json:"id"`
	VehicleID          uint                 `json:"vehicle_id"`
	Vehicle            *vehicles.VehicleRef `json:"vehicle,omitempty"`
	DriverID           uint                 `json:"driver_id"`
	Driver             *users.UserRef       `json:"driver,omitempty"`
	StartTime          time.Time            `json:"start_time"`
	EndTime            *time.Time           `json:"end_time,omitempty"`
	StartLocation      types.Location       `json:"start_location"`
	EndLocation        *types.Location      `json:"end_location,omitempty"`
	StartOdometer      int                  `json:"start_odometer"`
	EndOdometer        *int                 `json:"end_odometer,omitempty"`
	CalculatedDistance *int                 `json:"calculated_distance,omitempty"`
	FuelConsumed       *float64             `json:"fuel_consumed,omitempty"`
	FuelCost           decimal.NullDecimal  `json:"fuel_cost"`
	Purpose            *string              `json:"purpose,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	Status             enums.TripStatus     `json:"status"`
	Distance           int                  `json:"distance"`
	DurationMinutes    *int                 `json:"duration_minutes,omitempty"`
	FuelEfficiency     *float64             `json:"fuel_efficiency,omitempty"`
	Inspections        []InspectionDTO      `json:"inspections,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// InspectionDTO is a pre- or post-trip checklist.
type InspectionDTO struct {
	ID             uint                 `json:"id"`
	InspectionType enums.InspectionType `json:"inspection_type"`
	InspectorID    *uint                `json:"inspector_id,omitempty"`
	TyresOK        bool                 `json:"tyres_ok"`
	LightsOK       bool                 `json:"lights_ok"`
	BrakesOK       bool                 `json:"brakes_ok"`
	FluidsOK       bool                 `json:"fluids_ok"`
	BodyOK         bool                 `json:"body_ok"`
	Passed         bool                 `json:"passed"`
	Notes          *string              `json:"notes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Caller is the authenticated user acting on trips. Drivers are confined to
// their own trips.
type Caller struct {
	UserID uint
	Role   enums.UserRole
}

func (c Caller) isDriver() bool {
	return c.Role == enums.UserRoleDriver
}

// InspectionInput is the checklist submitted with a trip start or end.
type InspectionInput struct {
	TyresOK  bool    `json:"tyres_ok"`
	LightsOK bool    `json:"lights_ok"`
	BrakesOK bool    `json:"brakes_ok"`
	FluidsOK bool    `json:"fluids_ok"`
	BodyOK   bool    `json:"body_ok"`
	Notes    *string `json:"notes,omitempty"`
}

// CreateInput opens a trip. DriverID defaults to the caller and
// StartOdometer to the vehicle's current reading.
type CreateInput struct {
	VehicleID         uint
	DriverID          *uint
	StartTime         *time.Time
	StartLocation     *types.Location
	StartOdometer     *int
	Purpose           *string
	Notes             *string
	PreTripInspection *InspectionInput
}

// UpdateInput edits an active trip; nil fields are left alone.
type UpdateInput struct {
	StartLocation *types.Location
	EndLocation   *types.Location
	Purpose       *string
	Notes         *string
	FuelConsumed  *float64
	FuelCost      *decimal.Decimal
}

// EndInput closes an active trip.
type EndInput struct {
	EndOdometer        int
	EndLocation        *types.Location
	EndTime            *time.Time
	FuelConsumed       *float64
	FuelCost           *decimal.Decimal
	Notes              *string
	PostTripInspection *InspectionInput
}

// ListFilter narrows trip listings to a status, vehicle, driver and start
// time window.
type ListFilter struct {
	Status    enums.TripStatus
	VehicleID *uint
	DriverID  *uint
	From      *time.Time
	To        *time.Time
}

func FromModel(t *models.Trip) *TripDTO {
	if t == nil {
		return nil
	}
	out := &TripDTO{
		ID:                 t.ID,
		VehicleID:          t.VehicleID,
		Vehicle:            vehicles.RefFromModel(t.Vehicle),
		DriverID:           t.DriverID,
		Driver:             users.RefFromModel(t.Driver),
		StartTime:          t.StartTime,
		EndTime:            t.EndTime,
		StartLocation:      t.StartLocation,
		EndLocation:        t.EndLocation,
		StartOdometer:      t.StartOdometer,
		EndOdometer:        t.EndOdometer,
		CalculatedDistance: t.CalculatedDistance,
		FuelConsumed:       t.FuelConsumed,
		FuelCost:           t.FuelCost,
		Purpose:            t.Purpose,
		Notes:              t.Notes,
		Status:             t.Status,
		Distance:           t.Distance(),
		FuelEfficiency:     FuelEfficiency(t.Distance(), t.FuelConsumed),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.EndTime != nil {
		minutes := int(math.Round(t.Duration().Minutes()))
		out.DurationMinutes = &minutes
	}
	for _, insp := range t.Inspections {
		out.Inspections = append(out.Inspections, inspectionFromModel(insp))
	}
	return out
}

// FuelEfficiency returns km per unit of fuel rounded to two decimals, or nil
// when no fuel was recorded.
func FuelEfficiency(distance int, fuel *float64) *float64 {
	if fuel == nil || *fuel <= 0 {
		return nil
	}
	ratio := float64(distance) / *fuel
	eff := math.Round(ratio*100) / 100
	return &eff
}

func inspectionFromModel(m models.VehicleInspection) InspectionDTO {
	return InspectionDTO{
		ID:             m.ID,
		InspectionType: m.InspectionType,
		InspectorID:    m.InspectorID,
		TyresOK:        m.TyresOK,
		LightsOK:       m.LightsOK,
		BrakesOK:       m.BrakesOK,
		FluidsOK:       m.FluidsOK,
		BodyOK:         m.BodyOK,
		Passed:         m.Passed(),
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

func (in InspectionInput) toModel(trip *models.Trip, inspector uint, kind enums.InspectionType) *models.VehicleInspection {
	var inspectorID *uint
	if inspector != 0 {
		inspectorID = &inspector
	}
	return &models.VehicleInspection{
		TripID:         trip.ID,
		VehicleID:      trip.VehicleID,
		InspectorID:    inspectorID,
		InspectionType: kind,
		TyresOK:        in.TyresOK,
		LightsOK:       in.LightsOK,
		BrakesOK:       in.BrakesOK,
		FluidsOK:       in.FluidsOK,
		BodyOK:         in.BodyOK,
		Notes:          in.Notes,
	}
}
