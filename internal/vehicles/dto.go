package vehicles

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// VehicleDTO is the transport shape for a vehicle with its eager-loaded
// department and assigned driver.
type VehicleDTO struct {
	ID               uint                       `json:"id"`
	NumberPlate      string                     `json:"number_plate"`
	VIN              *string                    `json:"vin,omitempty"`
	QRCode           *string                    `json:"qr_code,omitempty"`
	Make             string                     `json:"make"`
	Model            string                     `json:"model"`
	Year             int                        `json:"year"`
	Color            *string                    `json:"color,omitempty"`
	FuelType         enums.FuelType             `json:"fuel_type"`
	Status           enums.VehicleStatus        `json:"status"`
	CurrentOdometer  int                        `json:"current_odometer"`
	FuelCapacity     *float64                   `json:"fuel_capacity,omitempty"`
	DepartmentID     *uint                      `json:"department_id,omitempty"`
	Department       *departments.DepartmentRef `json:"department,omitempty"`
	AssignedDriverID *uint                      `json:"assigned_driver_id,omitempty"`
	AssignedDriver   *users.UserRef             `json:"assigned_driver,omitempty"`
	IsActive         bool                       `json:"is_active"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// VehicleRef is the compact form embedded in trips and schedules.
type VehicleRef struct {
	ID              uint                `json:"id"`
	NumberPlate     string              `json:"number_plate"`
	Make            string              `json:"make"`
	Model           string              `json:"model"`
	Status          enums.VehicleStatus `json:"status"`
	CurrentOdometer int                 `json:"current_odometer"`
}

// StatusLogDTO is one row of the vehicle's status audit trail.
type StatusLogDTO struct {
	ID              uint                 `json:"id"`
	PreviousStatus  *enums.VehicleStatus `json:"previous_status,omitempty"`
	NewStatus       enums.VehicleStatus  `json:"new_status"`
	ChangedBy       *uint                `json:"changed_by,omitempty"`
	OdometerReading *int                 `json:"odometer_reading,omitempty"`
	Reason          *string              `json:"reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// TripSummary is a trip as listed in a vehicle's history.
type TripSummary struct {
	ID                 uint             `json:"id"`
	DriverID           uint             `json:"driver_id"`
	Driver             *users.UserRef   `json:"driver,omitempty"`
	StartTime          time.Time        `json:"start_time"`
	EndTime            *time.Time       `json:"end_time,omitempty"`
	StartOdometer      int              `json:"start_odometer"`
	EndOdometer        *int             `json:"end_odometer,omitempty"`
	CalculatedDistance *int             `json:"calculated_distance,omitempty"`
	Status             enums.TripStatus `json:"status"`
}

// ScheduleSummary is a maintenance schedule as listed in a vehicle's history.
type ScheduleSummary struct {
	ID              uint                  `json:"id"`
	MaintenanceType enums.MaintenanceType `json:"maintenance_type"`
	LastServiceDate *time.Time            `json:"last_service_date,omitempty"`
	NextDueDate     *time.Time            `json:"next_due_date,omitempty"`
	NextDueKm       *int                  `json:"next_due_km,omitempty"`
	EstimatedCost   decimal.NullDecimal   `json:"estimated_cost"`
}

// HistoryDTO gathers everything the vehicle detail page shows.
type HistoryDTO struct {
	Vehicle              *VehicleDTO       `json:"vehicle"`
	StatusLogs           []StatusLogDTO    `json:"status_logs"`
	RecentTrips          []TripSummary     `json:"recent_trips"`
	MaintenanceSchedules []ScheduleSummary `json:"maintenance_schedules"`
}

// CreateInput holds the validated payload to create a vehicle.
type CreateInput struct {
	NumberPlate      string
	VIN              *string
	QRCode           *string
	Make             string
	Model            string
	Year             int
	Color            *string
	FuelType         string
	Status           string
	CurrentOdometer  int
	FuelCapacity     *float64
	DepartmentID     *uint
	AssignedDriverID *uint
}

// UpdateInput holds optional changes. Reason is recorded on the status log
// when Status changes.
type UpdateInput struct {
	NumberPlate      *string
	VIN              *string
	QRCode           *string
	Make             *string
	Model            *string
	Year             *int
	Color            *string
	FuelType         *string
	Status           *string
	CurrentOdometer  *int
	FuelCapacity     *float64
	DepartmentID     *uint
	AssignedDriverID *uint
	Reason           *string
}

// ListFilter narrows vehicle listings. Retired (soft-deleted) vehicles are
// hidden unless IncludeInactive is set.
type ListFilter struct {
	Status           enums.VehicleStatus
	FuelType         enums.FuelType
	DepartmentID     *uint
	AssignedDriverID *uint
	Search           string
	IncludeInactive  bool
}

func FromModel(v *models.Vehicle) *VehicleDTO {
	if v == nil {
		return nil
	}
	return &VehicleDTO{
		ID:               v.ID,
		NumberPlate:      v.NumberPlate,
		VIN:              v.VIN,
		QRCode:           v.QRCode,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Color:            v.Color,
		FuelType:         v.FuelType,
		Status:           v.Status,
		CurrentOdometer:  v.CurrentOdometer,
		FuelCapacity:     v.FuelCapacity,
		DepartmentID:     v.DepartmentID,
		Department:       departments.RefFromModel(v.Department),
		AssignedDriverID: v.AssignedDriverID,
		AssignedDriver:   users.RefFromModel(v.AssignedDriver),
		IsActive:         v.IsActive,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func RefFromModel(v *models.Vehicle) *VehicleRef {
	if v == nil {
		return nil
	}
	return &VehicleRef{
		ID:              v.ID,
		NumberPlate:     v.NumberPlate,
		Make:            v.Make,
		Model:           v.Model,
		Status:          v.Status,
		CurrentOdometer: v.CurrentOdometer,
	}
}

func statusLogFromModel(l models.VehicleStatusLog) StatusLogDTO {
	return StatusLogDTO{
		ID:              l.ID,
		PreviousStatus:  l.PreviousStatus,
		NewStatus:       l.NewStatus,
		ChangedBy:       l.ChangedBy,
		OdometerReading: l.OdometerReading,
		Reason:          l.Reason,
		CreatedAt:       l.CreatedAt,
	}
}

func tripSummaryFromModel(t models.Trip) TripSummary {
	return TripSummary{
		ID:                 t.ID,
		DriverID:           t.DriverID,
		Driver:             users.RefFromModel(t.Driver),
		StartTime:          t.StartTime,
		EndTime:            t.EndTime,
		StartOdometer:      t.StartOdometer,
		EndOdometer:        t.EndOdometer,
		CalculatedDistance: t.CalculatedDistance,
		Status:             t.Status,
	}
}

func scheduleSummaryFromModel(m models.MaintenanceSchedule) ScheduleSummary {
	return ScheduleSummary{
		ID:              m.ID,
		MaintenanceType: m.MaintenanceType,
		LastServiceDate: m.LastServiceDate,
		NextDueDate:     m.NextDueDate,
		NextDueKm:       m.NextDueKm,
		EstimatedCost:   m.EstimatedCost,
	}
}
