package maintenance

import (
	"math"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/vehicles"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ScheduleDTO is the transport shape for a maintenance schedule with its
// computed due status.
type ScheduleDTO struct {
	ID              uint                  `json:"id"`
	VehicleID       uint                  `json:"vehicle_id"`
	Vehicle         *vehicles.VehicleRef  `json:"vehicle,omitempty"`
	MaintenanceType enums.MaintenanceType `json:"maintenance_type"`
	Description     *string               `json:"description,omitempty"`
	IntervalKm      *int                  `json:"interval_km,omitempty"`
	IntervalMonths  *int                  `json:"interval_months,omitempty"`
	LastServiceDate *time.Time            `json:"last_service_date,omitempty"`
	LastServiceKm   *int                  `json:"last_service_km,omitempty"`
	NextDueDate     *time.Time            `json:"next_due_date,omitempty"`
	NextDueKm       *int                  `json:"next_due_km,omitempty"`
	EstimatedCost   decimal.NullDecimal   `json:"estimated_cost"`
	LastCost        decimal.NullDecimal   `json:"last_cost"`
	Notes           *string               `json:"notes,omitempty"`
	IsActive        bool                  `json:"is_active"`
	DueStatus       enums.DueStatus       `json:"due_status"`
	DaysUntilDue    *int                  `json:"days_until_due,omitempty"`
	KmUntilDue      *int                  `json:"km_until_due,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// StatsDTO backs the maintenance dashboard widget.
type StatsDTO struct {
	Total            int                           `json:"total"`
	Overdue          int                           `json:"overdue"`
	DueSoon          int                           `json:"due_soon"`
	Scheduled        int                           `json:"scheduled"`
	Unscheduled      int                           `json:"unscheduled"`
	ByType           map[enums.MaintenanceType]int `json:"by_type"`
	Upcoming         []ScheduleDTO                 `json:"upcoming"`
	EstimatedDueCost decimal.Decimal               `json:"estimated_due_cost"`
}

// CreateInput holds the payload to create a schedule. Next due values are
// projected from the last service when omitted.
type CreateInput struct {
	VehicleID       uint
	MaintenanceType string
	Description     *string
	IntervalKm      *int
	IntervalMonths  *int
	LastServiceDate *time.Time
	LastServiceKm   *int
	NextDueDate     *time.Time
	NextDueKm       *int
	EstimatedCost   *decimal.Decimal
	Notes           *string
}

// UpdateInput holds optional schedule changes; nil fields are untouched.
type UpdateInput struct {
	MaintenanceType *string
	Description     *string
	IntervalKm      *int
	IntervalMonths  *int
	LastServiceDate *time.Time
	LastServiceKm   *int
	NextDueDate     *time.Time
	NextDueKm       *int
	EstimatedCost   *decimal.Decimal
	Notes           *string
}

// CompleteInput records a performed service. Date and km default to now and
// the vehicle's odometer.
type CompleteInput struct {
	ServiceDate *time.Time
	ServiceKm   *int
	Cost        *decimal.Decimal
	Notes       *string
}

// ListFilter narrows schedule listings.
type ListFilter struct {
	VehicleID       *uint
	MaintenanceType enums.MaintenanceType
	DueStatus       enums.DueStatus
}

// FromModel converts a schedule, computing due status against now.
func FromModel(m *models.MaintenanceSchedule, now time.Time) *ScheduleDTO {
	if m == nil {
		return nil
	}
	odometer := VehicleOdometer(*m)
	out := &ScheduleDTO{
		ID:              m.ID,
		VehicleID:       m.VehicleID,
		Vehicle:         vehicles.RefFromModel(m.Vehicle),
		MaintenanceType: m.MaintenanceType,
		Description:     m.Description,
		IntervalKm:      m.IntervalKm,
		IntervalMonths:  m.IntervalMonths,
		LastServiceDate: m.LastServiceDate,
		LastServiceKm:   m.LastServiceKm,
		NextDueDate:     m.NextDueDate,
		NextDueKm:       m.NextDueKm,
		EstimatedCost:   m.EstimatedCost,
		LastCost:        m.LastCost,
		Notes:           m.Notes,
		IsActive:        m.IsActive,
		DueStatus:       DueStatus(*m, odometer, now),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.NextDueDate != nil {
		days := int(math.Floor(m.NextDueDate.Sub(now).Hours() / 24))
		out.DaysUntilDue = &days
	}
	if m.NextDueKm != nil && m.Vehicle != nil {
		km := *m.NextDueKm - odometer
		out.KmUntilDue = &km
	}
	return out
}
