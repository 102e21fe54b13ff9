package departments

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
)

// DepartmentDTO is the transport shape for departments. Counts are only
// filled on single-department reads.
type DepartmentDTO struct {
	ID           uint      `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	VehicleCount *int64    `json:"vehicle_count,omitempty"`
	UserCount    *int64    `json:"user_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput holds the fields accepted when creating a department.
type CreateInput struct {
	Code        string
	Name        string
	Description *string
}

// UpdateInput holds optional department changes; nil fields are left alone.
type UpdateInput struct {
	Code        *string
	Name        *string
	Description *string
	IsActive    *bool
}

func FromModel(d *models.Department) *DepartmentDTO {
	if d == nil {
		return nil
	}
	return &DepartmentDTO{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// DepartmentRef is the compact form embedded in users and vehicles.
type DepartmentRef struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func RefFromModel(d *models.Department) *DepartmentRef {
	if d == nil {
		return nil
	}
	return &DepartmentRef{ID: d.ID, Code: d.Code, Name: d.Name}
}
