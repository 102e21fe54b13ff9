package users

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           uint                       `json:"id"`
	CoynoID      string                     `json:"coyno_id"`
	Email        string                     `json:"email"`
	FirstName    string                     `json:"first_name"`
	LastName     string                     `json:"last_name"`
	Phone        *string                    `json:"phone,omitempty"`
	UserRole     enums.UserRole             `json:"user_role"`
	DepartmentID *uint                      `json:"department_id,omitempty"`
	Department   *departments.DepartmentRef `json:"department,omitempty"`
	IsActive     bool                       `json:"is_active"`
	LastLoginAt  *time.Time                 `json:"last_login_at,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// UserRef is the compact form embedded in vehicles and trips.
type UserRef struct {
	ID        uint           `json:"id"`
	CoynoID   string         `json:"coyno_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	UserRole  enums.UserRole `json:"user_role"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	CoynoID      string
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	Phone        *string
	UserRole     enums.UserRole
	DepartmentID *uint
}

// UpdateInput carries optional profile changes; nil fields are untouched.
type UpdateInput struct {
	Email        *string
	FirstName    *string
	LastName     *string
	Phone        *string
	UserRole     *string
	DepartmentID *uint
}

// ListFilter narrows user listings. Zero values mean "any".
type ListFilter struct {
	Role         enums.UserRole
	DepartmentID *uint
	IsActive     *bool
	Search       string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		CoynoID:      u.CoynoID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		UserRole:     u.UserRole,
		DepartmentID: u.DepartmentID,
		Department:   departments.RefFromModel(u.Department),
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func RefFromModel(u *models.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{
		ID:        u.ID,
		CoynoID:   u.CoynoID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserRole:  u.UserRole,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.UserRole
	if role == "" {
		role = enums.UserRoleDriver
	}
	return &models.User{
		CoynoID:      c.CoynoID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		UserRole:     role,
		DepartmentID: c.DepartmentID,
		IsActive:     true,
	}
}
