package auth

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/internal/users"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	CoynoID  string `json:"coyno_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ClientInfo describes where a login came from; stored on the session row.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// LoginResponse contains the bearer token and the authenticated user.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *users.UserDTO `json:"user"`
}

// RegisterRequest creates a back office account. Password is optional:
// accounts without one exist for record keeping and cannot log in.
type RegisterRequest struct {
	CoynoID      string  `json:"coyno_id" validate:"required,max=50"`
	Email        string  `json:"email" validate:"required,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	Phone        *string `json:"phone,omitempty"`
	UserRole     *string `json:"user_role,omitempty"`
	DepartmentID *uint   `json:"department_id,omitempty"`
}

// AddAdminRequest creates an administrator. A temporary password is
// generated and returned once when none is supplied.
type AddAdminRequest struct {
	CoynoID      string  `json:"coyno_id" validate:"required,max=50"`
	Email        string  `json:"email" validate:"required,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	Phone        *string `json:"phone,omitempty"`
	DepartmentID *uint   `json:"department_id,omitempty"`
}

// AddAdminResponse echoes the created admin and any generated password.
type AddAdminResponse struct {
	User              *users.UserDTO `json:"user"`
	TemporaryPassword string         `json:"temporary_password,omitempty"`
}

// Actor identifies the authenticated caller of a privileged operation.
type Actor struct {
	UserID uint
	Role   enums.UserRole
}
