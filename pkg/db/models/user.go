package models

import (
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
)

// User is a back office account. Drivers, mechanics, managers and admins share
// the table and are told apart by UserRole.
type User struct {
	ID           uint           `gorm:"primaryKey"`
	CoynoID      string         `gorm:"column:coyno_id;type:varchar(50);not null;uniqueIndex"`
	Email        string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash *string        `gorm:"column:password_hash"`
	FirstName    string         `gorm:"column:first_name;type:varchar(100);not null"`
	LastName     string         `gorm:"column:last_name;type:varchar(100);not null"`
	Phone        *string        `gorm:"column:phone;type:varchar(30)"`
	UserRole     enums.UserRole `gorm:"column:user_role;type:varchar(20);not null;default:'driver'"`
	DepartmentID *uint          `gorm:"column:department_id;index"`
	Department   *Department    `gorm:"foreignKey:DepartmentID"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins first and last name for reports.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
