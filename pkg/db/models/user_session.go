package models

import "time"

// UserSession records an issued bearer token. Deactivation on logout is
// advisory: the JWT stays valid until it expires.
type UserSession struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	TokenID   string    `gorm:"column:token_id;type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	IPAddress *string   `gorm:"column:ip_address;type:varchar(64)"`
	UserAgent *string   `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
