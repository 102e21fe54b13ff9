package models

import "time"

type Department struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;type:varchar(10);not null;uniqueIndex"`
	Name        string    `gorm:"column:name;type:varchar(100);not null"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
