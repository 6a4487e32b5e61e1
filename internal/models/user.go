package models

import "time"

// User represents a registered customer of the store.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin    bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
