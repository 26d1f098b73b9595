package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100" json:"name"`
	Email        *string    `gorm:"size:320;uniqueIndex" json:"email,omitempty"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	OpenID       *string    `gorm:"column:open_id;size:64;uniqueIndex" json:"-"`
	LoginMethod  string     `gorm:"size:64" json:"login_method,omitempty"`
	Role         string     `gorm:"size:20;default:user" json:"role"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
