package model

import (
	"time"
)

type UserRole string

const (
	Client     UserRole = "client"
	Freelancer UserRole = "freelancer"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"size:20;default:'client'" json:"role"`
	Avatar    string     `gorm:"size:255" json:"avatar"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Identity 已认证的调用者，由 controller 从 JWT 中取出后显式传给 service
type Identity struct {
	UserID uint
	Role   UserRole
}

func (i Identity) IsAdmin() bool {
	return i.Role == Admin
}
