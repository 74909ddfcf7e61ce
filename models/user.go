package models

import (
	"time"
)

// Role enum for users
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
)

// Valid reports whether r is a declared role value.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

// User model for authentication
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Name         *string `json:"name"`
	Role         Role    `gorm:"type:varchar(20);default:'USER'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the outward projection of a User. The password hash has no
// field here, so it can never leak through serialization.
type PublicUser struct {
	ID    uint    `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  Role    `json:"role"`
}

// Public returns the outward projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
