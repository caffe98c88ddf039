package models

import (
	"time"
)

// Role determines which views and actions a user may access.
type Role string

const (
	RoleStudent Role = "student"
	RoleClub    Role = "club"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleStudent || r == RoleClub
}

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	// ClubName is set only for club accounts.
	ClubName  *string   `json:"club_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
