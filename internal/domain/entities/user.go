package entities

import (
	"time"
)

// Role is the closed set of actor roles in the marketplace.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleVendor    Role = "VENDOR"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleVendor:
		return true
	}
	return false
}

// Actor is the authenticated identity performing an operation. It is
// resolved once at the HTTP boundary and passed explicitly into every
// core operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// User represents a registered account. Role is immutable after creation.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
