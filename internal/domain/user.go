package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user may do in the system.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleTenant Role = "TENANT"
)

// IsValid returns true if the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleTenant
}

// User represents an authenticated actor. Role is immutable after
// registration. FlatID is set only for tenants that have been assigned
// a flat by an owner.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FlatID       *string   `json:"flat_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with a generated ID.
func NewUser(name, email, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasFlat returns true if the user has an assigned flat.
func (u *User) HasFlat() bool {
	return u.FlatID != nil && *u.FlatID != ""
}
