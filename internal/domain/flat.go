package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flat represents a single unit owned by an owner. TenantID references the
// tenant currently housed in the flat; a flat with no tenant is vacant.
// Bills and tickets reference flats by id only, so deleting a flat does not
// rewrite bill or ticket history.
type Flat struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"` // e.g. "A-101"
	OwnerID     string     `json:"owner_id"`
	TenantID    *string    `json:"tenant_id,omitempty"`
	MonthlyCost float64    `json:"monthly_cost"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewFlat creates a vacant flat owned by ownerID.
func NewFlat(ownerID, name string, monthlyCost float64, description string) (*Flat, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: flat name is required", ErrValidation)
	}
	if monthlyCost < 0 {
		return nil, fmt.Errorf("%w: monthly cost must not be negative", ErrValidation)
	}

	now := time.Now()
	return &Flat{
		ID:          uuid.New().String(),
		Name:        name,
		OwnerID:     ownerID,
		MonthlyCost: monthlyCost,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOccupied returns true if a tenant is assigned to the flat.
func (f *Flat) IsOccupied() bool {
	return f.TenantID != nil && *f.TenantID != ""
}
