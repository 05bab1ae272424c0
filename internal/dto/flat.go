package dto

import (
	"strings"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// CreateFlatRequest represents a request to create a flat
type CreateFlatRequest struct {
	Name        string  `json:"name" binding:"required"`
	MonthlyCost float64 `json:"monthly_cost" binding:"gte=0"`
	Description string  `json:"description,omitempty"`
}

// Validate checks fields gin's binding tags cannot express
func (r *CreateFlatRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "name must not be blank"
	}
	return true, ""
}

// AssignTenantRequest represents a request to assign a tenant to a flat
type AssignTenantRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
}

// FlatResponse represents a flat in API responses
type FlatResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id"`
	TenantID    *string   `json:"tenant_id,omitempty"`
	Occupied    bool      `json:"occupied"`
	MonthlyCost float64   `json:"monthly_cost"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromFlat converts a domain Flat to FlatResponse
func FromFlat(f *domain.Flat) *FlatResponse {
	return &FlatResponse{
		ID:          f.ID,
		Name:        f.Name,
		OwnerID:     f.OwnerID,
		TenantID:    f.TenantID,
		Occupied:    f.IsOccupied(),
		MonthlyCost: f.MonthlyCost,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}
