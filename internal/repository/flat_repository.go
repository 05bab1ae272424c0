package repository

import (
	"context"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// FlatStats holds aggregate occupancy numbers for the owner dashboard.
type FlatStats struct {
	Total          int
	Occupied       int
	MonthlyRevenue float64
}

// FlatRepository defines the interface for flat data access
type FlatRepository interface {
	// Create creates a new flat
	Create(ctx context.Context, flat *domain.Flat) error
	// GetByID retrieves a flat by ID
	GetByID(ctx context.Context, id string) (*domain.Flat, error)
	// GetByTenant retrieves the flat a tenant is assigned to, if any
	GetByTenant(ctx context.Context, tenantID string) (*domain.Flat, error)
	// List retrieves all flats ordered by name
	List(ctx context.Context) ([]*domain.Flat, error)
	// ExistsByOwnerAndName checks if an owner already has a flat with the name
	ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error)
	// SetTenant occupies a vacant flat with the tenant. Returns false when
	// the flat is gone or already occupied.
	SetTenant(ctx context.Context, flatID, tenantID string) (bool, error)
	// IDsByOwner returns the ids of the owner's active flats
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	// Stats returns aggregate occupancy numbers for one owner's flats
	Stats(ctx context.Context, ownerID string) (*FlatStats, error)
}
