package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// MemoryFlatRepository is an in-memory implementation of FlatRepository
// used by tests and the dev profile.
type MemoryFlatRepository struct {
	mu    sync.RWMutex
	flats map[string]*domain.Flat
}

// NewMemoryFlatRepository creates a new in-memory flat repository
func NewMemoryFlatRepository() *MemoryFlatRepository {
	return &MemoryFlatRepository{
		flats: make(map[string]*domain.Flat),
	}
}

// Create creates a new flat
func (r *MemoryFlatRepository) Create(ctx context.Context, flat *domain.Flat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flats[flat.ID] = copyFlat(flat)
	return nil
}

// GetByID retrieves a flat by ID
func (r *MemoryFlatRepository) GetByID(ctx context.Context, id string) (*domain.Flat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flat, exists := r.flats[id]
	if !exists || flat.DeletedAt != nil {
		return nil, nil
	}
	return copyFlat(flat), nil
}

// GetByTenant retrieves the flat a tenant is assigned to, if any
func (r *MemoryFlatRepository) GetByTenant(ctx context.Context, tenantID string) (*domain.Flat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, flat := range r.flats {
		if flat.DeletedAt == nil && flat.TenantID != nil && *flat.TenantID == tenantID {
			return copyFlat(flat), nil
		}
	}
	return nil, nil
}

// List retrieves all flats ordered by name
func (r *MemoryFlatRepository) List(ctx context.Context) ([]*domain.Flat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flats := make([]*domain.Flat, 0, len(r.flats))
	for _, flat := range r.flats {
		if flat.DeletedAt == nil {
			flats = append(flats, copyFlat(flat))
		}
	}
	sort.Slice(flats, func(i, j int) bool {
		return flats[i].Name < flats[j].Name
	})
	return flats, nil
}

// ExistsByOwnerAndName checks if an owner already has a flat with the name
func (r *MemoryFlatRepository) ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, flat := range r.flats {
		if flat.DeletedAt == nil && flat.OwnerID == ownerID && flat.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// SetTenant occupies a vacant flat; check-and-write under the write lock
func (r *MemoryFlatRepository) SetTenant(ctx context.Context, flatID, tenantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flat, exists := r.flats[flatID]
	if !exists || flat.DeletedAt != nil || flat.IsOccupied() {
		return false, nil
	}
	id := tenantID
	flat.TenantID = &id
	flat.UpdatedAt = time.Now()
	return true, nil
}

// IDsByOwner returns the ids of the owner's active flats
func (r *MemoryFlatRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for _, flat := range r.flats {
		if flat.DeletedAt == nil && flat.OwnerID == ownerID {
			ids = append(ids, flat.ID)
		}
	}
	return ids, nil
}

// Stats returns aggregate occupancy numbers for one owner's flats
func (r *MemoryFlatRepository) Stats(ctx context.Context, ownerID string) (*FlatStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &FlatStats{}
	for _, flat := range r.flats {
		if flat.DeletedAt != nil || flat.OwnerID != ownerID {
			continue
		}
		stats.Total++
		if flat.IsOccupied() {
			stats.Occupied++
			stats.MonthlyRevenue += flat.MonthlyCost
		}
	}
	return stats, nil
}

// copyFlat creates a copy of a flat
func copyFlat(f *domain.Flat) *domain.Flat {
	if f == nil {
		return nil
	}
	copied := *f
	if f.TenantID != nil {
		tenantID := *f.TenantID
		copied.TenantID = &tenantID
	}
	if f.DeletedAt != nil {
		deletedAt := *f.DeletedAt
		copied.DeletedAt = &deletedAt
	}
	return &copied
}
