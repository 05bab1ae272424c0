package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// MemoryTicketRepository is an in-memory implementation of TicketRepository
// used by tests and the dev profile.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*domain.MaintenanceTicket
}

// NewMemoryTicketRepository creates a new in-memory ticket repository
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[string]*domain.MaintenanceTicket),
	}
}

// Create creates a new ticket
func (r *MemoryTicketRepository) Create(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[ticket.ID] = copyTicket(ticket)
	return nil
}

// GetByID retrieves a ticket by ID
func (r *MemoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, exists := r.tickets[id]
	if !exists {
		return nil, nil
	}
	return copyTicket(ticket), nil
}

// List retrieves tickets ordered by creation time descending
func (r *MemoryTicketRepository) List(ctx context.Context, status *domain.TicketStatus, flatID *string, limit, offset int) ([]*domain.MaintenanceTicket, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.MaintenanceTicket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if status != nil && ticket.Status != *status {
			continue
		}
		if flatID != nil && ticket.FlatID != *flatID {
			continue
		}
		matched = append(matched, copyTicket(ticket))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*domain.MaintenanceTicket{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// UpdateStatus advances the ticket keyed on the previously-read status;
// the check-and-write happens under the write lock.
func (r *MemoryTicketRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, updatedAt time.Time, resolvedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, exists := r.tickets[id]
	if !exists || ticket.Status != from {
		return false, nil
	}
	ticket.Status = to
	ticket.UpdatedAt = updatedAt
	if resolvedAt != nil {
		at := *resolvedAt
		ticket.ResolvedAt = &at
	}
	return true, nil
}

// CountOpen returns the number of unresolved tickets across the given flats
func (r *MemoryTicketRepository) CountOpen(ctx context.Context, flatIDs []string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope := make(map[string]struct{}, len(flatIDs))
	for _, id := range flatIDs {
		scope[id] = struct{}{}
	}

	var count int
	for _, ticket := range r.tickets {
		if ticket.Status == domain.TicketStatusResolved {
			continue
		}
		if _, ok := scope[ticket.FlatID]; !ok {
			continue
		}
		count++
	}
	return count, nil
}

// copyTicket creates a copy of a ticket
func copyTicket(t *domain.MaintenanceTicket) *domain.MaintenanceTicket {
	if t == nil {
		return nil
	}
	copied := *t
	if t.ResolvedAt != nil {
		resolvedAt := *t.ResolvedAt
		copied.ResolvedAt = &resolvedAt
	}
	return &copied
}
