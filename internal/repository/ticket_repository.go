package repository

import (
	"context"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// TicketRepository defines the interface for maintenance ticket data access
type TicketRepository interface {
	// Create creates a new ticket
	Create(ctx context.Context, ticket *domain.MaintenanceTicket) error
	// GetByID retrieves a ticket by ID
	GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error)
	// List retrieves tickets ordered by creation time descending, with
	// optional status and flat filters and pagination
	List(ctx context.Context, status *domain.TicketStatus, flatID *string, limit, offset int) ([]*domain.MaintenanceTicket, int, error)
	// UpdateStatus advances the ticket from the previously-read status to
	// the target status. Returns false when the stored status no longer
	// matches from, i.e. a concurrent writer got there first.
	UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, updatedAt time.Time, resolvedAt *time.Time) (bool, error)
	// CountOpen returns the number of unresolved tickets across the
	// given flats. An empty flat set yields zero.
	CountOpen(ctx context.Context, flatIDs []string) (int, error)
}
