package repository

import (
	"context"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// BillRepository defines the interface for bill data access
type BillRepository interface {
	// Create creates a new bill
	Create(ctx context.Context, bill *domain.Bill) error
	// GetByID retrieves a bill by ID
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	// List retrieves bills, optionally scoped to a flat, ordered by due
	// date descending then creation time descending. Status is the stored
	// status; the OVERDUE projection is applied by the caller.
	List(ctx context.Context, flatID *string) ([]*domain.Bill, error)
	// MarkPaid transitions the bill to PAID iff it is not already PAID.
	// Returns false when the bill was missing or another caller won the
	// race; at most one concurrent caller ever sees true.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
	// UnpaidStats returns the count and total amount of bills not yet
	// paid across the given flats. An empty flat set yields zeros.
	UnpaidStats(ctx context.Context, flatIDs []string) (count int, total float64, err error)
}
