package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// MemoryBillRepository is an in-memory implementation of BillRepository
// used by tests and the dev profile.
type MemoryBillRepository struct {
	mu    sync.RWMutex
	bills map[string]*domain.Bill
}

// NewMemoryBillRepository creates a new in-memory bill repository
func NewMemoryBillRepository() *MemoryBillRepository {
	return &MemoryBillRepository{
		bills: make(map[string]*domain.Bill),
	}
}

// Create creates a new bill
func (r *MemoryBillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bills[bill.ID] = copyBill(bill)
	return nil
}

// GetByID retrieves a bill by ID
func (r *MemoryBillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bill, exists := r.bills[id]
	if !exists {
		return nil, nil
	}
	return copyBill(bill), nil
}

// List retrieves bills ordered by due date then creation time, newest first
func (r *MemoryBillRepository) List(ctx context.Context, flatID *string) ([]*domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bills := make([]*domain.Bill, 0, len(r.bills))
	for _, bill := range r.bills {
		if flatID != nil && bill.FlatID != *flatID {
			continue
		}
		bills = append(bills, copyBill(bill))
	}
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].DueDate.Equal(bills[j].DueDate) {
			return bills[i].DueDate.After(bills[j].DueDate)
		}
		return bills[i].CreatedAt.After(bills[j].CreatedAt)
	})
	return bills, nil
}

// MarkPaid transitions a bill to PAID; the check-and-write happens under
// the write lock so at most one concurrent caller sees true.
func (r *MemoryBillRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill, exists := r.bills[id]
	if !exists || bill.Status == domain.BillStatusPaid {
		return false, nil
	}
	at := paidAt
	bill.Status = domain.BillStatusPaid
	bill.PaidAt = &at
	bill.UpdatedAt = paidAt
	return true, nil
}

// UnpaidStats returns the count and total amount of bills not yet paid
// across the given flats
func (r *MemoryBillRepository) UnpaidStats(ctx context.Context, flatIDs []string) (int, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope := make(map[string]struct{}, len(flatIDs))
	for _, id := range flatIDs {
		scope[id] = struct{}{}
	}

	var count int
	var total float64
	for _, bill := range r.bills {
		if bill.Status == domain.BillStatusPaid {
			continue
		}
		if _, ok := scope[bill.FlatID]; !ok {
			continue
		}
		count++
		total += bill.Amount
	}
	return count, total, nil
}

// copyBill creates a copy of a bill
func copyBill(b *domain.Bill) *domain.Bill {
	if b == nil {
		return nil
	}
	copied := *b
	if b.PaidAt != nil {
		paidAt := *b.PaidAt
		copied.PaidAt = &paidAt
	}
	return &copied
}
