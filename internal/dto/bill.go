package dto

import (
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// CreateBillRequest represents a request to create a bill
type CreateBillRequest struct {
	FlatID       string  `json:"flat_id" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DueDate      string  `json:"due_date" binding:"required"` // YYYY-MM-DD
	BillingMonth string  `json:"billing_month,omitempty"`     // e.g. "October 2023"
}

// Validate checks fields gin's binding tags cannot express
func (r *CreateBillRequest) Validate() (bool, string) {
	if !domain.BillType(r.Type).IsValid() {
		return false, "type must be one of SERVICE_CHARGE, WATER, ELECTRICITY, MAINTENANCE"
	}
	if _, err := time.Parse("2006-01-02", r.DueDate); err != nil {
		return false, "due_date must be a valid date in YYYY-MM-DD format"
	}
	return true, ""
}

// ListBillsQuery represents bill listing filters
type ListBillsQuery struct {
	Status  string  `form:"status"` // ALL, PAID, UNPAID, OVERDUE
	FlatID  *string `form:"flat_id"`
	Page    int     `form:"page"`
	PerPage int     `form:"per_page"`
}

// SetDefaults applies default pagination values
func (q *ListBillsQuery) SetDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
	if q.Status == "" {
		q.Status = "ALL"
	}
}

// Validate checks the status filter
func (q *ListBillsQuery) Validate() (bool, string) {
	switch q.Status {
	case "", "ALL":
		return true, ""
	}
	if !domain.BillStatus(q.Status).IsValid() {
		return false, "status must be one of ALL, PAID, UNPAID, OVERDUE"
	}
	return true, ""
}

// BillResponse represents a bill in API responses. Status carries the
// effective status, with the OVERDUE projection already applied.
type BillResponse struct {
	ID           string     `json:"id"`
	FlatID       string     `json:"flat_id"`
	Type         string     `json:"type"`
	TypeLabel    string     `json:"type_label"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	DueDate      string     `json:"due_date"`
	BillingMonth string     `json:"billing_month,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListBillsResponse represents a paginated bill listing
type ListBillsResponse struct {
	Bills      []BillResponse `json:"bills"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// FromBill converts a domain Bill to BillResponse, projecting the
// effective status as of now.
func FromBill(b *domain.Bill, now time.Time) *BillResponse {
	return &BillResponse{
		ID:           b.ID,
		FlatID:       b.FlatID,
		Type:         string(b.Type),
		TypeLabel:    b.Type.Label(),
		Amount:       b.Amount,
		Status:       string(b.EffectiveStatus(now)),
		DueDate:      b.DueDate.Format("2006-01-02"),
		BillingMonth: b.BillingMonth,
		PaidAt:       b.PaidAt,
		CreatedAt:    b.CreatedAt,
	}
}
