package dto

import (
	"strings"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// CreateTicketRequest represents a request to file a maintenance ticket.
// FlatID is only honoured for owners filing on behalf of a flat; tenants
// always file against their assigned flat.
type CreateTicketRequest struct {
	Description string `json:"description" binding:"required"`
	FlatID      string `json:"flat_id,omitempty"`
}

// Validate checks fields gin's binding tags cannot express
func (r *CreateTicketRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Description) == "" {
		return false, "description must not be blank"
	}
	return true, ""
}

// AdvanceTicketRequest represents a request to advance a ticket's status
type AdvanceTicketRequest struct {
	Status string `json:"status" binding:"required"`
}

// Validate checks that the target status names a real workflow state
func (r *AdvanceTicketRequest) Validate() (bool, string) {
	if !domain.TicketStatus(r.Status).IsValid() {
		return false, "status must be one of OPEN, IN_PROGRESS, RESOLVED"
	}
	return true, ""
}

// ListTicketsQuery represents ticket listing filters
type ListTicketsQuery struct {
	Status  string  `form:"status"` // ALL, OPEN, IN_PROGRESS, RESOLVED
	FlatID  *string `form:"flat_id"`
	Page    int     `form:"page"`
	PerPage int     `form:"per_page"`
}

// SetDefaults applies default pagination values
func (q *ListTicketsQuery) SetDefaults() {
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
func (q *ListTicketsQuery) Validate() (bool, string) {
	switch q.Status {
	case "", "ALL":
		return true, ""
	}
	if !domain.TicketStatus(q.Status).IsValid() {
		return false, "status must be one of ALL, OPEN, IN_PROGRESS, RESOLVED"
	}
	return true, ""
}

// TicketResponse represents a maintenance ticket in API responses
type TicketResponse struct {
	ID          string     `json:"id"`
	FlatID      string     `json:"flat_id"`
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// ListTicketsResponse represents a paginated ticket listing
type ListTicketsResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// FromTicket converts a domain MaintenanceTicket to TicketResponse
func FromTicket(t *domain.MaintenanceTicket) *TicketResponse {
	return &TicketResponse{
		ID:          t.ID,
		FlatID:      t.FlatID,
		UserID:      t.UserID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		ResolvedAt:  t.ResolvedAt,
	}
}
