package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the workflow state of a maintenance ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
)

// validTicketTransitions defines allowed status transitions.
// Key is current status, value is the list of allowed next statuses.
// Transitions are strictly forward; RESOLVED is terminal.
var validTicketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved},
	TicketStatusInProgress: {TicketStatusResolved},
	TicketStatusResolved:   {},
}

// IsValid returns true if the status is a known ticket status.
func (s TicketStatus) IsValid() bool {
	_, exists := validTicketTransitions[s]
	return exists
}

// IsTerminal returns true if no further transition is allowed.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved
}

// CanTransitionTo returns true if the transition to target is allowed.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	allowed, exists := validTicketTransitions[s]
	if !exists {
		return false
	}
	for _, next := range allowed {
		if next == target {
			return true
		}
	}
	return false
}

// MaintenanceTicket represents a maintenance request filed against a flat.
// CreatedAt is immutable and drives listing order (most recent first).
type MaintenanceTicket struct {
	ID          string       `json:"id"`
	FlatID      string       `json:"flat_id"`
	UserID      string       `json:"user_id"` // reporter
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}

// NewMaintenanceTicket creates an OPEN ticket filed by userID against flatID.
func NewMaintenanceTicket(flatID, userID, description string) (*MaintenanceTicket, error) {
	if flatID == "" {
		return nil, fmt.Errorf("%w: flat id is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	now := time.Now()
	return &MaintenanceTicket{
		ID:          uuid.New().String(),
		FlatID:      flatID,
		UserID:      userID,
		Description: description,
		Status:      TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TransitionTo advances the ticket to target if the edge is allowed.
func (t *MaintenanceTicket) TransitionTo(target TicketStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, string(target))
	}
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, t.Status, target)
	}
	now := time.Now()
	t.Status = target
	t.UpdatedAt = now
	if target.IsTerminal() {
		t.ResolvedAt = &now
	}
	return nil
}
