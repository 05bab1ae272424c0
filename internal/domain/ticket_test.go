package domain

import (
	"errors"
	"testing"
)

func TestTicketStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   TicketStatus
		expected bool
	}{
		{TicketStatusOpen, false},
		{TicketStatusInProgress, false},
		{TicketStatusResolved, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTicketStatusIsValid(t *testing.T) {
	tests := []struct {
		status   TicketStatus
		expected bool
	}{
		{TicketStatusOpen, true},
		{TicketStatusInProgress, true},
		{TicketStatusResolved, true},
		{TicketStatus("CLOSED"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTicketStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     TicketStatus
		to       TicketStatus
		expected bool
	}{
		{"OPEN -> IN_PROGRESS", TicketStatusOpen, TicketStatusInProgress, true},
		{"OPEN -> RESOLVED", TicketStatusOpen, TicketStatusResolved, true},
		{"IN_PROGRESS -> RESOLVED", TicketStatusInProgress, TicketStatusResolved, true},

		{"OPEN -> OPEN", TicketStatusOpen, TicketStatusOpen, false},
		{"IN_PROGRESS -> OPEN", TicketStatusInProgress, TicketStatusOpen, false},
		{"RESOLVED -> OPEN", TicketStatusResolved, TicketStatusOpen, false},
		{"RESOLVED -> IN_PROGRESS", TicketStatusResolved, TicketStatusInProgress, false},
		{"RESOLVED -> RESOLVED", TicketStatusResolved, TicketStatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewMaintenanceTicket(t *testing.T) {
	tests := []struct {
		name        string
		flatID      string
		userID      string
		description string
		wantErr     bool
	}{
		{"valid ticket", "flat-123", "user-456", "Leaking tap", false},
		{"missing flat_id", "", "user-456", "Leaking tap", true},
		{"missing user_id", "flat-123", "", "Leaking tap", true},
		{"empty description", "flat-123", "user-456", "", true},
		{"whitespace description", "flat-123", "user-456", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := NewMaintenanceTicket(tt.flatID, tt.userID, tt.description)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !errors.Is(err, ErrValidation) {
					t.Errorf("Expected ErrValidation, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ticket.ID == "" {
				t.Error("Expected ticket ID to be set")
			}
			if ticket.Status != TicketStatusOpen {
				t.Errorf("Expected status OPEN, got %s", ticket.Status)
			}
			if ticket.CreatedAt.IsZero() {
				t.Error("Expected created_at to be set")
			}
		})
	}
}

func TestMaintenanceTicketTransitionTo(t *testing.T) {
	ticket, err := NewMaintenanceTicket("flat-123", "user-456", "Leaking tap")
	if err != nil {
		t.Fatalf("NewMaintenanceTicket failed: %v", err)
	}

	if err := ticket.TransitionTo(TicketStatusInProgress); err != nil {
		t.Fatalf("TransitionTo IN_PROGRESS failed: %v", err)
	}
	if ticket.Status != TicketStatusInProgress {
		t.Errorf("Expected status IN_PROGRESS, got %s", ticket.Status)
	}

	if err := ticket.TransitionTo(TicketStatusResolved); err != nil {
		t.Fatalf("TransitionTo RESOLVED failed: %v", err)
	}
	if ticket.ResolvedAt == nil {
		t.Error("Expected resolved_at to be set")
	}

	// RESOLVED is terminal
	err = ticket.TransitionTo(TicketStatusOpen)
	if err == nil {
		t.Error("Expected error when reopening a resolved ticket")
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestMaintenanceTicketTransitionToUnknownStatus(t *testing.T) {
	ticket, _ := NewMaintenanceTicket("flat-123", "user-456", "Broken lock")

	err := ticket.TransitionTo(TicketStatus("CLOSED"))
	if err == nil {
		t.Error("Expected error for unknown status")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
