package policy

import (
	"errors"
	"testing"

	"github.com/Akashdhk/Housemate/internal/domain"
)

func ownerUser() *domain.User {
	return &domain.User{ID: "owner-1", Role: domain.RoleOwner}
}

func tenantUser() *domain.User {
	flatID := "flat-1"
	return &domain.User{ID: "tenant-1", Role: domain.RoleTenant, FlatID: &flatID}
}

func TestCanPayBill(t *testing.T) {
	unpaid := &domain.Bill{ID: "b1", Status: domain.BillStatusUnpaid}
	paid := &domain.Bill{ID: "b2", Status: domain.BillStatusPaid}

	tests := []struct {
		name    string
		user    *domain.User
		bill    *domain.Bill
		wantErr error
	}{
		{"tenant pays unpaid bill", tenantUser(), unpaid, nil},
		{"owner cannot pay", ownerUser(), unpaid, domain.ErrNotAuthorized},
		{"owner cannot pay paid bill either", ownerUser(), paid, domain.ErrNotAuthorized},
		{"tenant cannot pay paid bill", tenantUser(), paid, domain.ErrAlreadyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanPayBill(tt.user, tt.bill)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCanCreateFlat(t *testing.T) {
	if err := CanCreateFlat(ownerUser()); err != nil {
		t.Errorf("Unexpected error for owner: %v", err)
	}
	if err := CanCreateFlat(tenantUser()); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("Expected ErrNotAuthorized for tenant, got %v", err)
	}
}

func TestCanFileTicket(t *testing.T) {
	if err := CanFileTicket(tenantUser()); err != nil {
		t.Errorf("Unexpected error for tenant: %v", err)
	}
	if err := CanFileTicket(ownerUser()); err != nil {
		t.Errorf("Unexpected error for owner: %v", err)
	}
	unknown := &domain.User{ID: "u", Role: domain.Role("ADMIN")}
	if err := CanFileTicket(unknown); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("Expected ErrNotAuthorized for unknown role, got %v", err)
	}
}

func TestCanAdvanceTicket(t *testing.T) {
	open := &domain.MaintenanceTicket{ID: "t1", Status: domain.TicketStatusOpen}
	resolved := &domain.MaintenanceTicket{ID: "t2", Status: domain.TicketStatusResolved}

	if err := CanAdvanceTicket(ownerUser(), open); err != nil {
		t.Errorf("Unexpected error for owner on open ticket: %v", err)
	}
	if err := CanAdvanceTicket(tenantUser(), open); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("Expected ErrNotAuthorized for tenant, got %v", err)
	}
	if err := CanAdvanceTicket(ownerUser(), resolved); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition for resolved ticket, got %v", err)
	}
}
