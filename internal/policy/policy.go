// Package policy holds the authorization predicates consulted before every
// mutating operation. Enforcement lives here, at the operation boundary, so
// a client that fails to hide a button still cannot bypass the rules.
package policy

import (
	"fmt"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// CanPayBill allows tenants to pay bills that are not yet PAID. Owners
// never pay; paying an already-paid bill is rejected by the ledger with
// ErrAlreadyPaid before this predicate is even relevant.
func CanPayBill(user *domain.User, bill *domain.Bill) error {
	if user.Role != domain.RoleTenant {
		return fmt.Errorf("%w: only tenants can pay bills", domain.ErrNotAuthorized)
	}
	if bill.IsPaid() {
		return fmt.Errorf("%w: bill %s", domain.ErrAlreadyPaid, bill.ID)
	}
	return nil
}

// CanCreateFlat allows owners to create flats and bills.
func CanCreateFlat(user *domain.User) error {
	if user.Role != domain.RoleOwner {
		return fmt.Errorf("%w: only owners can manage flats", domain.ErrNotAuthorized)
	}
	return nil
}

// CanFileTicket allows tenants to file maintenance tickets. Owners may file
// on behalf of a flat via an explicit flat id, which the ticket board treats
// as a privileged variant of the same operation.
func CanFileTicket(user *domain.User) error {
	if user.Role != domain.RoleTenant && user.Role != domain.RoleOwner {
		return fmt.Errorf("%w: unknown role %q", domain.ErrNotAuthorized, string(user.Role))
	}
	return nil
}

// CanAdvanceTicket allows owners to advance tickets that are not yet
// RESOLVED.
func CanAdvanceTicket(user *domain.User, ticket *domain.MaintenanceTicket) error {
	if user.Role != domain.RoleOwner {
		return fmt.Errorf("%w: only owners can update ticket status", domain.ErrNotAuthorized)
	}
	if ticket.Status.IsTerminal() {
		return fmt.Errorf("%w: ticket %s is resolved", domain.ErrInvalidTransition, ticket.ID)
	}
	return nil
}
