package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BillType identifies what a bill charges for.
type BillType string

const (
	BillTypeServiceCharge BillType = "SERVICE_CHARGE"
	BillTypeWater         BillType = "WATER"
	BillTypeElectricity   BillType = "ELECTRICITY"
	BillTypeMaintenance   BillType = "MAINTENANCE"
)

// IsValid returns true if the bill type is a known type.
func (t BillType) IsValid() bool {
	switch t {
	case BillTypeServiceCharge, BillTypeWater, BillTypeElectricity, BillTypeMaintenance:
		return true
	}
	return false
}

// Label returns the display label for the bill type.
func (t BillType) Label() string {
	switch t {
	case BillTypeServiceCharge:
		return "Service Charge"
	case BillTypeWater:
		return "Water Bill"
	case BillTypeElectricity:
		return "Electricity Bill"
	case BillTypeMaintenance:
		return "Maintenance Fee"
	}
	return string(t)
}

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "UNPAID"
	BillStatusOverdue BillStatus = "OVERDUE"
	BillStatusPaid    BillStatus = "PAID"
)

// IsValid returns true if the status is a known bill status.
func (s BillStatus) IsValid() bool {
	return s == BillStatusUnpaid || s == BillStatusOverdue || s == BillStatusPaid
}

// Bill represents a charge against a flat. Stored status is only ever
// UNPAID or PAID; OVERDUE is a projection over UNPAID plus a passed due
// date, applied on every read path via EffectiveStatus.
type Bill struct {
	ID           string     `json:"id"`
	FlatID       string     `json:"flat_id"`
	Type         BillType   `json:"type"`
	Amount       float64    `json:"amount"`
	Status       BillStatus `json:"status"`
	DueDate      time.Time  `json:"due_date"`
	BillingMonth string     `json:"billing_month"` // e.g. "October 2023"
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewBill creates an UNPAID bill against flatID.
func NewBill(flatID string, billType BillType, amount float64, dueDate time.Time, billingMonth string) (*Bill, error) {
	if flatID == "" {
		return nil, fmt.Errorf("%w: flat id is required", ErrValidation)
	}
	if !billType.IsValid() {
		return nil, fmt.Errorf("%w: unknown bill type %q", ErrValidation, string(billType))
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrValidation)
	}

	now := time.Now()
	return &Bill{
		ID:           uuid.New().String(),
		FlatID:       flatID,
		Type:         billType,
		Amount:       amount,
		Status:       BillStatusUnpaid,
		DueDate:      dueDate,
		BillingMonth: billingMonth,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// EffectiveStatus returns the status as it must be surfaced to readers:
// an UNPAID bill whose due date has passed reads as OVERDUE. PAID is
// terminal and is never overridden.
func (b *Bill) EffectiveStatus(now time.Time) BillStatus {
	if b.Status == BillStatusPaid {
		return BillStatusPaid
	}
	if dateBefore(b.DueDate, now) {
		return BillStatusOverdue
	}
	return BillStatusUnpaid
}

// IsPaid returns true if the bill has reached its terminal state.
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// MarkPaid transitions the bill to PAID. PAID is terminal.
func (b *Bill) MarkPaid() error {
	if b.Status == BillStatusPaid {
		return fmt.Errorf("%w: bill %s", ErrAlreadyPaid, b.ID)
	}
	now := time.Now()
	b.Status = BillStatusPaid
	b.PaidAt = &now
	b.UpdatedAt = now
	return nil
}

// dateBefore reports whether the calendar date of due is strictly before
// the calendar date of now. A bill due today is not yet overdue.
func dateBefore(due, now time.Time) bool {
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	if dy != ny {
		return dy < ny
	}
	if dm != nm {
		return dm < nm
	}
	return dd < nd
}
