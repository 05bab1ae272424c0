package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/policy"
	"github.com/Akashdhk/Housemate/internal/repository"
	"github.com/Akashdhk/Housemate/pkg/logger"
)

// BillService defines the bill ledger operations
type BillService interface {
	// Create creates an UNPAID bill against a flat (owner-only)
	Create(ctx context.Context, actor *domain.User, req *dto.CreateBillRequest) (*dto.BillResponse, error)
	// Pay transitions a bill to PAID (tenant-only); PAID is terminal and
	// exactly one of N concurrent payers succeeds
	Pay(ctx context.Context, actor *domain.User, billID string) (*dto.BillResponse, error)
	// List retrieves bills with the OVERDUE projection applied, filtered
	// by effective status
	List(ctx context.Context, actor *domain.User, query *dto.ListBillsQuery) (*dto.ListBillsResponse, error)
}

// billService implements BillService
type billService struct {
	billRepo repository.BillRepository
	flatRepo repository.FlatRepository
}

// NewBillService creates a new BillService
func NewBillService(billRepo repository.BillRepository, flatRepo repository.FlatRepository) BillService {
	return &billService{
		billRepo: billRepo,
		flatRepo: flatRepo,
	}
}

// Create creates an UNPAID bill against a flat
func (s *billService) Create(ctx context.Context, actor *domain.User, req *dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := policy.CanCreateFlat(actor); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}

	flat, err := s.flatRepo.GetByID(ctx, req.FlatID)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, fmt.Errorf("%w: flat %s does not exist", domain.ErrValidation, req.FlatID)
	}

	// Validated by req.Validate already
	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	bill, err := domain.NewBill(req.FlatID, domain.BillType(req.Type), req.Amount, dueDate, req.BillingMonth)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "bill created",
		zap.String("bill_id", bill.ID),
		zap.String("flat_id", bill.FlatID),
		zap.String("type", string(bill.Type)),
		zap.Float64("amount", bill.Amount),
	)

	return dto.FromBill(bill, time.Now()), nil
}

// Pay transitions a bill to PAID
func (s *billService) Pay(ctx context.Context, actor *domain.User, billID string) (*dto.BillResponse, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill %s", domain.ErrNotFound, billID)
	}

	if err := policy.CanPayBill(actor, bill); err != nil {
		return nil, err
	}

	now := time.Now()
	paid, err := s.billRepo.MarkPaid(ctx, billID, now)
	if err != nil {
		return nil, err
	}
	if !paid {
		// Another payer won between our read and the conditional write.
		return nil, fmt.Errorf("%w: bill %s", domain.ErrAlreadyPaid, billID)
	}

	bill.Status = domain.BillStatusPaid
	bill.PaidAt = &now
	bill.UpdatedAt = now

	logger.InfoCtx(ctx, "bill paid",
		zap.String("bill_id", bill.ID),
		zap.String("flat_id", bill.FlatID),
		zap.String("payer_id", actor.ID),
	)

	return dto.FromBill(bill, now), nil
}

// List retrieves bills with the OVERDUE projection applied
func (s *billService) List(ctx context.Context, actor *domain.User, query *dto.ListBillsQuery) (*dto.ListBillsResponse, error) {
	query.SetDefaults()
	if valid, msg := query.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}

	bills, err := s.billRepo.List(ctx, query.FlatID)
	if err != nil {
		return nil, err
	}

	// A single clock reading for the whole listing keeps the OVERDUE
	// projection consistent across rows.
	now := time.Now()

	matched := make([]dto.BillResponse, 0, len(bills))
	for _, bill := range bills {
		resp := dto.FromBill(bill, now)
		if query.Status != "ALL" && resp.Status != query.Status {
			continue
		}
		matched = append(matched, *resp)
	}

	totalCount := len(matched)
	totalPages := int(math.Ceil(float64(totalCount) / float64(query.PerPage)))
	start := (query.Page - 1) * query.PerPage
	if start > totalCount {
		start = totalCount
	}
	end := start + query.PerPage
	if end > totalCount {
		end = totalCount
	}

	return &dto.ListBillsResponse{
		Bills:      matched[start:end],
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}
