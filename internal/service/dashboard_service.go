package service

import (
	"context"
	"fmt"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/repository"
)

// DashboardService aggregates per-role summary numbers
type DashboardService interface {
	// OwnerSummary returns portfolio totals for an owner
	OwnerSummary(ctx context.Context, actor *domain.User) (*dto.OwnerDashboard, error)
	// TenantSummary returns dues for a tenant's flat
	TenantSummary(ctx context.Context, actor *domain.User) (*dto.TenantDashboard, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	flatRepo   repository.FlatRepository
	billRepo   repository.BillRepository
	ticketRepo repository.TicketRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(flatRepo repository.FlatRepository, billRepo repository.BillRepository, ticketRepo repository.TicketRepository) DashboardService {
	return &dashboardService{
		flatRepo:   flatRepo,
		billRepo:   billRepo,
		ticketRepo: ticketRepo,
	}
}

// OwnerSummary returns portfolio totals for an owner
func (s *dashboardService) OwnerSummary(ctx context.Context, actor *domain.User) (*dto.OwnerDashboard, error) {
	if actor.Role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: only owners have a portfolio summary", domain.ErrNotAuthorized)
	}

	stats, err := s.flatRepo.Stats(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	// Bill and ticket counts cover only this owner's flats
	flatIDs, err := s.flatRepo.IDsByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	unpaidCount, _, err := s.billRepo.UnpaidStats(ctx, flatIDs)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.ticketRepo.CountOpen(ctx, flatIDs)
	if err != nil {
		return nil, err
	}

	return &dto.OwnerDashboard{
		TotalFlats:      stats.Total,
		OccupiedFlats:   stats.Occupied,
		MonthlyRevenue:  stats.MonthlyRevenue,
		UnpaidBillCount: unpaidCount,
		OpenTicketCount: openTickets,
	}, nil
}

// TenantSummary returns dues for a tenant's flat
func (s *dashboardService) TenantSummary(ctx context.Context, actor *domain.User) (*dto.TenantDashboard, error) {
	if actor.Role != domain.RoleTenant {
		return nil, fmt.Errorf("%w: only tenants have a dues summary", domain.ErrNotAuthorized)
	}

	summary := &dto.TenantDashboard{}

	if !actor.HasFlat() {
		return summary, nil
	}
	flatID := *actor.FlatID

	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if flat != nil {
		summary.FlatName = flat.Name
		summary.MonthlyRent = flat.MonthlyCost
	}

	unpaidCount, unpaidTotal, err := s.billRepo.UnpaidStats(ctx, []string{flatID})
	if err != nil {
		return nil, err
	}
	summary.UnpaidBillCount = unpaidCount
	summary.AmountDue = unpaidTotal

	openTickets, err := s.ticketRepo.CountOpen(ctx, []string{flatID})
	if err != nil {
		return nil, err
	}
	summary.OpenTicketCount = openTickets

	return summary, nil
}
