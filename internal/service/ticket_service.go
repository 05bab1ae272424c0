package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/policy"
	"github.com/Akashdhk/Housemate/internal/repository"
	"github.com/Akashdhk/Housemate/pkg/logger"
)

// TicketService defines the maintenance ticket workflow operations
type TicketService interface {
	// Create files a new OPEN ticket; tenants file against their own flat,
	// owners file against any of their flats by naming it explicitly
	Create(ctx context.Context, actor *domain.User, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	// Advance moves a ticket along OPEN -> IN_PROGRESS -> RESOLVED
	// (owner-only); RESOLVED is terminal
	Advance(ctx context.Context, actor *domain.User, ticketID string, req *dto.AdvanceTicketRequest) (*dto.TicketResponse, error)
	// List retrieves tickets newest-first with optional status and flat filters
	List(ctx context.Context, actor *domain.User, query *dto.ListTicketsQuery) (*dto.ListTicketsResponse, error)
}

// ticketService implements TicketService
type ticketService struct {
	ticketRepo repository.TicketRepository
	flatRepo   repository.FlatRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository, flatRepo repository.FlatRepository) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		flatRepo:   flatRepo,
	}
}

// Create files a new OPEN ticket
func (s *ticketService) Create(ctx context.Context, actor *domain.User, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if err := policy.CanFileTicket(actor); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}

	flatID, err := s.resolveFlat(ctx, actor, req.FlatID)
	if err != nil {
		return nil, err
	}

	ticket, err := domain.NewMaintenanceTicket(flatID, actor.ID, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "maintenance ticket filed",
		zap.String("ticket_id", ticket.ID),
		zap.String("flat_id", ticket.FlatID),
		zap.String("filed_by", actor.ID),
	)

	return dto.FromTicket(ticket), nil
}

// resolveFlat determines which flat a new ticket belongs to. A tenant's
// ticket always lands on the flat they occupy; an owner must name the
// flat explicitly.
func (s *ticketService) resolveFlat(ctx context.Context, actor *domain.User, requested string) (string, error) {
	if actor.Role == domain.RoleTenant {
		if !actor.HasFlat() {
			return "", fmt.Errorf("%w: tenant is not assigned to a flat", domain.ErrValidation)
		}
		return *actor.FlatID, nil
	}

	if requested == "" {
		return "", fmt.Errorf("%w: flat_id is required", domain.ErrValidation)
	}
	flat, err := s.flatRepo.GetByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if flat == nil {
		return "", fmt.Errorf("%w: flat %s does not exist", domain.ErrValidation, requested)
	}
	if flat.OwnerID != actor.ID {
		return "", fmt.Errorf("%w: flat belongs to another owner", domain.ErrNotAuthorized)
	}
	return flat.ID, nil
}

// Advance moves a ticket to the requested status
func (s *ticketService) Advance(ctx context.Context, actor *domain.User, ticketID string, req *dto.AdvanceTicketRequest) (*dto.TicketResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	target := domain.TicketStatus(req.Status)

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, ticketID)
	}

	if err := policy.CanAdvanceTicket(actor, ticket); err != nil {
		return nil, err
	}
	if !ticket.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move ticket from %s to %s", domain.ErrInvalidTransition, ticket.Status, target)
	}

	now := time.Now()
	var resolvedAt *time.Time
	if target.IsTerminal() {
		resolvedAt = &now
	}

	updated, err := s.ticketRepo.UpdateStatus(ctx, ticketID, ticket.Status, target, now, resolvedAt)
	if err != nil {
		return nil, err
	}
	if !updated {
		// The conditional write lost to a concurrent transition. Re-read
		// to tell a now-illegal move apart from a plain conflict.
		current, err := s.ticketRepo.GetByID(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("%w: ticket %s", domain.ErrNotFound, ticketID)
		}
		if !current.Status.CanTransitionTo(target) {
			return nil, fmt.Errorf("%w: cannot move ticket from %s to %s", domain.ErrInvalidTransition, current.Status, target)
		}
		return nil, fmt.Errorf("%w: ticket %s was updated concurrently", domain.ErrConflict, ticketID)
	}

	ticket.Status = target
	ticket.UpdatedAt = now
	ticket.ResolvedAt = resolvedAt

	logger.InfoCtx(ctx, "maintenance ticket advanced",
		zap.String("ticket_id", ticket.ID),
		zap.String("flat_id", ticket.FlatID),
		zap.String("status", string(ticket.Status)),
	)

	return dto.FromTicket(ticket), nil
}

// List retrieves tickets newest-first
func (s *ticketService) List(ctx context.Context, actor *domain.User, query *dto.ListTicketsQuery) (*dto.ListTicketsResponse, error) {
	query.SetDefaults()
	if valid, msg := query.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}

	var status *domain.TicketStatus
	if query.Status != "" && query.Status != "ALL" {
		st := domain.TicketStatus(query.Status)
		status = &st
	}

	offset := (query.Page - 1) * query.PerPage
	tickets, totalCount, err := s.ticketRepo.List(ctx, status, query.FlatID, query.PerPage, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, *dto.FromTicket(t))
	}

	totalPages := (totalCount + query.PerPage - 1) / query.PerPage

	return &dto.ListTicketsResponse{
		Tickets:    items,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}
