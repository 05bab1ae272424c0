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

// FlatService defines the flat registry operations
type FlatService interface {
	// Create registers a new flat (owner-only)
	Create(ctx context.Context, actor *domain.User, req *dto.CreateFlatRequest) (*dto.FlatResponse, error)
	// AssignTenant moves a vacant flat and an unassigned tenant into a
	// one-to-one occupancy pairing (owner-only)
	AssignTenant(ctx context.Context, actor *domain.User, flatID string, req *dto.AssignTenantRequest) (*dto.FlatResponse, error)
	// List retrieves every flat ordered by name
	List(ctx context.Context, actor *domain.User) ([]dto.FlatResponse, error)
	// Get retrieves a single flat
	Get(ctx context.Context, actor *domain.User, flatID string) (*dto.FlatResponse, error)
}

// flatService implements FlatService
type flatService struct {
	flatRepo repository.FlatRepository
	userRepo repository.UserRepository
}

// NewFlatService creates a new FlatService
func NewFlatService(flatRepo repository.FlatRepository, userRepo repository.UserRepository) FlatService {
	return &flatService{
		flatRepo: flatRepo,
		userRepo: userRepo,
	}
}

// Create registers a new flat
func (s *flatService) Create(ctx context.Context, actor *domain.User, req *dto.CreateFlatRequest) (*dto.FlatResponse, error) {
	if err := policy.CanCreateFlat(actor); err != nil {
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}

	taken, err := s.flatRepo.ExistsByOwnerAndName(ctx, actor.ID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: a flat named %q already exists", domain.ErrConflict, req.Name)
	}

	flat, err := domain.NewFlat(actor.ID, req.Name, req.MonthlyCost, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.flatRepo.Create(ctx, flat); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "flat created",
		zap.String("flat_id", flat.ID),
		zap.String("owner_id", flat.OwnerID),
		zap.String("name", flat.Name),
	)

	return dto.FromFlat(flat), nil
}

// AssignTenant pairs a vacant flat with an unassigned tenant
func (s *flatService) AssignTenant(ctx context.Context, actor *domain.User, flatID string, req *dto.AssignTenantRequest) (*dto.FlatResponse, error) {
	if err := policy.CanCreateFlat(actor); err != nil {
		return nil, err
	}

	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, fmt.Errorf("%w: flat %s", domain.ErrNotFound, flatID)
	}
	if flat.OwnerID != actor.ID {
		return nil, fmt.Errorf("%w: flat belongs to another owner", domain.ErrNotAuthorized)
	}
	if flat.IsOccupied() {
		return nil, fmt.Errorf("%w: flat %s is already occupied", domain.ErrConflict, flatID)
	}

	tenant, err := s.userRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: tenant %s does not exist", domain.ErrValidation, req.TenantID)
	}
	if tenant.Role != domain.RoleTenant {
		return nil, fmt.Errorf("%w: user %s is not a tenant", domain.ErrValidation, req.TenantID)
	}
	if tenant.HasFlat() {
		return nil, fmt.Errorf("%w: tenant %s already occupies a flat", domain.ErrConflict, req.TenantID)
	}

	// Claim the tenant first, then the flat. Each write is guarded, so a
	// concurrent assignment makes at most one of them land; losing the
	// second leg undoes the first.
	claimed, err := s.userRepo.AssignFlat(ctx, tenant.ID, flat.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: tenant %s was assigned concurrently", domain.ErrConflict, tenant.ID)
	}

	occupied, err := s.flatRepo.SetTenant(ctx, flat.ID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if !occupied {
		if clearErr := s.userRepo.ClearFlat(ctx, tenant.ID); clearErr != nil {
			logger.ErrorCtx(ctx, "failed to release tenant after losing flat assignment",
				zap.String("tenant_id", tenant.ID),
				zap.String("flat_id", flat.ID),
				zap.Error(clearErr),
			)
		}
		return nil, fmt.Errorf("%w: flat %s was occupied concurrently", domain.ErrConflict, flat.ID)
	}

	flat.TenantID = &tenant.ID
	flat.UpdatedAt = time.Now()

	logger.InfoCtx(ctx, "tenant assigned to flat",
		zap.String("flat_id", flat.ID),
		zap.String("tenant_id", tenant.ID),
	)

	return dto.FromFlat(flat), nil
}

// List retrieves every flat ordered by name
func (s *flatService) List(ctx context.Context, actor *domain.User) ([]dto.FlatResponse, error) {
	flats, err := s.flatRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlatResponse, 0, len(flats))
	for _, f := range flats {
		out = append(out, *dto.FromFlat(f))
	}
	return out, nil
}

// Get retrieves a single flat
func (s *flatService) Get(ctx context.Context, actor *domain.User, flatID string) (*dto.FlatResponse, error) {
	flat, err := s.flatRepo.GetByID(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return nil, fmt.Errorf("%w: flat %s", domain.ErrNotFound, flatID)
	}
	return dto.FromFlat(flat), nil
}
