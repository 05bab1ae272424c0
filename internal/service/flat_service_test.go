package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Akashdhk/Housemate/internal/domain"
	"github.com/Akashdhk/Housemate/internal/dto"
	"github.com/Akashdhk/Housemate/internal/repository"
)

func newFlatFixture(t *testing.T) (FlatService, repository.FlatRepository, repository.UserRepository) {
	t.Helper()
	flatRepo := repository.NewMemoryFlatRepository()
	userRepo := repository.NewMemoryUserRepository()
	return NewFlatService(flatRepo, userRepo), flatRepo, userRepo
}

func seedUser(t *testing.T, repo repository.UserRepository, user *domain.User) *domain.User {
	t.Helper()
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestFlatServiceCreate(t *testing.T) {
	svc, _, userRepo := newFlatFixture(t)
	owner := seedUser(t, userRepo, testOwner())

	resp, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{
		Name:        "Flat 3B",
		MonthlyCost: 1200,
		Description: "south facing",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.OwnerID != owner.ID {
		t.Errorf("owner_id = %s, want %s", resp.OwnerID, owner.ID)
	}
	if resp.Occupied {
		t.Error("new flat reported occupied")
	}

	// Same owner, same name.
	_, err = svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "Flat 3B", MonthlyCost: 900})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate name: expected ErrConflict, got %v", err)
	}

	// Tenants cannot create flats.
	tenant := seedUser(t, userRepo, testTenant(""))
	_, err = svc.Create(context.Background(), tenant, &dto.CreateFlatRequest{Name: "Flat 4A", MonthlyCost: 900})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("tenant create: expected ErrNotAuthorized, got %v", err)
	}

	_, err = svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "  ", MonthlyCost: 900})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank name: expected ErrValidation, got %v", err)
	}
}

func TestFlatServiceAssignTenant(t *testing.T) {
	svc, flatRepo, userRepo := newFlatFixture(t)
	owner := seedUser(t, userRepo, testOwner())
	tenant := seedUser(t, userRepo, testTenant(""))

	flat, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "Flat 3B", MonthlyCost: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.AssignTenant(context.Background(), owner, flat.ID, &dto.AssignTenantRequest{TenantID: tenant.ID})
	if err != nil {
		t.Fatalf("AssignTenant: %v", err)
	}
	if !resp.Occupied {
		t.Error("flat not occupied after assignment")
	}
	if resp.TenantID == nil || *resp.TenantID != tenant.ID {
		t.Errorf("tenant_id = %v, want %s", resp.TenantID, tenant.ID)
	}

	// Both sides of the pairing were written.
	storedTenant, err := userRepo.GetByID(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !storedTenant.HasFlat() || *storedTenant.FlatID != flat.ID {
		t.Errorf("tenant flat_id = %v, want %s", storedTenant.FlatID, flat.ID)
	}
	storedFlat, err := flatRepo.GetByID(context.Background(), flat.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !storedFlat.IsOccupied() {
		t.Error("stored flat not occupied")
	}
}

func TestFlatServiceAssignTenantRejections(t *testing.T) {
	svc, _, userRepo := newFlatFixture(t)
	owner := seedUser(t, userRepo, testOwner())
	tenant := seedUser(t, userRepo, testTenant(""))

	flat, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "Flat 3B", MonthlyCost: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("tenant cannot assign", func(t *testing.T) {
		_, err := svc.AssignTenant(context.Background(), tenant, flat.ID, &dto.AssignTenantRequest{TenantID: tenant.ID})
		if !errors.Is(err, domain.ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("missing flat", func(t *testing.T) {
		_, err := svc.AssignTenant(context.Background(), owner, "missing", &dto.AssignTenantRequest{TenantID: tenant.ID})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign flat", func(t *testing.T) {
		other := testOwner()
		other.Email = "carol@example.com"
		seedUser(t, userRepo, other)
		_, err := svc.AssignTenant(context.Background(), other, flat.ID, &dto.AssignTenantRequest{TenantID: tenant.ID})
		if !errors.Is(err, domain.ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("assignee must be a tenant", func(t *testing.T) {
		_, err := svc.AssignTenant(context.Background(), owner, flat.ID, &dto.AssignTenantRequest{TenantID: owner.ID})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("occupied flat and occupied tenant", func(t *testing.T) {
		if _, err := svc.AssignTenant(context.Background(), owner, flat.ID, &dto.AssignTenantRequest{TenantID: tenant.ID}); err != nil {
			t.Fatalf("AssignTenant: %v", err)
		}

		second := testTenant("")
		second.Email = "dave@example.com"
		seedUser(t, userRepo, second)
		_, err := svc.AssignTenant(context.Background(), owner, flat.ID, &dto.AssignTenantRequest{TenantID: second.ID})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("occupied flat: expected ErrConflict, got %v", err)
		}

		vacant, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "Flat 4A", MonthlyCost: 900})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		_, err = svc.AssignTenant(context.Background(), owner, vacant.ID, &dto.AssignTenantRequest{TenantID: tenant.ID})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("occupied tenant: expected ErrConflict, got %v", err)
		}
	})
}

// Concurrent assignment of many tenants to one flat: exactly one lands,
// and every loser's tenant record stays unassigned.
func TestFlatServiceAssignTenantConcurrent(t *testing.T) {
	svc, _, userRepo := newFlatFixture(t)
	owner := seedUser(t, userRepo, testOwner())

	flat, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: "Flat 3B", MonthlyCost: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const contenders = 20
	tenants := make([]*domain.User, contenders)
	for i := range tenants {
		u := testTenant("")
		u.Email = fmt.Sprintf("tenant%d@example.com", i)
		tenants[i] = seedUser(t, userRepo, u)
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AssignTenant(context.Background(), owner, flat.ID, &dto.AssignTenantRequest{TenantID: tenants[i].ID})
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domain.ErrConflict):
			// Losing tenants must not be left half-assigned.
			u, getErr := userRepo.GetByID(context.Background(), tenants[i].ID)
			if getErr != nil {
				t.Fatalf("GetByID: %v", getErr)
			}
			if u.HasFlat() {
				t.Errorf("losing tenant %s still holds a flat", u.ID)
			}
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
}

func TestFlatServiceListAndGet(t *testing.T) {
	svc, _, userRepo := newFlatFixture(t)
	owner := seedUser(t, userRepo, testOwner())

	for _, name := range []string{"Flat 4A", "Flat 3B"} {
		if _, err := svc.Create(context.Background(), owner, &dto.CreateFlatRequest{Name: name, MonthlyCost: 1000}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	flats, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(flats) != 2 {
		t.Fatalf("len = %d, want 2", len(flats))
	}
	if flats[0].Name != "Flat 3B" || flats[1].Name != "Flat 4A" {
		t.Errorf("order = [%s, %s], want name order", flats[0].Name, flats[1].Name)
	}

	got, err := svc.Get(context.Background(), owner, flats[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Flat 3B" {
		t.Errorf("Get name = %s, want Flat 3B", got.Name)
	}

	if _, err := svc.Get(context.Background(), owner, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
