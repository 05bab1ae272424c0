package repository

import (
	"context"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// AssignFlat sets the user's flat if the user is a tenant with no flat
	// yet. Returns false when the guard did not match, so at most one flat
	// is ever assigned per tenant even under concurrent assignment.
	AssignFlat(ctx context.Context, userID, flatID string) (bool, error)
	// ClearFlat removes the user's flat assignment
	ClearFlat(ctx context.Context, userID string) error
}
