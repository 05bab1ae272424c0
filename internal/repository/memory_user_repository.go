package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Akashdhk/Housemate/internal/domain"
)

// MemoryUserRepository is an in-memory implementation of UserRepository
// used by tests and the dev profile.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string // email -> userID
}

// NewMemoryUserRepository creates a new in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

// Create creates a new user
func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = copyUser(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID retrieves a user by ID
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, nil
	}
	return copyUser(user), nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, nil
	}
	return copyUser(r.users[id]), nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byEmail[email]
	return exists, nil
}

// AssignFlat sets the user's flat iff the user is an unhoused tenant.
// The check-and-write happens under the write lock, mirroring the
// conditional UPDATE of the postgres implementation.
func (r *MemoryUserRepository) AssignFlat(ctx context.Context, userID, flatID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists || user.Role != domain.RoleTenant || user.HasFlat() {
		return false, nil
	}
	id := flatID
	user.FlatID = &id
	user.UpdatedAt = time.Now()
	return true, nil
}

// ClearFlat removes the user's flat assignment
func (r *MemoryUserRepository) ClearFlat(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.FlatID = nil
		user.UpdatedAt = time.Now()
	}
	return nil
}

// copyUser creates a copy of a user
func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copied := *u
	if u.FlatID != nil {
		flatID := *u.FlatID
		copied.FlatID = &flatID
	}
	return &copied
}
