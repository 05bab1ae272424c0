package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akashdhk/Housemate/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, flat_id, created_at, updated_at`

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser scans a row into a User struct
func (r *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.FlatID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, flat_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FlatID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// ExistsByEmail checks if a user exists with the given email
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// AssignFlat sets the user's flat iff the user is an unhoused tenant.
// The guard in the WHERE clause keeps the one-flat-per-tenant invariant
// under concurrent assignment.
func (r *PostgresUserRepository) AssignFlat(ctx context.Context, userID, flatID string) (bool, error) {
	query := `
		UPDATE users
		SET flat_id = $2, updated_at = $3
		WHERE id = $1 AND role = $4 AND flat_id IS NULL
	`
	result, err := r.pool.Exec(ctx, query, userID, flatID, time.Now(), domain.RoleTenant)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// ClearFlat removes the user's flat assignment
func (r *PostgresUserRepository) ClearFlat(ctx context.Context, userID string) error {
	query := `UPDATE users SET flat_id = NULL, updated_at = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID, time.Now())
	return err
}
