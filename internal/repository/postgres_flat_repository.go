package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akashdhk/Housemate/internal/domain"
)

const flatColumns = `id, name, owner_id, tenant_id, monthly_cost,
	description, created_at, updated_at, deleted_at`

// PostgresFlatRepository implements FlatRepository using PostgreSQL
type PostgresFlatRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFlatRepository creates a new PostgresFlatRepository
func NewPostgresFlatRepository(pool *pgxpool.Pool) *PostgresFlatRepository {
	return &PostgresFlatRepository{pool: pool}
}

// scanFlat scans a row into a Flat struct
func (r *PostgresFlatRepository) scanFlat(row pgx.Row) (*domain.Flat, error) {
	flat := &domain.Flat{}
	err := row.Scan(
		&flat.ID,
		&flat.Name,
		&flat.OwnerID,
		&flat.TenantID,
		&flat.MonthlyCost,
		&flat.Description,
		&flat.CreatedAt,
		&flat.UpdatedAt,
		&flat.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return flat, nil
}

// Create creates a new flat
func (r *PostgresFlatRepository) Create(ctx context.Context, flat *domain.Flat) error {
	query := `
		INSERT INTO flats (id, name, owner_id, tenant_id, monthly_cost, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		flat.ID,
		flat.Name,
		flat.OwnerID,
		flat.TenantID,
		flat.MonthlyCost,
		// description is NOT NULL with a default; "" means absent
		flat.Description,
		flat.CreatedAt,
		flat.UpdatedAt,
	)
	return err
}

// GetByID retrieves a flat by ID
func (r *PostgresFlatRepository) GetByID(ctx context.Context, id string) (*domain.Flat, error) {
	query := `SELECT ` + flatColumns + ` FROM flats WHERE id = $1 AND deleted_at IS NULL`
	return r.scanFlat(r.pool.QueryRow(ctx, query, id))
}

// GetByTenant retrieves the flat a tenant is assigned to, if any
func (r *PostgresFlatRepository) GetByTenant(ctx context.Context, tenantID string) (*domain.Flat, error) {
	query := `SELECT ` + flatColumns + ` FROM flats WHERE tenant_id = $1 AND deleted_at IS NULL`
	return r.scanFlat(r.pool.QueryRow(ctx, query, tenantID))
}

// List retrieves all flats ordered by name
func (r *PostgresFlatRepository) List(ctx context.Context) ([]*domain.Flat, error) {
	query := `SELECT ` + flatColumns + ` FROM flats WHERE deleted_at IS NULL ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flats := make([]*domain.Flat, 0)
	for rows.Next() {
		flat := &domain.Flat{}
		err := rows.Scan(
			&flat.ID,
			&flat.Name,
			&flat.OwnerID,
			&flat.TenantID,
			&flat.MonthlyCost,
			&flat.Description,
			&flat.CreatedAt,
			&flat.UpdatedAt,
			&flat.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		flats = append(flats, flat)
	}
	return flats, rows.Err()
}

// ExistsByOwnerAndName checks if an owner already has a flat with the name
func (r *PostgresFlatRepository) ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM flats WHERE owner_id = $1 AND name = $2 AND deleted_at IS NULL)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, ownerID, name).Scan(&exists)
	return exists, err
}

// SetTenant occupies a vacant flat. The tenant_id IS NULL guard makes the
// occupation a compare-and-set, so two owners racing for the same flat
// produce exactly one winner.
func (r *PostgresFlatRepository) SetTenant(ctx context.Context, flatID, tenantID string) (bool, error) {
	query := `
		UPDATE flats
		SET tenant_id = $2, updated_at = $3
		WHERE id = $1 AND tenant_id IS NULL AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, flatID, tenantID, time.Now())
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// IDsByOwner returns the ids of the owner's active flats
func (r *PostgresFlatRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT id FROM flats WHERE owner_id = $1 AND deleted_at IS NULL`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Stats returns aggregate occupancy numbers for one owner's flats
func (r *PostgresFlatRepository) Stats(ctx context.Context, ownerID string) (*FlatStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(tenant_id),
		       COALESCE(SUM(monthly_cost) FILTER (WHERE tenant_id IS NOT NULL), 0)
		FROM flats
		WHERE owner_id = $1 AND deleted_at IS NULL
	`
	stats := &FlatStats{}
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&stats.Total, &stats.Occupied, &stats.MonthlyRevenue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
