package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akashdhk/Housemate/internal/domain"
)

const billColumns = `id, flat_id, type, amount, status, due_date,
	COALESCE(billing_month, '') as billing_month, paid_at, created_at, updated_at`

// PostgresBillRepository implements BillRepository using PostgreSQL
type PostgresBillRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBillRepository creates a new PostgresBillRepository
func NewPostgresBillRepository(pool *pgxpool.Pool) *PostgresBillRepository {
	return &PostgresBillRepository{pool: pool}
}

// scanBill scans a row into a Bill struct
func (r *PostgresBillRepository) scanBill(row pgx.Row) (*domain.Bill, error) {
	bill := &domain.Bill{}
	err := row.Scan(
		&bill.ID,
		&bill.FlatID,
		&bill.Type,
		&bill.Amount,
		&bill.Status,
		&bill.DueDate,
		&bill.BillingMonth,
		&bill.PaidAt,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bill, nil
}

// Create creates a new bill
func (r *PostgresBillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	query := `
		INSERT INTO bills (id, flat_id, type, amount, status, due_date, billing_month, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		bill.ID,
		bill.FlatID,
		bill.Type,
		bill.Amount,
		bill.Status,
		bill.DueDate,
		nullStringOrValue(bill.BillingMonth),
		bill.PaidAt,
		bill.CreatedAt,
		bill.UpdatedAt,
	)
	return err
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// GetByID retrieves a bill by ID
func (r *PostgresBillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return r.scanBill(r.pool.QueryRow(ctx, query, id))
}

// List retrieves bills ordered by due date then creation time, newest first
func (r *PostgresBillRepository) List(ctx context.Context, flatID *string) ([]*domain.Bill, error) {
	whereClause := ""
	args := []interface{}{}
	if flatID != nil {
		whereClause = "WHERE flat_id = $1"
		args = append(args, *flatID)
	}

	query := fmt.Sprintf(`SELECT `+billColumns+` FROM bills %s ORDER BY due_date DESC, created_at DESC`, whereClause)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*domain.Bill, 0)
	for rows.Next() {
		bill := &domain.Bill{}
		err := rows.Scan(
			&bill.ID,
			&bill.FlatID,
			&bill.Type,
			&bill.Amount,
			&bill.Status,
			&bill.DueDate,
			&bill.BillingMonth,
			&bill.PaidAt,
			&bill.CreatedAt,
			&bill.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// MarkPaid transitions a bill to PAID. The status guard in the WHERE clause
// makes the payment a compare-and-set: among N concurrent payers exactly one
// statement matches a row.
func (r *PostgresBillRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE bills
		SET status = $2, paid_at = $3, updated_at = $3
		WHERE id = $1 AND status <> $2
	`
	result, err := r.pool.Exec(ctx, query, id, domain.BillStatusPaid, paidAt)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// UnpaidStats returns the count and total amount of bills not yet paid
// across the given flats
func (r *PostgresBillRepository) UnpaidStats(ctx context.Context, flatIDs []string) (int, float64, error) {
	if len(flatIDs) == 0 {
		return 0, 0, nil
	}

	query := `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM bills WHERE status <> $1 AND flat_id = ANY($2)`
	var count int
	var total float64
	err := r.pool.QueryRow(ctx, query, domain.BillStatusPaid, flatIDs).Scan(&count, &total)
	if err != nil {
		return 0, 0, err
	}
	return count, total, nil
}
