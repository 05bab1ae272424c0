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

const ticketColumns = `id, flat_id, user_id, description, status, created_at, updated_at, resolved_at`

// PostgresTicketRepository implements TicketRepository using PostgreSQL
type PostgresTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository creates a new PostgresTicketRepository
func NewPostgresTicketRepository(pool *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{pool: pool}
}

// scanTicket scans a row into a MaintenanceTicket struct
func (r *PostgresTicketRepository) scanTicket(row pgx.Row) (*domain.MaintenanceTicket, error) {
	ticket := &domain.MaintenanceTicket{}
	err := row.Scan(
		&ticket.ID,
		&ticket.FlatID,
		&ticket.UserID,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

// Create creates a new ticket
func (r *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	query := `
		INSERT INTO maintenance_tickets (id, flat_id, user_id, description, status, created_at, updated_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.FlatID,
		ticket.UserID,
		ticket.Description,
		ticket.Status,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.ResolvedAt,
	)
	return err
}

// GetByID retrieves a ticket by ID
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM maintenance_tickets WHERE id = $1`
	return r.scanTicket(r.pool.QueryRow(ctx, query, id))
}

// List retrieves tickets ordered by creation time descending
func (r *PostgresTicketRepository) List(ctx context.Context, status *domain.TicketStatus, flatID *string, limit, offset int) ([]*domain.MaintenanceTicket, int, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}
	if flatID != nil {
		whereClause += fmt.Sprintf(" AND flat_id = $%d", argIndex)
		args = append(args, *flatID)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM maintenance_tickets %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+ticketColumns+` FROM maintenance_tickets %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets := make([]*domain.MaintenanceTicket, 0)
	for rows.Next() {
		ticket := &domain.MaintenanceTicket{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.FlatID,
			&ticket.UserID,
			&ticket.Description,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ResolvedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, total, rows.Err()
}

// UpdateStatus advances the ticket keyed on the previously-read status.
// The status = from guard makes the transition a compare-and-set; a caller
// that lost the race gets false and re-reads to classify the failure.
func (r *PostgresTicketRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TicketStatus, updatedAt time.Time, resolvedAt *time.Time) (bool, error) {
	query := `
		UPDATE maintenance_tickets
		SET status = $3, updated_at = $4, resolved_at = $5
		WHERE id = $1 AND status = $2
	`
	result, err := r.pool.Exec(ctx, query, id, from, to, updatedAt, resolvedAt)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// CountOpen returns the number of unresolved tickets across the given flats
func (r *PostgresTicketRepository) CountOpen(ctx context.Context, flatIDs []string) (int, error) {
	if len(flatIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM maintenance_tickets WHERE status <> $1 AND flat_id = ANY($2)`
	var count int
	err := r.pool.QueryRow(ctx, query, domain.TicketStatusResolved, flatIDs).Scan(&count)
	return count, err
}
