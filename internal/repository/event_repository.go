package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
)

// ErrNoVouchersLeft is returned when an event's voucher budget is exhausted.
var ErrNoVouchersLeft = errors.New("no vouchers available")

// EventRepository defines persistence access for events and their vouchers.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// IssueVoucher inserts the voucher and decrements the event's remaining
	// quantity in one transaction. The event row is locked for the duration,
	// so concurrent requests cannot oversell.
	IssueVoucher(ctx context.Context, eventID string, voucher *domain.Voucher) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, date, max_quantity, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.MaxQuantity,
		event.UserID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, title, description, date, max_quantity, user_id, created_at, updated_at
        FROM events WHERE id=$1`

	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.MaxQuantity,
		&event.UserID,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) IssueVoucher(ctx context.Context, eventID string, voucher *domain.Voucher) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var remaining int
	err = tx.QueryRow(ctx,
		`SELECT max_quantity FROM events WHERE id=$1 FOR UPDATE`, eventID,
	).Scan(&remaining)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return ErrNoVouchersLeft
	}

	const insert = `
        INSERT INTO vouchers (code, event_id, start_date, end_date, issued_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		voucher.Code,
		eventID,
		voucher.StartDate,
		voucher.EndDate,
		voucher.IssuedAt,
	).Scan(&voucher.ID, &voucher.CreatedAt); err != nil {
		return err
	}
	voucher.EventID = eventID

	cmd, err := tx.Exec(ctx,
		`UPDATE events SET max_quantity = max_quantity - 1, updated_at=NOW() WHERE id=$1`, eventID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
