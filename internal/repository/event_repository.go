package repository

import (
	"context"
	"errors"

	"SereneCMSAPI/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, type, status, rejection_reason, starts_at, ends_at, location, capacity, created_by, reviewed_by, published_at, created_at, updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Status, &e.RejectionReason,
		&e.StartsAt, &e.EndsAt, &e.Location, &e.Capacity, &e.CreatedBy, &e.ReviewedBy,
		&e.PublishedAt, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO events (id, title, description, type, status, starts_at, ends_at, location, capacity, created_by, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	`, e.ID, e.Title, e.Description, e.Type, e.Status, e.StartsAt, e.EndsAt, e.Location, e.Capacity, e.CreatedBy, e.PublishedAt, e.CreatedAt)
	return err
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	_, err := r.db.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, type = $4, status = $5, rejection_reason = $6,
		    starts_at = $7, ends_at = $8, location = $9, capacity = $10,
		    reviewed_by = $11, published_at = $12, updated_at = now()
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.Type, e.Status, e.RejectionReason,
		e.StartsAt, e.EndsAt, e.Location, e.Capacity, e.ReviewedBy, e.PublishedAt)
	return err
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1
	`, id))
}

func (r *EventRepository) List(ctx context.Context, status string) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY starts_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListPublic returns events in any published temporal state.
func (r *EventRepository) ListPublic(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status IN ('upcoming', 'ongoing', 'completed')
		ORDER BY starts_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Status, &e.RejectionReason,
			&e.StartsAt, &e.EndsAt, &e.Location, &e.Capacity, &e.CreatedBy, &e.ReviewedBy,
			&e.PublishedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
