package repository

import (
	"context"
	"errors"

	"SereneCMSAPI/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentRepository struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `id, title, slug, type, body, status, rejection_reason, created_by, reviewed_by, published_at, created_at, updated_at`

func scanContent(row pgx.Row) (*entity.Content, error) {
	var c entity.Content
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Type, &c.Body, &c.Status, &c.RejectionReason,
		&c.CreatedBy, &c.ReviewedBy, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepository) Create(ctx context.Context, c *entity.Content) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contents (id, title, slug, type, body, status, created_by, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, c.ID, c.Title, c.Slug, c.Type, c.Body, c.Status, c.CreatedBy, c.PublishedAt, c.CreatedAt)
	return err
}

func (r *ContentRepository) Update(ctx context.Context, c *entity.Content) error {
	_, err := r.db.Exec(ctx, `
		UPDATE contents
		SET title = $2, slug = $3, type = $4, body = $5, status = $6,
		    rejection_reason = $7, reviewed_by = $8, published_at = $9, updated_at = now()
		WHERE id = $1
	`, c.ID, c.Title, c.Slug, c.Type, c.Body, c.Status, c.RejectionReason, c.ReviewedBy, c.PublishedAt)
	return err
}

func (r *ContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Content, error) {
	return scanContent(r.db.QueryRow(ctx, `
		SELECT `+contentColumns+` FROM contents WHERE id = $1
	`, id))
}

func (r *ContentRepository) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Content, error) {
	return scanContent(r.db.QueryRow(ctx, `
		SELECT `+contentColumns+` FROM contents WHERE slug = $1 AND status = 'published'
	`, slug))
}

func (r *ContentRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM contents WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	return exists, err
}

func (r *ContentRepository) List(ctx context.Context, status string) ([]*entity.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectContents(rows)
}

func (r *ContentRepository) ListPublished(ctx context.Context) ([]*entity.Content, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE status = 'published'
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectContents(rows)
}

func collectContents(rows pgx.Rows) ([]*entity.Content, error) {
	var contents []*entity.Content
	for rows.Next() {
		var c entity.Content
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Type, &c.Body, &c.Status, &c.RejectionReason,
			&c.CreatedBy, &c.ReviewedBy, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contents = append(contents, &c)
	}
	return contents, rows.Err()
}
