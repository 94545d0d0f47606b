package repository

import (
	"context"

	"SereneCMSAPI/internal/entity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO applications (id, kind, full_name, email, phone, motivation, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Kind, a.FullName, a.Email, a.Phone, a.Motivation, a.Details, a.CreatedAt)
	return err
}

func (r *ApplicationRepository) List(ctx context.Context, kind string) ([]*entity.Application, error) {
	query := `SELECT id, kind, full_name, email, phone, motivation, details, created_at FROM applications`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*entity.Application
	for rows.Next() {
		var a entity.Application
		if err := rows.Scan(&a.ID, &a.Kind, &a.FullName, &a.Email, &a.Phone, &a.Motivation, &a.Details, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}
