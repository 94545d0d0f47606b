package repository

import (
	"context"

	"SereneCMSAPI/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	db *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.EventRegistration) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO event_registrations (id, event_id, full_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reg.ID, reg.EventID, reg.FullName, reg.Email, reg.Phone, reg.CreatedAt)
	return err
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_registrations WHERE event_id = $1
	`, eventID).Scan(&count)
	return count, err
}

func (r *RegistrationRepository) ExistsByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND email = $2)
	`, eventID, email).Scan(&exists)
	return exists, err
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.EventRegistration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, full_name, email, phone, created_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*entity.EventRegistration
	for rows.Next() {
		var reg entity.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.FullName, &reg.Email, &reg.Phone, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}
