package repository

import (
	"context"
	"errors"
	"time"

	"SereneCMSAPI/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	db *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// DeleteByEmailPurpose removes every prior code for the pair so at most one
// active code exists per (email, purpose).
func (r *OTPRepository) DeleteByEmailPurpose(ctx context.Context, email, purpose string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM otps WHERE email = $1 AND purpose = $2
	`, email, purpose)
	return err
}

func (r *OTPRepository) Create(ctx context.Context, o *entity.OTP) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO otps (id, email, code, purpose, expires_at, consumed_at, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULL, 0, $6, $6)
	`, o.ID, o.Email, o.Code, o.Purpose, o.ExpiresAt, o.CreatedAt)
	return err
}

// FindActive returns the newest unconsumed, unexpired code for the pair, or
// nil when none exists.
func (r *OTPRepository) FindActive(ctx context.Context, email, purpose string, now time.Time) (*entity.OTP, error) {
	var o entity.OTP
	err := r.db.QueryRow(ctx, `
		SELECT id, email, code, purpose, expires_at, consumed_at, attempts, created_at, updated_at
		FROM otps
		WHERE email = $1 AND purpose = $2 AND consumed_at IS NULL AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
	`, email, purpose, now).Scan(
		&o.ID, &o.Email, &o.Code, &o.Purpose, &o.ExpiresAt, &o.ConsumedAt, &o.Attempts, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// IncrementAttempts bumps the counter atomically and returns the new value.
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	var attempts int
	err := r.db.QueryRow(ctx, `
		UPDATE otps SET attempts = attempts + 1, updated_at = now()
		WHERE id = $1
		RETURNING attempts
	`, id).Scan(&attempts)
	return attempts, err
}

// Consume marks the code used in a single conditional update. The guard on
// consumed_at and attempts closes the read-then-write race: a replay or a
// concurrent exhausted attempt simply matches no row.
func (r *OTPRepository) Consume(ctx context.Context, id uuid.UUID, maxAttempts int, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE otps SET consumed_at = $2, attempts = attempts + 1, updated_at = $2
		WHERE id = $1 AND consumed_at IS NULL AND attempts < $3
	`, id, now, maxAttempts)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// PurgeStale deletes codes that expired before cutoff or were already
// consumed.
func (r *OTPRepository) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM otps WHERE expires_at < $1 OR consumed_at IS NOT NULL
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
