package repository

import (
	"context"

	"SereneCMSAPI/internal/entity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentRepository struct {
	db *pgxpool.Pool
}

func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *entity.TeacherEnrollment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO teacher_enrollments
		(id, full_name, email, phone, city, country, meditation_experience, teaching_experience, availability, referral, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.FullName, e.Email, e.Phone, e.City, e.Country,
		e.MeditationExperience, e.TeachingExperience, e.Availability, e.Referral, e.CreatedAt)
	return err
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]*entity.TeacherEnrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, email, phone, city, country, meditation_experience, teaching_experience, availability, referral, created_at
		FROM teacher_enrollments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*entity.TeacherEnrollment
	for rows.Next() {
		var e entity.TeacherEnrollment
		if err := rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Phone, &e.City, &e.Country,
			&e.MeditationExperience, &e.TeachingExperience, &e.Availability, &e.Referral, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &e)
	}
	return enrollments, rows.Err()
}
