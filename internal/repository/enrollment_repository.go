package repository

import (
	"context"
	"errors"
	"fmt"

	"empedi/internal/database"
	"empedi/internal/domain/course"
	"empedi/internal/domain/enrollment"

	"github.com/google/uuid"
)

var ErrAlreadyEnrolled = errors.New("already enrolled")

type EnrollmentRepository interface {
	Create(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error)
}

type PostgresEnrollmentRepository struct {
	db database.DB
}

func NewPostgresEnrollmentRepository(db database.DB) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: db}
}

func (r *PostgresEnrollmentRepository) Create(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = enrollment.StatusEnrolled
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO course_enrollments (id, user_id, course_id, status, progress)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		e.ID, e.UserID, e.CourseID, string(e.Status), e.Progress,
	)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return enrollment.Enrollment{}, ErrAlreadyEnrolled
		case isForeignKeyViolation(err):
			return enrollment.Enrollment{}, ErrCourseNotFound
		}
		return enrollment.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}
	return e, nil
}

// ListByUser returns the user's enrollments with a brief of each course,
// newest first.
func (r *PostgresEnrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.user_id, e.course_id, e.status, e.progress, e.created_at, e.updated_at,
		        c.title, c.slug, c.banner_url, c.level, c.duration
		 FROM course_enrollments e JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at DESC, e.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]enrollment.Enrollment, 0)
	for rows.Next() {
		var e enrollment.Enrollment
		var c enrollment.CourseBrief
		var status, level string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &status, &e.Progress, &e.CreatedAt, &e.UpdatedAt,
			&c.Title, &c.Slug, &c.BannerURL, &level, &c.Duration,
		); err != nil {
			return nil, err
		}
		e.Status, c.Level = enrollment.Status(status), course.Level(level)
		e.Course = &c
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
