package repository

import (
	"context"
	"errors"
	"fmt"

	"empedi/internal/database"
	"empedi/internal/domain/application"
	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("already applied to this job")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.created_at, a.updated_at`

func scanApplication(row database.Row, extra ...any) (application.Application, error) {
	var a application.Application
	var status string
	dest := append([]any{&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &status, &a.CreatedAt, &a.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusApplied
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, job_id, applicant_id, cover_letter, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		a.ID, a.JobID, a.ApplicantID, a.CoverLetter, string(a.Status),
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		switch {
		case isUniqueViolation(err):
			return application.Application{}, ErrApplicationExists
		case isForeignKeyViolation(err):
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications a WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// ListByJob returns a posting's applications with applicant details, newest
// first.
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, u.name, u.email, u.avatar_url, u.type
		 FROM job_applications a JOIN users u ON u.id = a.applicant_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC, a.id`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var who application.Applicant
		a, err := scanApplication(rows, &who.Name, &who.Email, &who.AvatarURL, &who.Type)
		if err != nil {
			return nil, err
		}
		a.Applicant = &who
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByApplicant returns the applicant's applications with a brief of each
// posting, newest first.
func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, j.title, j.kind, j.status, j.company_name, j.company_logo_url, j.location
		 FROM job_applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC, a.id`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var brief application.JobBrief
		var kind, status string
		a, err := scanApplication(rows, &brief.Title, &kind, &status, &brief.CompanyName, &brief.CompanyLogoURL, &brief.Location)
		if err != nil {
			return nil, err
		}
		brief.Kind, brief.Status = job.Kind(kind), job.Status(status)
		a.Job = &brief
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`UPDATE job_applications a SET status = $2, updated_at = now()
		 WHERE a.id = $1
		 RETURNING `+applicationColumns,
		id, string(status),
	))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}
