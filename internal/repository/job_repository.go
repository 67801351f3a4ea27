package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"empedi/internal/database"
	"empedi/internal/domain/job"
	"empedi/internal/domain/recommendation"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, f job.ListFilter) ([]job.Job, error)
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error
	UpdateGrowth(ctx context.Context, id uuid.UUID, courseIDs, mentorIDs []uuid.UUID) error
	UpdateRelated(ctx context.Context, id uuid.UUID, jobIDs, internshipIDs []uuid.UUID) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)

	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.JobSummary, error)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.JobSummary, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, kind, status, title, subtitle, company_id, company_name, company_logo_url,
	location, work_mode, description, short_description,
	salary_min::float8, salary_max::float8, salary_currency, salary_period, is_stipend,
	min_experience, skill_ids, application_deadline, external_apply, apply_link, poster_id,
	growth_course_ids, growth_mentor_ids, related_job_ids, related_internship_ids,
	created_at, updated_at`

const jobSummaryColumns = `j.id, j.title, j.company_name, j.company_logo_url, j.location,
	j.salary_min::float8, j.salary_max::float8, j.salary_currency, j.salary_period, j.is_stipend, j.kind`

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var kind, status, workMode string
	err := row.Scan(
		&j.ID, &kind, &status, &j.Title, &j.Subtitle, &j.CompanyID, &j.CompanyName, &j.CompanyLogoURL,
		&j.Location, &workMode, &j.Description, &j.ShortDescription,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &j.Salary.Period, &j.Salary.IsStipend,
		&j.MinExperience, &j.SkillIDs, &j.ApplicationDeadline, &j.ExternalApply, &j.ApplyLink, &j.PosterID,
		&j.GrowthCourseIDs, &j.GrowthMentorIDs, &j.RelatedJobIDs, &j.RelatedInternshipIDs,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Kind = job.Kind(kind)
	j.Status = job.Status(status)
	j.WorkMode = job.WorkMode(workMode)
	return j, nil
}

func scanJobSummaries(rows database.Rows) ([]recommendation.JobSummary, error) {
	defer rows.Close()

	out := make([]recommendation.JobSummary, 0)
	for rows.Next() {
		var s recommendation.JobSummary
		var kind string
		if err := rows.Scan(
			&s.ID, &s.Title, &s.CompanyName, &s.CompanyLogoURL, &s.Location,
			&s.Salary.Min, &s.Salary.Max, &s.Salary.Currency, &s.Salary.Period, &s.Salary.IsStipend, &kind,
		); err != nil {
			return nil, err
		}
		s.Kind = job.Kind(kind)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

// List returns active postings, newest first.
func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	conds := []string{"status = 'active'"}
	args := make([]any, 0, 3)
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.WorkMode != "" {
		args = append(args, string(f.WorkMode))
		conds = append(conds, fmt.Sprintf("work_mode = $%d", len(args)))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		args = append(args, loc)
		conds = append(conds, fmt.Sprintf("strpos(lower(location), lower($%d)) > 0", len(args)))
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE `+strings.Join(conds, " AND ")+` ORDER BY created_at DESC, id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (
			id, kind, status, title, subtitle, company_id, company_name, company_logo_url,
			location, work_mode, description, short_description,
			salary_min, salary_max, salary_currency, salary_period, is_stipend,
			min_experience, skill_ids, application_deadline, external_apply, apply_link, poster_id,
			growth_course_ids, growth_mentor_ids, related_job_ids, related_internship_ids
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19::uuid[], $20, $21, $22, $23,
			$24::uuid[], $25::uuid[], $26::uuid[], $27::uuid[]
		)
		RETURNING created_at, updated_at`,
		j.ID, string(j.Kind), string(j.Status), j.Title, j.Subtitle, j.CompanyID, j.CompanyName, j.CompanyLogoURL,
		j.Location, string(j.WorkMode), j.Description, j.ShortDescription,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency, j.Salary.Period, j.Salary.IsStipend,
		j.MinExperience, nonNilIDs(j.SkillIDs), j.ApplicationDeadline, j.ExternalApply, j.ApplyLink, j.PosterID,
		nonNilIDs(j.GrowthCourseIDs), nonNilIDs(j.GrowthMentorIDs), nonNilIDs(j.RelatedJobIDs), nonNilIDs(j.RelatedInternshipIDs),
	)
	if err := row.Scan(&j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return j, nil
}

// Update rewrites the editable fields of a posting. Ownership and curated
// lists are left alone.
func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs SET
			kind = $2, status = $3, title = $4, subtitle = $5, company_name = $6, company_logo_url = $7,
			location = $8, work_mode = $9, description = $10, short_description = $11,
			salary_min = $12, salary_max = $13, salary_currency = $14, salary_period = $15, is_stipend = $16,
			min_experience = $17, skill_ids = $18::uuid[], application_deadline = $19,
			external_apply = $20, apply_link = $21, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		j.ID, string(j.Kind), string(j.Status), j.Title, j.Subtitle, j.CompanyName, j.CompanyLogoURL,
		j.Location, string(j.WorkMode), j.Description, j.ShortDescription,
		j.Salary.Min, j.Salary.Max, j.Salary.Currency, j.Salary.Period, j.Salary.IsStipend,
		j.MinExperience, nonNilIDs(j.SkillIDs), j.ApplicationDeadline,
		j.ExternalApply, j.ApplyLink,
	)
	if err := row.Scan(&j.UpdatedAt); err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateGrowth(ctx context.Context, id uuid.UUID, courseIDs, mentorIDs []uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET growth_course_ids = $2::uuid[], growth_mentor_ids = $3::uuid[], updated_at = now()
		 WHERE id = $1`,
		id, nonNilIDs(courseIDs), nonNilIDs(mentorIDs),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateRelated(ctx context.Context, id uuid.UUID, jobIDs, internshipIDs []uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET related_job_ids = $2::uuid[], related_internship_ids = $3::uuid[], updated_at = now()
		 WHERE id = $1`,
		id, nonNilIDs(jobIDs), nonNilIDs(internshipIDs),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// CloseExpired closes every active posting whose application deadline is
// before now and returns how many were closed.
func (r *PostgresJobRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE jobs
		 SET status = 'closed', updated_at = now()
		 WHERE status = 'active'
		   AND application_deadline IS NOT NULL
		   AND application_deadline < $1`,
		now,
	)
}

func (r *PostgresJobRepository) FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.JobSummary, error) {
	where, args := filterWhere(f, "j.")
	args = append(args, limit)

	q := fmt.Sprintf(
		`SELECT %s FROM jobs j WHERE %s ORDER BY %s LIMIT $%d`,
		jobSummaryColumns, where, insertionOrder("j."), len(args),
	)
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanJobSummaries(rows)
}

// FindSummariesByIDs hydrates a curated id list, keeping the curated order.
// Ids that no longer resolve are skipped.
func (r *PostgresJobRepository) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.JobSummary, error) {
	if len(ids) == 0 {
		return []recommendation.JobSummary{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobSummaryColumns+`
		 FROM unnest($1::uuid[]) WITH ORDINALITY AS c(id, ord)
		 JOIN jobs j ON j.id = c.id
		 ORDER BY c.ord`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return scanJobSummaries(rows)
}
