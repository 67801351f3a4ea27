package repository

import (
	"context"
	"errors"
	"fmt"

	"empedi/internal/database"
	"empedi/internal/domain/course"
	"empedi/internal/domain/recommendation"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseSlugTaken = errors.New("course slug already exists")
)

type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (course.Course, error)
	FindBySlug(ctx context.Context, slug string) (course.Course, error)
	List(ctx context.Context) ([]course.Course, error)
	Create(ctx context.Context, c course.Course) (course.Course, error)
	UpdateGrowth(ctx context.Context, id uuid.UUID, g CourseGrowthIDs) error

	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.CourseSummary, error)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.CourseSummary, error)
}

// CourseGrowthIDs holds the four curated lists of a course.
type CourseGrowthIDs struct {
	JobIDs        []uuid.UUID
	InternshipIDs []uuid.UUID
	CourseIDs     []uuid.UUID
	MentorIDs     []uuid.UUID
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

const courseColumns = `id, title, slug, banner_url, price, original_price, level, rating::float8,
	duration, format, short_description, skill_ids, is_active,
	growth_job_ids, growth_internship_ids, next_level_course_ids, growth_mentor_ids,
	created_at, updated_at`

const courseSummaryColumns = `c.id, c.title, c.slug, c.banner_url, c.price, c.original_price, c.level, c.rating::float8, c.duration`

func scanCourse(row database.Row) (course.Course, error) {
	var c course.Course
	var level string
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.BannerURL, &c.Price, &c.OriginalPrice, &level, &c.Rating,
		&c.Duration, &c.Format, &c.ShortDescription, &c.SkillIDs, &c.IsActive,
		&c.GrowthJobIDs, &c.GrowthInternshipIDs, &c.NextLevelCourseIDs, &c.GrowthMentorIDs,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	c.Level = course.Level(level)
	return c, nil
}

func scanCourseSummaries(rows database.Rows) ([]recommendation.CourseSummary, error) {
	defer rows.Close()

	out := make([]recommendation.CourseSummary, 0)
	for rows.Next() {
		var s recommendation.CourseSummary
		var level string
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.BannerURL, &s.Price, &s.OriginalPrice, &level, &s.Rating, &s.Duration); err != nil {
			return nil, err
		}
		s.Level = course.Level(level)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return course.Course{}, ErrCourseNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) FindBySlug(ctx context.Context, slug string) (course.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE slug = $1`, slug))
	if err != nil {
		if isNoRows(err) {
			return course.Course{}, ErrCourseNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

// List returns the active catalog, newest first.
func (r *PostgresCourseRepository) List(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE is_active ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c course.Course) (course.Course, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO courses (
			id, title, slug, banner_url, price, original_price, level, rating,
			duration, format, short_description, skill_ids, is_active,
			growth_job_ids, growth_internship_ids, next_level_course_ids, growth_mentor_ids
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12::uuid[], $13,
			$14::uuid[], $15::uuid[], $16::uuid[], $17::uuid[]
		)
		RETURNING created_at, updated_at`,
		c.ID, c.Title, c.Slug, c.BannerURL, c.Price, c.OriginalPrice, string(c.Level), c.Rating,
		c.Duration, c.Format, c.ShortDescription, nonNilIDs(c.SkillIDs), c.IsActive,
		nonNilIDs(c.GrowthJobIDs), nonNilIDs(c.GrowthInternshipIDs), nonNilIDs(c.NextLevelCourseIDs), nonNilIDs(c.GrowthMentorIDs),
	)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return course.Course{}, ErrCourseSlugTaken
		}
		return course.Course{}, fmt.Errorf("insert course: %w", err)
	}
	return c, nil
}

func (r *PostgresCourseRepository) UpdateGrowth(ctx context.Context, id uuid.UUID, g CourseGrowthIDs) error {
	n, err := r.db.Exec(ctx,
		`UPDATE courses
		 SET growth_job_ids = $2::uuid[],
		     growth_internship_ids = $3::uuid[],
		     next_level_course_ids = $4::uuid[],
		     growth_mentor_ids = $5::uuid[],
		     updated_at = now()
		 WHERE id = $1`,
		id, nonNilIDs(g.JobIDs), nonNilIDs(g.InternshipIDs), nonNilIDs(g.CourseIDs), nonNilIDs(g.MentorIDs),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *PostgresCourseRepository) FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.CourseSummary, error) {
	where, args := filterWhere(f, "c.")
	args = append(args, limit)

	q := fmt.Sprintf(
		`SELECT %s FROM courses c WHERE %s ORDER BY %s LIMIT $%d`,
		courseSummaryColumns, where, insertionOrder("c."), len(args),
	)
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanCourseSummaries(rows)
}

func (r *PostgresCourseRepository) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.CourseSummary, error) {
	if len(ids) == 0 {
		return []recommendation.CourseSummary{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+courseSummaryColumns+`
		 FROM unnest($1::uuid[]) WITH ORDINALITY AS o(id, ord)
		 JOIN courses c ON c.id = o.id
		 ORDER BY o.ord`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return scanCourseSummaries(rows)
}
