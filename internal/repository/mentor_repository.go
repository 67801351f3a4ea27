package repository

import (
	"context"
	"errors"
	"fmt"

	"empedi/internal/database"
	"empedi/internal/domain/mentor"
	"empedi/internal/domain/recommendation"

	"github.com/google/uuid"
)

var (
	ErrMentorNotFound = errors.New("mentor profile not found")
	ErrMentorExists   = errors.New("mentor profile already exists for user")
)

type MentorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (mentor.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (mentor.Profile, error)
	List(ctx context.Context) ([]mentor.Profile, error)
	Create(ctx context.Context, p mentor.Profile) (mentor.Profile, error)
	UpdateCurated(ctx context.Context, id uuid.UUID, ids MentorCuratedIDs) error

	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.MentorSummary, error)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.MentorSummary, error)
}

// MentorCuratedIDs holds the four curated lists of a mentor profile.
type MentorCuratedIDs struct {
	MentorIDs     []uuid.UUID
	JobIDs        []uuid.UUID
	CourseIDs     []uuid.UUID
	InternshipIDs []uuid.UUID
}

type PostgresMentorRepository struct {
	db database.DB
}

func NewPostgresMentorRepository(db database.DB) *PostgresMentorRepository {
	return &PostgresMentorRepository{db: db}
}

const mentorColumns = `m.id, m.user_id, COALESCE(u.name, ''), u.avatar_url,
	m.about, m.industry, m.current_position, m.current_company, m.experience_years,
	m.quick_call_price::float8, m.price_type, m.session_duration, m.rating::float8, m.skill_ids,
	m.related_mentor_ids, m.recommended_job_ids, m.recommended_course_ids, m.recommended_internship_ids,
	m.created_at, m.updated_at`

// The owning user is joined inline; a profile whose user row is gone still
// resolves, with a nil user.
const mentorSummaryColumns = `m.id, u.id, u.name, u.avatar_url,
	m.industry, m.experience_years, m.quick_call_price::float8, m.session_duration`

func scanMentor(row database.Row) (mentor.Profile, error) {
	var p mentor.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.UserName, &p.UserAvatarURL,
		&p.About, &p.Industry, &p.CurrentPosition, &p.CurrentCompany, &p.ExperienceYears,
		&p.QuickCallPrice, &p.PriceType, &p.SessionDuration, &p.Rating, &p.SkillIDs,
		&p.RelatedMentorIDs, &p.RecommendedJobIDs, &p.RecommendedCourseIDs, &p.RecommendedInternshipIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return mentor.Profile{}, err
	}
	return p, nil
}

func scanMentorSummaries(rows database.Rows) ([]recommendation.MentorSummary, error) {
	defer rows.Close()

	out := make([]recommendation.MentorSummary, 0)
	for rows.Next() {
		var s recommendation.MentorSummary
		var userID *uuid.UUID
		var userName *string
		var avatar *string
		if err := rows.Scan(
			&s.ID, &userID, &userName, &avatar,
			&s.Industry, &s.ExperienceYears, &s.QuickCallPrice, &s.SessionDuration,
		); err != nil {
			return nil, err
		}
		if userID != nil {
			u := &recommendation.MentorUser{ID: *userID, AvatarURL: avatar}
			if userName != nil {
				u.Name = *userName
			}
			s.User = u
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMentorRepository) FindByID(ctx context.Context, id uuid.UUID) (mentor.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+mentorColumns+`
		 FROM mentor_profiles m LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.id = $1`,
		id,
	)
	p, err := scanMentor(row)
	if err != nil {
		if isNoRows(err) {
			return mentor.Profile{}, ErrMentorNotFound
		}
		return mentor.Profile{}, err
	}
	return p, nil
}

func (r *PostgresMentorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (mentor.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+mentorColumns+`
		 FROM mentor_profiles m LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.user_id = $1`,
		userID,
	)
	p, err := scanMentor(row)
	if err != nil {
		if isNoRows(err) {
			return mentor.Profile{}, ErrMentorNotFound
		}
		return mentor.Profile{}, err
	}
	return p, nil
}

func (r *PostgresMentorRepository) Create(ctx context.Context, p mentor.Profile) (mentor.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PriceType == "" {
		p.PriceType = "session"
	}
	if p.SessionDuration == 0 {
		p.SessionDuration = 30
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO mentor_profiles (
			id, user_id, about, industry, current_position, current_company, experience_years,
			quick_call_price, price_type, session_duration, rating, skill_ids,
			related_mentor_ids, recommended_job_ids, recommended_course_ids, recommended_internship_ids
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12::uuid[],
			$13::uuid[], $14::uuid[], $15::uuid[], $16::uuid[]
		)
		RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.About, p.Industry, p.CurrentPosition, p.CurrentCompany, p.ExperienceYears,
		p.QuickCallPrice, p.PriceType, p.SessionDuration, p.Rating, nonNilIDs(p.SkillIDs),
		nonNilIDs(p.RelatedMentorIDs), nonNilIDs(p.RecommendedJobIDs), nonNilIDs(p.RecommendedCourseIDs), nonNilIDs(p.RecommendedInternshipIDs),
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return mentor.Profile{}, ErrMentorExists
		}
		return mentor.Profile{}, fmt.Errorf("insert mentor profile: %w", err)
	}
	return p, nil
}

func (r *PostgresMentorRepository) FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.MentorSummary, error) {
	where, args := filterWhere(f, "m.")
	args = append(args, limit)

	q := fmt.Sprintf(
		`SELECT %s
		 FROM mentor_profiles m LEFT JOIN users u ON u.id = m.user_id
		 WHERE %s ORDER BY %s LIMIT $%d`,
		mentorSummaryColumns, where, insertionOrder("m."), len(args),
	)
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanMentorSummaries(rows)
}

func (r *PostgresMentorRepository) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.MentorSummary, error) {
	if len(ids) == 0 {
		return []recommendation.MentorSummary{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+mentorSummaryColumns+`
		 FROM unnest($1::uuid[]) WITH ORDINALITY AS o(id, ord)
		 JOIN mentor_profiles m ON m.id = o.id
		 LEFT JOIN users u ON u.id = m.user_id
		 ORDER BY o.ord`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return scanMentorSummaries(rows)
}

// List returns every profile, highest rated first.
func (r *PostgresMentorRepository) List(ctx context.Context) ([]mentor.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+mentorColumns+`
		 FROM mentor_profiles m LEFT JOIN users u ON u.id = m.user_id
		 ORDER BY m.rating DESC, m.created_at DESC, m.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mentor.Profile, 0)
	for rows.Next() {
		p, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMentorRepository) UpdateCurated(ctx context.Context, id uuid.UUID, ids MentorCuratedIDs) error {
	n, err := r.db.Exec(ctx,
		`UPDATE mentor_profiles
		 SET related_mentor_ids = $2::uuid[],
		     recommended_job_ids = $3::uuid[],
		     recommended_course_ids = $4::uuid[],
		     recommended_internship_ids = $5::uuid[],
		     updated_at = now()
		 WHERE id = $1`,
		id, nonNilIDs(ids.MentorIDs), nonNilIDs(ids.JobIDs), nonNilIDs(ids.CourseIDs), nonNilIDs(ids.InternshipIDs),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMentorNotFound
	}
	return nil
}
