package repository

import (
	"context"
	"errors"

	"empedi/internal/database"
	"empedi/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrSkillExists = errors.New("skill already exists")

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name string, parentID *uuid.UUID) (skill.Skill, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, parent_id, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.ParentID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string, parentID *uuid.UUID) (skill.Skill, error) {
	s := skill.Skill{ID: uuid.New(), Name: name, ParentID: parentID}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, parent_id) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.Name, s.ParentID,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrSkillExists
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// CountExisting returns how many of the distinct ids exist in the catalog.
func (r *PostgresSkillRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM skills WHERE id = ANY($1::uuid[])`, ids)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
