package course

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelBeginner           Level = "Beginner"
	LevelIntermediate       Level = "Intermediate"
	LevelAdvanced           Level = "Advanced"
	LevelBeginnerToAdvanced Level = "Beginner to Advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelBeginnerToAdvanced:
		return true
	default:
		return false
	}
}

type Course struct {
	ID               uuid.UUID
	Title            string
	Slug             string
	BannerURL        string
	Price            string
	OriginalPrice    string
	Level            Level
	Rating           float64
	Duration         string
	Format           string
	ShortDescription string
	SkillIDs         []uuid.UUID
	IsActive         bool

	GrowthJobIDs        []uuid.UUID
	GrowthInternshipIDs []uuid.UUID
	NextLevelCourseIDs  []uuid.UUID
	GrowthMentorIDs     []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
