package mentor

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	UserName        string
	UserAvatarURL   *string
	About           string
	Industry        string
	CurrentPosition string
	CurrentCompany  string
	ExperienceYears int
	QuickCallPrice  float64
	PriceType       string
	SessionDuration int
	Rating          float64
	SkillIDs        []uuid.UUID

	RelatedMentorIDs         []uuid.UUID
	RecommendedJobIDs        []uuid.UUID
	RecommendedCourseIDs     []uuid.UUID
	RecommendedInternshipIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
