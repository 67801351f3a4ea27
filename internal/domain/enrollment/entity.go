package enrollment

import (
	"time"

	"empedi/internal/domain/course"

	"github.com/google/uuid"
)

type Status string

const (
	StatusEnrolled   Status = "enrolled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusDropped    Status = "dropped"
)

// Enrollment ties a user to a course. Progress is a percentage, 0..100.
type Enrollment struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	CourseID uuid.UUID
	Status   Status
	Progress int

	// Course is set on the enrolled user's list.
	Course *CourseBrief

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CourseBrief struct {
	Title     string
	Slug      string
	BannerURL string
	Level     course.Level
	Duration  string
}
