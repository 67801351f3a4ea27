package recommendation

import (
	"empedi/internal/domain/course"
	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

// JobSummary is the projection returned for both the job and internship
// categories.
type JobSummary struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	CompanyName    string     `json:"companyName"`
	CompanyLogoURL string     `json:"companyLogoUrl"`
	Location       string     `json:"location"`
	Salary         job.Salary `json:"salary"`
	Kind           job.Kind   `json:"kind"`
}

type CourseSummary struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	BannerURL     string       `json:"bannerUrl"`
	Price         string       `json:"price"`
	OriginalPrice string       `json:"originalPrice"`
	Level         course.Level `json:"level"`
	Rating        float64      `json:"rating"`
	Duration      string       `json:"duration"`
}

// MentorUser is the owning user identity joined into a mentor summary.
type MentorUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
}

type MentorSummary struct {
	ID              uuid.UUID   `json:"id"`
	User            *MentorUser `json:"user"`
	Industry        string      `json:"industry"`
	ExperienceYears int         `json:"experienceYears"`
	QuickCallPrice  float64     `json:"quickCallPrice"`
	SessionDuration int         `json:"sessionDuration"`
}

// Result is the aggregate of one resolver call. Every slice is non-nil.
type Result struct {
	Jobs        []JobSummary    `json:"recommendedJobs"`
	Internships []JobSummary    `json:"recommendedInternships"`
	Courses     []CourseSummary `json:"recommendedCourses"`
	Mentors     []MentorSummary `json:"recommendedMentors"`
}

func EmptyResult() Result {
	return Result{
		Jobs:        []JobSummary{},
		Internships: []JobSummary{},
		Courses:     []CourseSummary{},
		Mentors:     []MentorSummary{},
	}
}
