package application

import (
	"time"

	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusSelected    Status = "selected"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusReviewing, StatusShortlisted, StatusSelected, StatusRejected:
		return true
	default:
		return false
	}
}

// Application is one candidate's application to one posting. A candidate
// applies to a posting at most once.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter string
	Status      Status

	// Filled by list reads: Applicant on the poster's view, Job on the
	// applicant's own list.
	Applicant *Applicant
	Job       *JobBrief

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Applicant struct {
	Name      string
	Email     string
	AvatarURL *string
	Type      string
}

type JobBrief struct {
	Title          string
	Kind           job.Kind
	Status         job.Status
	CompanyName    string
	CompanyLogoURL string
	Location       string
}
