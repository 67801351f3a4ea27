package job

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates full-time postings from internships. Both live in the
// same table and share one schema.
type Kind string

const (
	KindJob        Kind = "job"
	KindInternship Kind = "internship"
)

func (k Kind) Valid() bool {
	return k == KindJob || k == KindInternship
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDraft:
		return true
	default:
		return false
	}
}

type WorkMode string

const (
	WorkModeRemote WorkMode = "Work From Home"
	WorkModeOffice WorkMode = "Work From Office"
	WorkModeHybrid WorkMode = "Hybrid"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeOffice, WorkModeHybrid:
		return true
	default:
		return false
	}
}

type Salary struct {
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
	Currency  string   `json:"currency"`
	Period    string   `json:"period"`
	IsStipend bool     `json:"isStipend"`
}

type Job struct {
	ID                  uuid.UUID
	Kind                Kind
	Status              Status
	Title               string
	Subtitle            string
	CompanyID           *uuid.UUID
	CompanyName         string
	CompanyLogoURL      string
	Location            string
	WorkMode            WorkMode
	Description         string
	ShortDescription    string
	Salary              Salary
	MinExperience       int
	SkillIDs            []uuid.UUID
	ApplicationDeadline *time.Time
	ExternalApply       bool
	ApplyLink           string
	PosterID            *uuid.UUID

	// Curated recommendation lists, in author order.
	GrowthCourseIDs      []uuid.UUID
	GrowthMentorIDs      []uuid.UUID
	RelatedJobIDs        []uuid.UUID
	RelatedInternshipIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j Job) IsActive() bool {
	return j.Status == StatusActive
}

// ListFilter narrows the public job board. Empty fields match everything;
// Location matches case-insensitively anywhere in the location text.
type ListFilter struct {
	Kind     Kind
	WorkMode WorkMode
	Location string
}
