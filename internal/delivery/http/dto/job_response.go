package dto

import (
	"time"

	"empedi/internal/domain/job"
	"empedi/internal/usecase"
	"empedi/internal/usecase/card"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                  uuid.UUID    `json:"id"`
	Kind                job.Kind     `json:"kind"`
	Status              job.Status   `json:"status"`
	Title               string       `json:"title"`
	Subtitle            string       `json:"subtitle"`
	CompanyName         string       `json:"companyName"`
	CompanyLogoURL      string       `json:"companyLogoUrl"`
	Location            string       `json:"location"`
	WorkMode            job.WorkMode `json:"workMode"`
	Description         string       `json:"description"`
	ShortDescription    string       `json:"shortDescription"`
	Salary              job.Salary   `json:"salary"`
	SalaryText          string       `json:"salaryText"`
	Experience          string       `json:"experience"`
	SkillIDs            []uuid.UUID  `json:"skillIds"`
	ApplicationDeadline *time.Time   `json:"applicationDeadline"`
	ExternalApply       bool         `json:"externalApply"`
	ApplyLink           string       `json:"applyLink,omitempty"`
	PosterID            *uuid.UUID   `json:"posterId,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

type JobDetailResponse struct {
	JobResponse
	Growth               usecase.JobGrowth  `json:"growth"`
	RelatedOpportunities usecase.JobRelated `json:"relatedOpportunities"`
}

func NewJobResponse(j job.Job) JobResponse {
	skills := j.SkillIDs
	if skills == nil {
		skills = []uuid.UUID{}
	}
	return JobResponse{
		ID:                  j.ID,
		Kind:                j.Kind,
		Status:              j.Status,
		Title:               j.Title,
		Subtitle:            j.Subtitle,
		CompanyName:         j.CompanyName,
		CompanyLogoURL:      j.CompanyLogoURL,
		Location:            j.Location,
		WorkMode:            j.WorkMode,
		Description:         j.Description,
		ShortDescription:    j.ShortDescription,
		Salary:              j.Salary,
		SalaryText:          card.SalaryText(j.Salary),
		Experience:          card.ExperienceText(j.MinExperience),
		SkillIDs:            skills,
		ApplicationDeadline: j.ApplicationDeadline,
		ExternalApply:       j.ExternalApply,
		ApplyLink:           j.ApplyLink,
		PosterID:            j.PosterID,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func NewJobDetailResponse(d usecase.JobDetail) JobDetailResponse {
	return JobDetailResponse{
		JobResponse:          NewJobResponse(d.Job),
		Growth:               d.Growth,
		RelatedOpportunities: d.Related,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}
