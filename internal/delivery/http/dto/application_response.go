package dto

import (
	"time"

	"empedi/internal/domain/application"
	"empedi/internal/domain/job"

	"github.com/google/uuid"
)

type ApplicantResponse struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
	Type      string  `json:"type"`
}

type ApplicationJobResponse struct {
	Title          string     `json:"title"`
	Kind           job.Kind   `json:"kind"`
	Status         job.Status `json:"status"`
	CompanyName    string     `json:"companyName"`
	CompanyLogoURL string     `json:"companyLogoUrl"`
	Location       string     `json:"location"`
}

type ApplicationResponse struct {
	ID          uuid.UUID               `json:"id"`
	JobID       uuid.UUID               `json:"jobId"`
	ApplicantID uuid.UUID               `json:"applicantId"`
	CoverLetter string                  `json:"coverLetter"`
	Status      application.Status      `json:"status"`
	Applicant   *ApplicantResponse      `json:"applicant,omitempty"`
	Job         *ApplicationJobResponse `json:"job,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	res := ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		CoverLetter: a.CoverLetter,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Applicant != nil {
		res.Applicant = &ApplicantResponse{
			Name:      a.Applicant.Name,
			Email:     a.Applicant.Email,
			AvatarURL: a.Applicant.AvatarURL,
			Type:      a.Applicant.Type,
		}
	}
	if a.Job != nil {
		res.Job = &ApplicationJobResponse{
			Title:          a.Job.Title,
			Kind:           a.Job.Kind,
			Status:         a.Job.Status,
			CompanyName:    a.Job.CompanyName,
			CompanyLogoURL: a.Job.CompanyLogoURL,
			Location:       a.Job.Location,
		}
	}
	return res
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
