package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"empedi/internal/domain/application"
	"empedi/internal/domain/job"
	"empedi/internal/domain/user"
	"empedi/internal/metrics"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

var (
	errJobNotOpen      = fmt.Errorf("%w: job is not accepting applications", ErrInvalidInput)
	errExternalListing = fmt.Errorf("%w: job takes applications at its apply link", ErrInvalidInput)
)

type JobApplicationUsecase interface {
	Apply(ctx context.Context, applicantID uuid.UUID, applicantType user.Type, jobID uuid.UUID, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	// ListForJob and UpdateStatus are open to the posting's owner and to
	// admins.
	ListForJob(ctx context.Context, actorID uuid.UUID, actorType user.Type, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorType user.Type, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type JobApplications struct {
	apps   repository.ApplicationRepository
	jobs   repository.JobRepository
	logger *log.Logger
}

func NewJobApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, logger *log.Logger) *JobApplications {
	if logger == nil {
		logger = log.Default()
	}
	return &JobApplications{apps: apps, jobs: jobs, logger: logger}
}

// Apply files an application. Full-time postings take professionals and
// internships take students.
func (u *JobApplications) Apply(ctx context.Context, applicantID uuid.UUID, applicantType user.Type, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}
	if !eligible(applicantType, j.Kind) {
		return application.Application{}, ErrForbidden
	}
	if !j.IsActive() {
		return application.Application{}, errJobNotOpen
	}
	if j.ExternalApply {
		return application.Application{}, errExternalListing
	}

	a, err := u.apps.Create(ctx, application.Application{
		JobID:       j.ID,
		ApplicantID: applicantID,
		CoverLetter: strings.TrimSpace(coverLetter),
		Status:      application.StatusApplied,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationExists):
			return application.Application{}, ErrConflict
		case errors.Is(err, repository.ErrJobNotFound):
			return application.Application{}, ErrNotFound
		}
		u.logger.Printf("[JobApplication] apply failed job=%s applicant=%s err=%v", jobID, applicantID, err)
		return application.Application{}, ErrInternal
	}
	metrics.ApplicationsSubmitted.WithLabelValues(string(j.Kind)).Inc()
	return a, nil
}

func (u *JobApplications) ListMine(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	items, err := u.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		u.logger.Printf("[JobApplication] list mine failed applicant=%s err=%v", applicantID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobApplications) ListForJob(ctx context.Context, actorID uuid.UUID, actorType user.Type, jobID uuid.UUID) ([]application.Application, error) {
	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !canReview(actorID, actorType, j) {
		return nil, ErrForbidden
	}
	items, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		u.logger.Printf("[JobApplication] list for job failed job=%s err=%v", jobID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobApplications) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorType user.Type, applicationID uuid.UUID, status application.Status) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, ErrInvalidInput
	}
	a, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, u.mapAppErr(err, applicationID)
	}
	j, err := u.loadJob(ctx, a.JobID)
	if err != nil {
		return application.Application{}, err
	}
	if !canReview(actorID, actorType, j) {
		return application.Application{}, ErrForbidden
	}
	if a.Status == status {
		return a, nil
	}

	updated, err := u.apps.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return application.Application{}, u.mapAppErr(err, applicationID)
	}
	return updated, nil
}

func (u *JobApplications) loadJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.logger.Printf("[JobApplication] load job failed id=%s err=%v", id, err)
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *JobApplications) mapAppErr(err error, id uuid.UUID) error {
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return ErrNotFound
	}
	u.logger.Printf("[JobApplication] load application failed id=%s err=%v", id, err)
	return ErrInternal
}

func eligible(t user.Type, k job.Kind) bool {
	switch k {
	case job.KindJob:
		return t == user.TypeProfessional
	case job.KindInternship:
		return t == user.TypeStudent
	default:
		return false
	}
}

func canReview(actorID uuid.UUID, actorType user.Type, j job.Job) bool {
	if actorType == user.TypeAdmin {
		return true
	}
	return j.PosterID != nil && *j.PosterID == actorID
}
