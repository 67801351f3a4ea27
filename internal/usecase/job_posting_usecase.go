package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"empedi/internal/domain/job"
	"empedi/internal/domain/user"
	"empedi/internal/metrics"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

// EventPublisher fans posting events out to other processes.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type CreateJobInput struct {
	Kind                job.Kind
	Status              job.Status
	Title               string
	Subtitle            string
	CompanyName         string
	CompanyLogoURL      string
	Location            string
	WorkMode            job.WorkMode
	Description         string
	ShortDescription    string
	Salary              job.Salary
	MinExperience       int
	SkillIDs            []uuid.UUID
	ApplicationDeadline *time.Time
	ExternalApply       bool
	ApplyLink           string
}

type JobPostingUsecase interface {
	CreateJob(ctx context.Context, posterID uuid.UUID, in CreateJobInput) (job.Job, error)
	UpdateJob(ctx context.Context, actorID, jobID uuid.UUID, in CreateJobInput) (job.Job, error)
	DeleteJob(ctx context.Context, actorID, jobID uuid.UUID) error
	UpdateStatus(ctx context.Context, actorID, jobID uuid.UUID, status job.Status) (job.Job, error)
	UpdateGrowth(ctx context.Context, actorID, jobID uuid.UUID, courseIDs, mentorIDs []uuid.UUID) error
	UpdateRelated(ctx context.Context, actorID, jobID uuid.UUID, jobIDs, internshipIDs []uuid.UUID) error
}

type JobPosting struct {
	jobs   repository.JobRepository
	skills repository.SkillRepository
	users  user.Repository
	events EventPublisher
	logger *log.Logger
	now    func() time.Time
}

func NewJobPostingUsecase(jobs repository.JobRepository, skills repository.SkillRepository, users user.Repository, events EventPublisher, logger *log.Logger) *JobPosting {
	if logger == nil {
		logger = log.Default()
	}
	return &JobPosting{jobs: jobs, skills: skills, users: users, events: events, logger: logger, now: time.Now}
}

func (u *JobPosting) CreateJob(ctx context.Context, posterID uuid.UUID, in CreateJobInput) (job.Job, error) {
	poster, err := u.users.GetUserByID(ctx, posterID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return job.Job{}, ErrUnauthorized
		}
		return job.Job{}, ErrInternal
	}
	if poster.Type != user.TypeCompany {
		return job.Job{}, ErrForbidden
	}

	j, err := u.buildJob(in)
	if err != nil {
		return job.Job{}, err
	}
	if err := u.checkSkills(ctx, j.SkillIDs); err != nil {
		return job.Job{}, err
	}

	j.PosterID = &poster.ID
	j.CompanyID = &poster.ID
	if j.CompanyName == "" {
		j.CompanyName = poster.Name
	}
	if j.CompanyLogoURL == "" && poster.AvatarURL != nil {
		j.CompanyLogoURL = *poster.AvatarURL
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.logger.Printf("[JobPosting] create failed poster=%s err=%v", posterID, err)
		return job.Job{}, ErrInternal
	}
	metrics.JobsPosted.WithLabelValues(string(created.Kind)).Inc()
	u.publish(ctx, job.NewEvent(job.EventPosted, created, u.now()))
	return created, nil
}

// UpdateJob replaces the editable fields of the actor's posting. Ownership,
// company and curated lists carry over.
func (u *JobPosting) UpdateJob(ctx context.Context, actorID, jobID uuid.UUID, in CreateJobInput) (job.Job, error) {
	current, err := u.ownedJob(ctx, actorID, jobID)
	if err != nil {
		return job.Job{}, err
	}
	j, err := u.buildJob(in)
	if err != nil {
		return job.Job{}, err
	}
	if err := u.checkSkills(ctx, j.SkillIDs); err != nil {
		return job.Job{}, err
	}

	j.ID = current.ID
	j.PosterID, j.CompanyID = current.PosterID, current.CompanyID
	if j.CompanyName == "" {
		j.CompanyName = current.CompanyName
	}
	if j.CompanyLogoURL == "" {
		j.CompanyLogoURL = current.CompanyLogoURL
	}
	j.GrowthCourseIDs, j.GrowthMentorIDs = current.GrowthCourseIDs, current.GrowthMentorIDs
	j.RelatedJobIDs, j.RelatedInternshipIDs = current.RelatedJobIDs, current.RelatedInternshipIDs
	j.CreatedAt = current.CreatedAt

	updated, err := u.jobs.Update(ctx, j)
	if err != nil {
		return job.Job{}, u.mapWriteErr(err, jobID)
	}
	u.publish(ctx, job.NewEvent(job.EventUpdated, updated, u.now()))
	return updated, nil
}

func (u *JobPosting) DeleteJob(ctx context.Context, actorID, jobID uuid.UUID) error {
	j, err := u.ownedJob(ctx, actorID, jobID)
	if err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, jobID); err != nil {
		return u.mapWriteErr(err, jobID)
	}
	u.publish(ctx, job.NewEvent(job.EventDeleted, j, u.now()))
	return nil
}

func (u *JobPosting) UpdateStatus(ctx context.Context, actorID, jobID uuid.UUID, status job.Status) (job.Job, error) {
	if !status.Valid() {
		return job.Job{}, ErrInvalidInput
	}
	j, err := u.ownedJob(ctx, actorID, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if j.Status == status {
		return j, nil
	}
	if err := u.jobs.UpdateStatus(ctx, jobID, status); err != nil {
		return job.Job{}, u.mapWriteErr(err, jobID)
	}
	j.Status = status
	u.publish(ctx, job.NewEvent(job.EventStatusChanged, j, u.now()))
	return j, nil
}

func (u *JobPosting) UpdateGrowth(ctx context.Context, actorID, jobID uuid.UUID, courseIDs, mentorIDs []uuid.UUID) error {
	if _, err := u.ownedJob(ctx, actorID, jobID); err != nil {
		return err
	}
	if err := u.jobs.UpdateGrowth(ctx, jobID, dedupeIDs(courseIDs), dedupeIDs(mentorIDs)); err != nil {
		return u.mapWriteErr(err, jobID)
	}
	return nil
}

func (u *JobPosting) UpdateRelated(ctx context.Context, actorID, jobID uuid.UUID, jobIDs, internshipIDs []uuid.UUID) error {
	if _, err := u.ownedJob(ctx, actorID, jobID); err != nil {
		return err
	}
	jobIDs = dedupeIDs(jobIDs)
	internshipIDs = dedupeIDs(internshipIDs)
	if containsID(jobIDs, jobID) || containsID(internshipIDs, jobID) {
		return ErrInvalidInput
	}
	if err := u.jobs.UpdateRelated(ctx, jobID, jobIDs, internshipIDs); err != nil {
		return u.mapWriteErr(err, jobID)
	}
	return nil
}

func (u *JobPosting) buildJob(in CreateJobInput) (job.Job, error) {
	j := job.Job{
		Kind:                in.Kind,
		Status:              in.Status,
		Title:               strings.TrimSpace(in.Title),
		Subtitle:            strings.TrimSpace(in.Subtitle),
		CompanyName:         strings.TrimSpace(in.CompanyName),
		CompanyLogoURL:      strings.TrimSpace(in.CompanyLogoURL),
		Location:            strings.TrimSpace(in.Location),
		WorkMode:            in.WorkMode,
		Description:         in.Description,
		ShortDescription:    in.ShortDescription,
		Salary:              in.Salary,
		MinExperience:       in.MinExperience,
		SkillIDs:            dedupeIDs(in.SkillIDs),
		ApplicationDeadline: in.ApplicationDeadline,
		ExternalApply:       in.ExternalApply,
		ApplyLink:           strings.TrimSpace(in.ApplyLink),
	}
	if j.Kind == "" {
		j.Kind = job.KindJob
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	if j.WorkMode == "" {
		j.WorkMode = job.WorkModeOffice
	}
	if j.Salary.Currency == "" {
		j.Salary.Currency = "INR"
	}
	if j.Salary.Period == "" {
		j.Salary.Period = "monthly"
	}
	if j.Kind == job.KindInternship {
		j.Salary.IsStipend = true
	}

	switch {
	case j.Title == "", j.Location == "":
		return job.Job{}, ErrInvalidInput
	case !j.Kind.Valid(), !j.Status.Valid():
		return job.Job{}, ErrInvalidInput
	case j.MinExperience < 0:
		return job.Job{}, ErrInvalidInput
	case j.Salary.Min != nil && j.Salary.Max != nil && *j.Salary.Min > *j.Salary.Max:
		return job.Job{}, ErrInvalidInput
	case j.ExternalApply && j.ApplyLink == "":
		return job.Job{}, ErrInvalidInput
	}
	return j, nil
}

// checkSkills rejects ids that do not name a known skill.
func (u *JobPosting) checkSkills(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := u.skills.CountExisting(ctx, ids)
	if err != nil {
		u.logger.Printf("[JobPosting] skill lookup failed err=%v", err)
		return ErrInternal
	}
	if n != len(ids) {
		return ErrInvalidInput
	}
	return nil
}

func (u *JobPosting) ownedJob(ctx context.Context, actorID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.logger.Printf("[JobPosting] load job failed id=%s err=%v", jobID, err)
		return job.Job{}, ErrInternal
	}
	if j.PosterID == nil || *j.PosterID != actorID {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *JobPosting) mapWriteErr(err error, jobID uuid.UUID) error {
	if errors.Is(err, repository.ErrJobNotFound) {
		return ErrNotFound
	}
	u.logger.Printf("[JobPosting] update failed id=%s err=%v", jobID, err)
	return ErrInternal
}

// publish is fire-and-forget: a posting is stored even when the event bus is
// down.
func (u *JobPosting) publish(ctx context.Context, ev job.Event) {
	if u.events == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		u.logger.Printf("[JobPosting] encode event failed type=%s err=%v", ev.Type, err)
		return
	}
	if err := u.events.Publish(ctx, job.EventsChannel, payload); err != nil {
		u.logger.Printf("[JobPosting] publish failed type=%s job=%s err=%v", ev.Type, ev.JobID, err)
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
