package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"empedi/internal/domain/job"
	"empedi/internal/domain/recommendation"
	"empedi/internal/repository"
	"empedi/internal/usecase/card"

	"github.com/google/uuid"
)

type JobGrowth struct {
	RecommendedCourses []card.Course `json:"recommendedCourses"`
	RecommendedMentors []card.Mentor `json:"recommendedMentors"`
}

type JobRelated struct {
	SimilarJobs        []card.Job        `json:"similarJobs"`
	RelatedInternships []card.Internship `json:"relatedInternships"`
}

type JobDetail struct {
	Job     job.Job
	Growth  JobGrowth
	Related JobRelated
}

var (
	jobGrowthSections  = []recommendation.Category{recommendation.CategoryCourse, recommendation.CategoryMentor}
	jobRelatedSections = []recommendation.Category{recommendation.CategoryJob, recommendation.CategoryInternship}
)

type JobDetailUsecase interface {
	ListJobs(ctx context.Context, f job.ListFilter) ([]job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (JobDetail, error)
	GetGrowth(ctx context.Context, id uuid.UUID) (JobGrowth, error)
	GetRelated(ctx context.Context, id uuid.UUID) (JobRelated, error)
}

type JobDetails struct {
	jobs repository.JobRepository
	composer
}

func NewJobDetailUsecase(jobs repository.JobRepository, courses repository.CourseRepository, mentors repository.MentorRepository, resolver RecommendationUsecase, logger *log.Logger) *JobDetails {
	if logger == nil {
		logger = log.Default()
	}
	return &JobDetails{
		jobs: jobs,
		composer: composer{
			jobs:     jobs,
			courses:  courses,
			mentors:  mentors,
			resolver: resolver,
			logger:   logger,
		},
	}
}

// ListJobs serves the public job board: active postings only, newest first.
func (u *JobDetails) ListJobs(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	f.Location = strings.TrimSpace(f.Location)
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, ErrInvalidInput
	}
	items, err := u.jobs.List(ctx, f)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		u.logger.Printf("[JobDetail] list jobs failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobDetails) GetJob(ctx context.Context, id uuid.UUID) (JobDetail, error) {
	j, err := u.findJob(ctx, id)
	if err != nil {
		return JobDetail{}, err
	}

	res, err := u.compose(ctx, "job", CuratedIDs{
		Jobs:        j.RelatedJobIDs,
		Internships: j.RelatedInternshipIDs,
		Courses:     j.GrowthCourseIDs,
		Mentors:     j.GrowthMentorIDs,
	}, nil, j.SkillIDs, jobExclusion(j))
	if err != nil {
		return JobDetail{}, err
	}

	return JobDetail{
		Job: j,
		Growth: JobGrowth{
			RecommendedCourses: card.Courses(res.Courses),
			RecommendedMentors: card.Mentors(res.Mentors),
		},
		Related: JobRelated{
			SimilarJobs:        card.Jobs(res.Jobs),
			RelatedInternships: card.Internships(res.Internships),
		},
	}, nil
}

func (u *JobDetails) GetGrowth(ctx context.Context, id uuid.UUID) (JobGrowth, error) {
	j, err := u.findJob(ctx, id)
	if err != nil {
		return JobGrowth{}, err
	}
	res, err := u.compose(ctx, "job_growth", CuratedIDs{
		Courses: j.GrowthCourseIDs,
		Mentors: j.GrowthMentorIDs,
	}, jobGrowthSections, j.SkillIDs, jobExclusion(j))
	if err != nil {
		return JobGrowth{}, err
	}
	return JobGrowth{
		RecommendedCourses: card.Courses(res.Courses),
		RecommendedMentors: card.Mentors(res.Mentors),
	}, nil
}

func (u *JobDetails) GetRelated(ctx context.Context, id uuid.UUID) (JobRelated, error) {
	j, err := u.findJob(ctx, id)
	if err != nil {
		return JobRelated{}, err
	}
	res, err := u.compose(ctx, "job_related", CuratedIDs{
		Jobs:        j.RelatedJobIDs,
		Internships: j.RelatedInternshipIDs,
	}, jobRelatedSections, j.SkillIDs, jobExclusion(j))
	if err != nil {
		return JobRelated{}, err
	}
	return JobRelated{
		SimilarJobs:        card.Jobs(res.Jobs),
		RelatedInternships: card.Internships(res.Internships),
	}, nil
}

func (u *JobDetails) findJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.logger.Printf("[JobDetail] load job failed id=%s err=%v", id, err)
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// jobExclusion keeps a posting out of its own recommendations, typed by
// whether it is a job or an internship.
func jobExclusion(j job.Job) recommendation.Options {
	typ := recommendation.CategoryJob
	if j.Kind == job.KindInternship {
		typ = recommendation.CategoryInternship
	}
	return recommendation.Options{ExcludeID: j.ID, ExcludeType: typ}
}
