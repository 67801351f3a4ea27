package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"empedi/internal/domain/recommendation"
	"empedi/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type JobSummaryReader interface {
	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.JobSummary, error)
}

type CourseSummaryReader interface {
	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.CourseSummary, error)
}

type MentorSummaryReader interface {
	FindSummaries(ctx context.Context, f recommendation.Filter, limit int) ([]recommendation.MentorSummary, error)
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, skillIDs []uuid.UUID, opts recommendation.Options) (recommendation.Result, error)
}

type Recommendation struct {
	jobs    JobSummaryReader
	courses CourseSummaryReader
	mentors MentorSummaryReader

	defaultLimit int
	logger       *log.Logger
}

func NewRecommendationUsecase(jobs JobSummaryReader, courses CourseSummaryReader, mentors MentorSummaryReader, defaultLimit int, logger *log.Logger) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{
		jobs:         jobs,
		courses:      courses,
		mentors:      mentors,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// GetRecommendations resolves the four categories for a skill set. An empty
// skill set yields four empty collections without touching the store. The
// category reads run concurrently and a single failure fails the call.
func (u *Recommendation) GetRecommendations(ctx context.Context, skillIDs []uuid.UUID, opts recommendation.Options) (recommendation.Result, error) {
	start := time.Now()

	if opts.Limit == 0 && u.defaultLimit > 0 {
		opts.Limit = u.defaultLimit
	}
	opts, err := opts.Normalize()
	if err != nil {
		metrics.RecordRecommendation("invalid", time.Since(start), nil)
		return recommendation.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(skillIDs) == 0 {
		metrics.RecordRecommendation("empty_skills", time.Since(start), nil)
		return recommendation.EmptyResult(), nil
	}

	out := recommendation.EmptyResult()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := u.jobs.FindSummaries(gctx, recommendation.BuildFilter(recommendation.CategoryJob, skillIDs, opts), opts.Limit)
		if err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
		if items != nil {
			out.Jobs = firstN(items, opts.Limit)
		}
		return nil
	})
	g.Go(func() error {
		items, err := u.jobs.FindSummaries(gctx, recommendation.BuildFilter(recommendation.CategoryInternship, skillIDs, opts), opts.Limit)
		if err != nil {
			return fmt.Errorf("internships: %w", err)
		}
		if items != nil {
			out.Internships = firstN(items, opts.Limit)
		}
		return nil
	})
	g.Go(func() error {
		items, err := u.courses.FindSummaries(gctx, recommendation.BuildFilter(recommendation.CategoryCourse, skillIDs, opts), opts.Limit)
		if err != nil {
			return fmt.Errorf("courses: %w", err)
		}
		if items != nil {
			out.Courses = firstN(items, opts.Limit)
		}
		return nil
	})
	g.Go(func() error {
		items, err := u.mentors.FindSummaries(gctx, recommendation.BuildFilter(recommendation.CategoryMentor, skillIDs, opts), opts.Limit)
		if err != nil {
			return fmt.Errorf("mentors: %w", err)
		}
		if items != nil {
			out.Mentors = firstN(items, opts.Limit)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.RecordRecommendation("error", time.Since(start), nil)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return recommendation.Result{}, err
		}
		u.logger.Printf("[Recommendation] resolve failed skills=%d exclude_type=%s err=%v", len(skillIDs), opts.ExcludeType, err)
		return recommendation.Result{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	metrics.RecordRecommendation("ok", time.Since(start), map[string]int{
		recommendation.CategoryJob.String():        len(out.Jobs),
		recommendation.CategoryInternship.String(): len(out.Internships),
		recommendation.CategoryCourse.String():     len(out.Courses),
		recommendation.CategoryMentor.String():     len(out.Mentors),
	})
	return out, nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
