package usecase

import (
	"context"
	"fmt"
	"log"

	"empedi/internal/domain/recommendation"
	"empedi/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type JobSummaryHydrator interface {
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.JobSummary, error)
}

type CourseSummaryHydrator interface {
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.CourseSummary, error)
}

type MentorSummaryHydrator interface {
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]recommendation.MentorSummary, error)
}

// CuratedIDs are the hand-picked lists attached to an entity, one per
// category. Order is the curated order.
type CuratedIDs struct {
	Jobs        []uuid.UUID
	Internships []uuid.UUID
	Courses     []uuid.UUID
	Mentors     []uuid.UUID
}

func (c CuratedIDs) of(cat recommendation.Category) []uuid.UUID {
	switch cat {
	case recommendation.CategoryJob:
		return c.Jobs
	case recommendation.CategoryInternship:
		return c.Internships
	case recommendation.CategoryCourse:
		return c.Courses
	case recommendation.CategoryMentor:
		return c.Mentors
	}
	return nil
}

// composer merges curated lists with resolver output. For each wanted
// category a non-empty curated list is used verbatim; otherwise the computed
// list fills in. The resolver runs at most once, and only when some wanted
// category has nothing curated.
type composer struct {
	jobs     JobSummaryHydrator
	courses  CourseSummaryHydrator
	mentors  MentorSummaryHydrator
	resolver RecommendationUsecase
	logger   *log.Logger
}

func (c composer) compose(ctx context.Context, page string, curated CuratedIDs, want []recommendation.Category, skillIDs []uuid.UUID, opts recommendation.Options) (recommendation.Result, error) {
	if len(want) == 0 {
		want = recommendation.Categories
	}
	out := recommendation.EmptyResult()

	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range want {
		ids := curated.of(cat)
		if len(ids) == 0 {
			continue
		}
		g.Go(func() error {
			if err := c.hydrate(gctx, cat, ids, &out); err != nil {
				return fmt.Errorf("curated %s: %w", cat, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Printf("[Composition] hydrate curated failed page=%s err=%v", page, err)
		return recommendation.Result{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// Curated ids dangle once their targets are deleted; a list that
	// hydrates to nothing counts as empty.
	var missing []recommendation.Category
	for _, cat := range want {
		has := resultLen(out, cat) > 0
		metrics.RecordRecommendationSource(page, cat.String(), has)
		if !has {
			missing = append(missing, cat)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	computed, err := c.resolver.GetRecommendations(ctx, skillIDs, opts)
	if err != nil {
		return recommendation.Result{}, err
	}
	for _, cat := range missing {
		switch cat {
		case recommendation.CategoryJob:
			out.Jobs = nonNil(computed.Jobs)
		case recommendation.CategoryInternship:
			out.Internships = nonNil(computed.Internships)
		case recommendation.CategoryCourse:
			out.Courses = nonNil(computed.Courses)
		case recommendation.CategoryMentor:
			out.Mentors = nonNil(computed.Mentors)
		}
	}
	return out, nil
}

// hydrate writes into a distinct field of out per category, so concurrent
// calls for different categories do not race.
func (c composer) hydrate(ctx context.Context, cat recommendation.Category, ids []uuid.UUID, out *recommendation.Result) error {
	switch cat {
	case recommendation.CategoryJob:
		items, err := c.jobs.FindSummariesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		out.Jobs = nonNil(items)
	case recommendation.CategoryInternship:
		items, err := c.jobs.FindSummariesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		out.Internships = nonNil(items)
	case recommendation.CategoryCourse:
		items, err := c.courses.FindSummariesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		out.Courses = nonNil(items)
	case recommendation.CategoryMentor:
		items, err := c.mentors.FindSummariesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		out.Mentors = nonNil(items)
	}
	return nil
}

func resultLen(r recommendation.Result, cat recommendation.Category) int {
	switch cat {
	case recommendation.CategoryJob:
		return len(r.Jobs)
	case recommendation.CategoryInternship:
		return len(r.Internships)
	case recommendation.CategoryCourse:
		return len(r.Courses)
	case recommendation.CategoryMentor:
		return len(r.Mentors)
	}
	return 0
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
