package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"empedi/internal/domain/course"
	"empedi/internal/domain/job"
	"empedi/internal/domain/mentor"
	"empedi/internal/domain/recommendation"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	*fakeJobStore

	mu      sync.Mutex
	byID    map[uuid.UUID]job.Job
	findErr error
	created []job.Job
	deleted []uuid.UUID
	closed  int64
}

func newFakeJobRepo(store *fakeJobStore) *fakeJobRepo {
	return &fakeJobRepo{fakeJobStore: store, byID: map[uuid.UUID]job.Job{}}
}

func (r *fakeJobRepo) put(j job.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[j.ID] = j
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if r.findErr != nil {
		return job.Job{}, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	j.CreatedAt = time.Now()
	r.byID[j.ID] = j
	r.created = append(r.created, j)
	return j, nil
}

func (r *fakeJobRepo) List(_ context.Context, f job.ListFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range r.byID {
		switch {
		case !j.IsActive():
		case f.Kind != "" && j.Kind != f.Kind:
		case f.WorkMode != "" && j.WorkMode != f.WorkMode:
		case f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)):
		default:
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[j.ID]; !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	j.UpdatedAt = time.Now()
	r.byID[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.Status = status
	r.byID[id] = j
	return nil
}

func (r *fakeJobRepo) UpdateGrowth(_ context.Context, id uuid.UUID, courseIDs, mentorIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.GrowthCourseIDs, j.GrowthMentorIDs = courseIDs, mentorIDs
	r.byID[id] = j
	return nil
}

func (r *fakeJobRepo) UpdateRelated(_ context.Context, id uuid.UUID, jobIDs, internshipIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.RelatedJobIDs, j.RelatedInternshipIDs = jobIDs, internshipIDs
	r.byID[id] = j
	return nil
}

func (r *fakeJobRepo) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, j := range r.byID {
		if j.Status == job.StatusActive && j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
			j.Status = job.StatusClosed
			r.byID[id] = j
			n++
		}
	}
	r.closed += n
	return n, nil
}

type fakeCourseRepo struct {
	*fakeCourseStore

	byID   map[uuid.UUID]course.Course
	growth map[uuid.UUID]repository.CourseGrowthIDs
}

func newFakeCourseRepo(store *fakeCourseStore) *fakeCourseRepo {
	return &fakeCourseRepo{fakeCourseStore: store, byID: map[uuid.UUID]course.Course{}, growth: map[uuid.UUID]repository.CourseGrowthIDs{}}
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return course.Course{}, repository.ErrCourseNotFound
	}
	return c, nil
}

func (r *fakeCourseRepo) FindBySlug(_ context.Context, slug string) (course.Course, error) {
	for _, c := range r.byID {
		if c.Slug == slug {
			return c, nil
		}
	}
	return course.Course{}, repository.ErrCourseNotFound
}

func (r *fakeCourseRepo) List(context.Context) ([]course.Course, error) {
	out := make([]course.Course, 0, len(r.byID))
	for _, c := range r.byID {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, c course.Course) (course.Course, error) {
	for _, existing := range r.byID {
		if c.Slug != "" && existing.Slug == c.Slug {
			return course.Course{}, repository.ErrCourseSlugTaken
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *fakeCourseRepo) UpdateGrowth(_ context.Context, id uuid.UUID, g repository.CourseGrowthIDs) error {
	c, ok := r.byID[id]
	if !ok {
		return repository.ErrCourseNotFound
	}
	c.GrowthJobIDs, c.GrowthInternshipIDs = g.JobIDs, g.InternshipIDs
	c.NextLevelCourseIDs, c.GrowthMentorIDs = g.CourseIDs, g.MentorIDs
	r.byID[id] = c
	r.growth[id] = g
	return nil
}

type fakeMentorRepo struct {
	*fakeMentorStore

	byID map[uuid.UUID]mentor.Profile
}

func newFakeMentorRepo(store *fakeMentorStore) *fakeMentorRepo {
	return &fakeMentorRepo{fakeMentorStore: store, byID: map[uuid.UUID]mentor.Profile{}}
}

func (r *fakeMentorRepo) FindByID(_ context.Context, id uuid.UUID) (mentor.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return mentor.Profile{}, repository.ErrMentorNotFound
	}
	return p, nil
}

func (r *fakeMentorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (mentor.Profile, error) {
	for _, p := range r.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return mentor.Profile{}, repository.ErrMentorNotFound
}

func (r *fakeMentorRepo) Create(_ context.Context, p mentor.Profile) (mentor.Profile, error) {
	for _, existing := range r.byID {
		if existing.UserID == p.UserID {
			return mentor.Profile{}, repository.ErrMentorExists
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeMentorRepo) List(context.Context) ([]mentor.Profile, error) {
	out := make([]mentor.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Rating > out[b].Rating })
	return out, nil
}

func (r *fakeMentorRepo) UpdateCurated(_ context.Context, id uuid.UUID, ids repository.MentorCuratedIDs) error {
	p, ok := r.byID[id]
	if !ok {
		return repository.ErrMentorNotFound
	}
	p.RelatedMentorIDs, p.RecommendedJobIDs = ids.MentorIDs, ids.JobIDs
	p.RecommendedCourseIDs, p.RecommendedInternshipIDs = ids.CourseIDs, ids.InternshipIDs
	r.byID[id] = p
	return nil
}

type countingResolver struct {
	inner RecommendationUsecase
	calls atomic.Int32

	mu       sync.Mutex
	lastOpts recommendation.Options
}

func (r *countingResolver) GetRecommendations(ctx context.Context, skillIDs []uuid.UUID, opts recommendation.Options) (recommendation.Result, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.lastOpts = opts
	r.mu.Unlock()
	return r.inner.GetRecommendations(ctx, skillIDs, opts)
}

// detailFixture wires repos, stores and a counting resolver together.
type detailFixture struct {
	stores   fakeStores
	jobs     *fakeJobRepo
	courses  *fakeCourseRepo
	mentors  *fakeMentorRepo
	resolver *countingResolver
}

func newDetailFixture() *detailFixture {
	stores := newFakeStores()
	return &detailFixture{
		stores:   stores,
		jobs:     newFakeJobRepo(stores.jobs),
		courses:  newFakeCourseRepo(stores.courses),
		mentors:  newFakeMentorRepo(stores.mentors),
		resolver: &countingResolver{inner: stores.resolver()},
	}
}
