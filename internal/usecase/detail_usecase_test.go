package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"empedi/internal/domain/course"
	"empedi/internal/domain/job"
	"empedi/internal/domain/mentor"
	"empedi/internal/domain/recommendation"
	"empedi/internal/domain/user"

	"github.com/google/uuid"
)

var quiet = log.New(io.Discard, "", 0)

func (f *detailFixture) jobDetails() *JobDetails {
	return NewJobDetailUsecase(f.jobs, f.courses, f.mentors, f.resolver, quiet)
}

func (f *detailFixture) courseDetails() *CourseDetails {
	return NewCourseDetailUsecase(f.jobs, f.courses, f.mentors, f.resolver, quiet)
}

func (f *detailFixture) mentorProfiles() *MentorProfiles {
	return NewMentorProfileUsecase(f.jobs, f.courses, f.mentors, f.resolver, quiet)
}

// addJob stores a posting both as a matchable summary and as a full entity.
func (f *detailFixture) addJob(title string, kind job.Kind, skills ...uuid.UUID) job.Job {
	id := f.stores.jobs.add(title, kind, job.StatusActive, skills...)
	j := job.Job{ID: id, Title: title, Kind: kind, Status: job.StatusActive, SkillIDs: skills}
	f.jobs.put(j)
	return j
}

func TestJobDetail_AllCuratedSkipsResolver(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	related := f.addJob("Related", job.KindJob, uuid.New())
	intern := f.addJob("Intern", job.KindInternship, uuid.New())
	c := f.stores.courses.add("Curated course")
	m := f.stores.mentors.add("Curated mentor")

	// Matching candidates exist but must not be used.
	f.addJob("Computed", job.KindJob, skill)
	f.stores.courses.add("Computed course", skill)

	target := f.addJob("Target", job.KindJob, skill)
	target.RelatedJobIDs = []uuid.UUID{related.ID}
	target.RelatedInternshipIDs = []uuid.UUID{intern.ID}
	target.GrowthCourseIDs = []uuid.UUID{c}
	target.GrowthMentorIDs = []uuid.UUID{m}
	f.jobs.put(target)

	d, err := f.jobDetails().GetJob(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := f.resolver.calls.Load(); n != 0 {
		t.Fatalf("resolver must not run when every category is curated, ran %d times", n)
	}
	if len(d.Related.SimilarJobs) != 1 || d.Related.SimilarJobs[0].ID != related.ID {
		t.Fatalf("expected curated similar job, got %+v", d.Related.SimilarJobs)
	}
	if len(d.Growth.RecommendedCourses) != 1 || d.Growth.RecommendedCourses[0].Title != "Curated course" {
		t.Fatalf("expected curated course, got %+v", d.Growth.RecommendedCourses)
	}
	if len(d.Growth.RecommendedMentors) != 1 || d.Growth.RecommendedMentors[0].Name != "Curated mentor" {
		t.Fatalf("expected curated mentor, got %+v", d.Growth.RecommendedMentors)
	}
}

func TestJobDetail_ComputedFillsOnlyEmptyCategories(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	curatedCourse := f.stores.courses.add("Curated course")
	f.stores.courses.add("Computed course", skill)
	f.stores.mentors.add("Computed mentor", skill)
	other := f.addJob("Other", job.KindJob, skill)

	target := f.addJob("Target", job.KindJob, skill)
	target.GrowthCourseIDs = []uuid.UUID{curatedCourse}
	f.jobs.put(target)

	d, err := f.jobDetails().GetJob(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := f.resolver.calls.Load(); n != 1 {
		t.Fatalf("expected exactly one resolver call, got %d", n)
	}
	if len(d.Growth.RecommendedCourses) != 1 || d.Growth.RecommendedCourses[0].ID != curatedCourse {
		t.Fatalf("curated course must win, got %+v", d.Growth.RecommendedCourses)
	}
	if len(d.Growth.RecommendedMentors) != 1 || d.Growth.RecommendedMentors[0].Name != "Computed mentor" {
		t.Fatalf("expected computed mentor fallback, got %+v", d.Growth.RecommendedMentors)
	}
	if len(d.Related.SimilarJobs) != 1 || d.Related.SimilarJobs[0].ID != other.ID {
		t.Fatalf("expected the other job only (self excluded), got %+v", d.Related.SimilarJobs)
	}
	opts := f.resolver.lastOpts
	if opts.ExcludeID != target.ID || opts.ExcludeType != recommendation.CategoryJob {
		t.Fatalf("unexpected exclusion %+v", opts)
	}
}

func TestJobDetail_InternshipExcludesItself(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	sibling := f.addJob("Sibling", job.KindInternship, skill)
	target := f.addJob("Target", job.KindInternship, skill)

	rel, err := f.jobDetails().GetRelated(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rel.RelatedInternships) != 1 || rel.RelatedInternships[0].ID != sibling.ID {
		t.Fatalf("expected only the sibling internship, got %+v", rel.RelatedInternships)
	}
	if f.resolver.lastOpts.ExcludeType != recommendation.CategoryInternship {
		t.Fatalf("expected internship exclusion type, got %q", f.resolver.lastOpts.ExcludeType)
	}
}

func TestJobDetail_GrowthIgnoresRelatedSections(t *testing.T) {
	f := newDetailFixture()
	target := f.addJob("Target", job.KindJob, uuid.New())
	target.GrowthCourseIDs = []uuid.UUID{f.stores.courses.add("C")}
	target.GrowthMentorIDs = []uuid.UUID{f.stores.mentors.add("M")}
	f.jobs.put(target)

	g, err := f.jobDetails().GetGrowth(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.resolver.calls.Load() != 0 {
		t.Fatalf("growth with curated courses and mentors must not call the resolver")
	}
	if len(g.RecommendedCourses) != 1 || len(g.RecommendedMentors) != 1 {
		t.Fatalf("unexpected growth %+v", g)
	}
}

func TestJobDetail_DanglingCuratedFallsBack(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	f.stores.courses.add("Computed", skill)
	target := f.addJob("Target", job.KindJob, skill)
	target.GrowthCourseIDs = []uuid.UUID{uuid.New()}
	f.jobs.put(target)

	g, err := f.jobDetails().GetGrowth(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(g.RecommendedCourses) != 1 || g.RecommendedCourses[0].Title != "Computed" {
		t.Fatalf("expected computed fallback for dangling curated ids, got %+v", g.RecommendedCourses)
	}
}

func TestJobDetail_NotFound(t *testing.T) {
	f := newDetailFixture()
	if _, err := f.jobDetails().GetJob(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.resolver.calls.Load() != 0 {
		t.Fatalf("resolver must not run for a missing job")
	}
}

func TestJobDetail_StoreErrorPropagates(t *testing.T) {
	f := newDetailFixture()
	target := f.addJob("Target", job.KindJob, uuid.New())
	f.stores.mentors.err = errors.New("timeout")

	if _, err := f.jobDetails().GetJob(context.Background(), target.ID); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestCourseDetail_ExcludesItselfFromNextLevel(t *testing.T) {
	f := newDetailFixture()
	js := uuid.New()
	c1 := f.stores.courses.add("C1", js)
	c2 := f.stores.courses.add("C2", js)
	f.courses.byID[c1] = course.Course{ID: c1, Title: "C1", Slug: "c1", SkillIDs: []uuid.UUID{js}}

	d, err := f.courseDetails().GetCourseBySlug(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(d.Growth.NextLevelCourses) != 1 || d.Growth.NextLevelCourses[0].ID != c2 {
		t.Fatalf("expected only C2, got %+v", d.Growth.NextLevelCourses)
	}
	if d.Growth.RelatedJobs == nil || d.Growth.RecommendedMentors == nil {
		t.Fatalf("empty sections must be non-nil")
	}
}

func TestCourseDetail_UpdateGrowthThenRead(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	id := f.stores.courses.add("Course", skill)
	f.courses.byID[id] = course.Course{ID: id, SkillIDs: []uuid.UUID{skill}}
	m := f.stores.mentors.add("Picked")

	g, err := f.courseDetails().UpdateGrowth(context.Background(), id, UpdateCourseGrowthInput{
		MentorIDs: []uuid.UUID{m, m, uuid.Nil},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := f.courses.growth[id].MentorIDs; len(got) != 1 || got[0] != m {
		t.Fatalf("expected deduped mentor ids, got %v", got)
	}
	if len(g.RecommendedMentors) != 1 || g.RecommendedMentors[0].Name != "Picked" {
		t.Fatalf("expected curated mentor after update, got %+v", g.RecommendedMentors)
	}

	if _, err := f.courseDetails().UpdateGrowth(context.Background(), uuid.New(), UpdateCourseGrowthInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMentorProfile_LookupByUserIDAndSelfExclusion(t *testing.T) {
	f := newDetailFixture()
	skill := uuid.New()
	self := f.stores.mentors.add("Self", skill)
	peer := f.stores.mentors.add("Peer", skill)
	userID := uuid.New()
	f.mentors.byID[self] = mentor.Profile{ID: self, UserID: userID, SkillIDs: []uuid.UUID{skill}}

	d, err := f.mentorProfiles().GetProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Profile.ID != self {
		t.Fatalf("expected profile resolved through user id")
	}
	rel := d.Recommendations.RelatedMentors
	if len(rel) != 1 || rel[0].ID != peer {
		t.Fatalf("expected only the peer mentor, got %+v", rel)
	}
	if f.resolver.lastOpts.ExcludeType != recommendation.CategoryMentor {
		t.Fatalf("expected mentor exclusion type")
	}
}

func TestMentorProfile_NotFound(t *testing.T) {
	f := newDetailFixture()
	if _, err := f.mentorProfiles().GetRecommendations(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMentorProfile_CreateMentorsOnly(t *testing.T) {
	f := newDetailFixture()
	uc := f.mentorProfiles()
	userID := uuid.New()

	if _, err := uc.CreateProfile(context.Background(), userID, user.TypeStudent, CreateMentorProfileInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	p, err := uc.CreateProfile(context.Background(), userID, user.TypeMentor, CreateMentorProfileInput{Industry: "Fintech"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.UserID != userID || p.ID == uuid.Nil {
		t.Fatalf("unexpected profile %+v", p)
	}
	if _, err := uc.CreateProfile(context.Background(), userID, user.TypeMentor, CreateMentorProfileInput{}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a second profile, got %v", err)
	}
}

func TestJobDetail_ListActiveWithFilters(t *testing.T) {
	f := newDetailFixture()
	now := time.Now()
	older := job.Job{ID: uuid.New(), Title: "Go Dev", Kind: job.KindJob, Status: job.StatusActive, Location: "Bengaluru, KA", WorkMode: job.WorkModeHybrid, CreatedAt: now.Add(-time.Hour)}
	newer := job.Job{ID: uuid.New(), Title: "SRE", Kind: job.KindJob, Status: job.StatusActive, Location: "bengaluru", WorkMode: job.WorkModeRemote, CreatedAt: now}
	intern := job.Job{ID: uuid.New(), Title: "Intern", Kind: job.KindInternship, Status: job.StatusActive, Location: "Pune", CreatedAt: now}
	closed := job.Job{ID: uuid.New(), Title: "Old", Kind: job.KindJob, Status: job.StatusClosed, Location: "Bengaluru", CreatedAt: now}
	for _, j := range []job.Job{older, newer, intern, closed} {
		f.jobs.put(j)
	}

	got, err := f.jobDetails().ListJobs(context.Background(), job.ListFilter{Kind: job.KindJob, Location: " BENGALURU "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("expected active Bengaluru jobs newest first, got %+v", got)
	}

	got, err = f.jobDetails().ListJobs(context.Background(), job.ListFilter{WorkMode: job.WorkModeHybrid})
	if err != nil || len(got) != 1 || got[0].ID != older.ID {
		t.Fatalf("expected the hybrid job only, got %+v err=%v", got, err)
	}

	if _, err := f.jobDetails().ListJobs(context.Background(), job.ListFilter{Kind: "gig"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCourseDetail_CreateAndList(t *testing.T) {
	f := newDetailFixture()
	uc := f.courseDetails()

	c, err := uc.CreateCourse(context.Background(), CreateCourseInput{Title: "  Go: Zero to Prod! ", SkillIDs: []uuid.UUID{uuid.Nil}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Slug != "go-zero-to-prod" || c.Level != course.LevelBeginner || !c.IsActive || len(c.SkillIDs) != 0 {
		t.Fatalf("unexpected course %+v", c)
	}
	if _, err := uc.CreateCourse(context.Background(), CreateCourseInput{Title: "Another", Slug: "Go Zero to Prod"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a taken slug, got %v", err)
	}
	if _, err := uc.CreateCourse(context.Background(), CreateCourseInput{Title: "Bad", Level: "Expert"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an unknown level, got %v", err)
	}
	if _, err := uc.CreateCourse(context.Background(), CreateCourseInput{Title: "!!!"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when no slug can be derived, got %v", err)
	}

	f.courses.byID[uuid.New()] = course.Course{Title: "Retired", Slug: "retired"}
	items, err := uc.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].ID != c.ID {
		t.Fatalf("expected only the active course, got %+v", items)
	}
}

func TestMentorProfile_CreateKeepsCuratedLists(t *testing.T) {
	f := newDetailFixture()
	picked := f.stores.courses.add("Hand Picked")
	userID := uuid.New()

	p, err := f.mentorProfiles().CreateProfile(context.Background(), userID, user.TypeMentor, CreateMentorProfileInput{
		Industry: "Software",
		Curated:  MentorCuratedInput{RecommendedCourseIDs: []uuid.UUID{picked, picked}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.RecommendedCourseIDs) != 1 || p.RecommendedCourseIDs[0] != picked {
		t.Fatalf("expected deduped curated courses, got %v", p.RecommendedCourseIDs)
	}

	recs, err := f.mentorProfiles().GetRecommendations(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs.RecommendedCourses) != 1 || recs.RecommendedCourses[0].Title != "Hand Picked" {
		t.Fatalf("expected the curated course, got %+v", recs.RecommendedCourses)
	}
}

func TestMentorProfile_UpdateRecommendationsOwnerOnly(t *testing.T) {
	f := newDetailFixture()
	owner := uuid.New()
	self := f.stores.mentors.add("Self")
	f.mentors.byID[self] = mentor.Profile{ID: self, UserID: owner}
	peer := f.stores.mentors.add("Peer")
	picked := f.stores.courses.add("Picked Course")
	uc := f.mentorProfiles()

	in := MentorCuratedInput{RelatedMentorIDs: []uuid.UUID{peer}, RecommendedCourseIDs: []uuid.UUID{picked}}
	if _, err := uc.UpdateRecommendations(context.Background(), uuid.New(), self, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user, got %v", err)
	}
	if _, err := uc.UpdateRecommendations(context.Background(), owner, self, MentorCuratedInput{RelatedMentorIDs: []uuid.UUID{self}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a self reference, got %v", err)
	}
	if _, err := uc.UpdateRecommendations(context.Background(), owner, uuid.New(), in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	recs, err := uc.UpdateRecommendations(context.Background(), owner, self, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs.RelatedMentors) != 1 || recs.RelatedMentors[0].ID != peer {
		t.Fatalf("expected the curated peer, got %+v", recs.RelatedMentors)
	}
	if len(recs.RecommendedCourses) != 1 || recs.RecommendedCourses[0].ID != picked {
		t.Fatalf("expected the curated course, got %+v", recs.RecommendedCourses)
	}
	if got := f.mentors.byID[self].RecommendedCourseIDs; len(got) != 1 || got[0] != picked {
		t.Fatalf("curated courses not stored, got %v", got)
	}
}

func TestMentorProfile_ListByRating(t *testing.T) {
	f := newDetailFixture()
	low, high := uuid.New(), uuid.New()
	f.mentors.byID[low] = mentor.Profile{ID: low, Rating: 3.9}
	f.mentors.byID[high] = mentor.Profile{ID: high, Rating: 4.8}

	items, err := f.mentorProfiles().ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 || items[0].ID != high {
		t.Fatalf("expected highest rated first, got %+v", items)
	}
}
