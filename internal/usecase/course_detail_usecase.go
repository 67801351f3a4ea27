package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode"

	"empedi/internal/domain/course"
	"empedi/internal/domain/recommendation"
	"empedi/internal/repository"
	"empedi/internal/usecase/card"

	"github.com/google/uuid"
)

type CourseGrowth struct {
	RelatedJobs        []card.Job        `json:"relatedJobs"`
	RelatedInternships []card.Internship `json:"relatedInternships"`
	NextLevelCourses   []card.Course     `json:"nextLevelCourses"`
	RecommendedMentors []card.Mentor     `json:"recommendedMentors"`
}

type CourseDetail struct {
	Course course.Course
	Growth CourseGrowth
}

type UpdateCourseGrowthInput struct {
	JobIDs        []uuid.UUID
	InternshipIDs []uuid.UUID
	CourseIDs     []uuid.UUID
	MentorIDs     []uuid.UUID
}

type CreateCourseInput struct {
	Title            string
	Slug             string
	BannerURL        string
	Price            string
	OriginalPrice    string
	Level            course.Level
	Duration         string
	Format           string
	ShortDescription string
	SkillIDs         []uuid.UUID
}

type CourseDetailUsecase interface {
	ListCourses(ctx context.Context) ([]course.Course, error)
	CreateCourse(ctx context.Context, in CreateCourseInput) (course.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (CourseDetail, error)
	GetCourseBySlug(ctx context.Context, slug string) (CourseDetail, error)
	GetGrowth(ctx context.Context, id uuid.UUID) (CourseGrowth, error)
	UpdateGrowth(ctx context.Context, id uuid.UUID, in UpdateCourseGrowthInput) (CourseGrowth, error)
}

type CourseDetails struct {
	courses repository.CourseRepository
	composer
}

func NewCourseDetailUsecase(jobs repository.JobRepository, courses repository.CourseRepository, mentors repository.MentorRepository, resolver RecommendationUsecase, logger *log.Logger) *CourseDetails {
	if logger == nil {
		logger = log.Default()
	}
	return &CourseDetails{
		courses: courses,
		composer: composer{
			jobs:     jobs,
			courses:  courses,
			mentors:  mentors,
			resolver: resolver,
			logger:   logger,
		},
	}
}

func (u *CourseDetails) ListCourses(ctx context.Context) ([]course.Course, error) {
	items, err := u.courses.List(ctx)
	if err != nil {
		u.logger.Printf("[CourseDetail] list courses failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

// CreateCourse adds an active course. An empty slug is derived from the
// title.
func (u *CourseDetails) CreateCourse(ctx context.Context, in CreateCourseInput) (course.Course, error) {
	c := course.Course{
		Title:            strings.TrimSpace(in.Title),
		Slug:             slugify(in.Slug),
		BannerURL:        strings.TrimSpace(in.BannerURL),
		Price:            strings.TrimSpace(in.Price),
		OriginalPrice:    strings.TrimSpace(in.OriginalPrice),
		Level:            in.Level,
		Duration:         strings.TrimSpace(in.Duration),
		Format:           strings.TrimSpace(in.Format),
		ShortDescription: in.ShortDescription,
		SkillIDs:         dedupeIDs(in.SkillIDs),
		IsActive:         true,
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Title)
	}
	if c.Level == "" {
		c.Level = course.LevelBeginner
	}
	if c.Format == "" {
		c.Format = "Self-paced"
	}
	if c.Title == "" || c.Slug == "" || !c.Level.Valid() {
		return course.Course{}, ErrInvalidInput
	}

	created, err := u.courses.Create(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrCourseSlugTaken) {
			return course.Course{}, ErrConflict
		}
		u.logger.Printf("[CourseDetail] create course failed slug=%s err=%v", c.Slug, err)
		return course.Course{}, ErrInternal
	}
	return created, nil
}

func (u *CourseDetails) GetCourse(ctx context.Context, id uuid.UUID) (CourseDetail, error) {
	c, err := u.courses.FindByID(ctx, id)
	if err != nil {
		return CourseDetail{}, u.mapLoadErr(err, id.String())
	}
	return u.detail(ctx, c)
}

func (u *CourseDetails) GetCourseBySlug(ctx context.Context, slug string) (CourseDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return CourseDetail{}, ErrInvalidInput
	}
	c, err := u.courses.FindBySlug(ctx, slug)
	if err != nil {
		return CourseDetail{}, u.mapLoadErr(err, slug)
	}
	return u.detail(ctx, c)
}

func (u *CourseDetails) GetGrowth(ctx context.Context, id uuid.UUID) (CourseGrowth, error) {
	d, err := u.GetCourse(ctx, id)
	if err != nil {
		return CourseGrowth{}, err
	}
	return d.Growth, nil
}

func (u *CourseDetails) UpdateGrowth(ctx context.Context, id uuid.UUID, in UpdateCourseGrowthInput) (CourseGrowth, error) {
	err := u.courses.UpdateGrowth(ctx, id, repository.CourseGrowthIDs{
		JobIDs:        dedupeIDs(in.JobIDs),
		InternshipIDs: dedupeIDs(in.InternshipIDs),
		CourseIDs:     dedupeIDs(in.CourseIDs),
		MentorIDs:     dedupeIDs(in.MentorIDs),
	})
	if err != nil {
		return CourseGrowth{}, u.mapLoadErr(err, id.String())
	}
	return u.GetGrowth(ctx, id)
}

func (u *CourseDetails) detail(ctx context.Context, c course.Course) (CourseDetail, error) {
	res, err := u.compose(ctx, "course", CuratedIDs{
		Jobs:        c.GrowthJobIDs,
		Internships: c.GrowthInternshipIDs,
		Courses:     c.NextLevelCourseIDs,
		Mentors:     c.GrowthMentorIDs,
	}, nil, c.SkillIDs, recommendation.Options{ExcludeID: c.ID, ExcludeType: recommendation.CategoryCourse})
	if err != nil {
		return CourseDetail{}, err
	}
	return CourseDetail{
		Course: c,
		Growth: CourseGrowth{
			RelatedJobs:        card.Jobs(res.Jobs),
			RelatedInternships: card.Internships(res.Internships),
			NextLevelCourses:   card.Courses(res.Courses),
			RecommendedMentors: card.Mentors(res.Mentors),
		},
	}, nil
}

func (u *CourseDetails) mapLoadErr(err error, key string) error {
	if errors.Is(err, repository.ErrCourseNotFound) {
		return ErrNotFound
	}
	u.logger.Printf("[CourseDetail] load course failed key=%s err=%v", key, err)
	return ErrInternal
}

// dedupeIDs drops nil and repeated ids, keeping first-seen order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// slugify lowercases s and joins its letter and digit runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
