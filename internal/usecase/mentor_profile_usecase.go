package usecase

import (
	"context"
	"errors"
	"log"

	"empedi/internal/domain/mentor"
	"empedi/internal/domain/recommendation"
	"empedi/internal/domain/user"
	"empedi/internal/repository"
	"empedi/internal/usecase/card"

	"github.com/google/uuid"
)

type MentorRecommendations struct {
	RecommendedJobs        []card.Job        `json:"recommendedJobs"`
	RecommendedInternships []card.Internship `json:"recommendedInternships"`
	RecommendedCourses     []card.Course     `json:"recommendedCourses"`
	RelatedMentors         []card.Mentor     `json:"relatedMentors"`
}

type MentorProfileDetail struct {
	Profile         mentor.Profile
	Recommendations MentorRecommendations
}

type CreateMentorProfileInput struct {
	About           string
	Industry        string
	CurrentPosition string
	CurrentCompany  string
	ExperienceYears int
	QuickCallPrice  float64
	SessionDuration int
	SkillIDs        []uuid.UUID

	Curated MentorCuratedInput
}

// MentorCuratedInput is what a mentor hand-picks for their profile page.
// Empty lists fall back to skill matching.
type MentorCuratedInput struct {
	RelatedMentorIDs         []uuid.UUID
	RecommendedJobIDs        []uuid.UUID
	RecommendedCourseIDs     []uuid.UUID
	RecommendedInternshipIDs []uuid.UUID
}

type MentorProfileUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, userType user.Type, in CreateMentorProfileInput) (mentor.Profile, error)
	// GetProfile accepts either a profile id or the owning user's id.
	GetProfile(ctx context.Context, id uuid.UUID) (MentorProfileDetail, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (MentorProfileDetail, error)
	GetRecommendations(ctx context.Context, id uuid.UUID) (MentorRecommendations, error)
	ListProfiles(ctx context.Context) ([]mentor.Profile, error)
	// UpdateRecommendations replaces the curated lists. Only the profile
	// owner may call it.
	UpdateRecommendations(ctx context.Context, actorID, id uuid.UUID, in MentorCuratedInput) (MentorRecommendations, error)
}

type MentorProfiles struct {
	mentors repository.MentorRepository
	composer
}

func NewMentorProfileUsecase(jobs repository.JobRepository, courses repository.CourseRepository, mentors repository.MentorRepository, resolver RecommendationUsecase, logger *log.Logger) *MentorProfiles {
	if logger == nil {
		logger = log.Default()
	}
	return &MentorProfiles{
		mentors: mentors,
		composer: composer{
			jobs:     jobs,
			courses:  courses,
			mentors:  mentors,
			resolver: resolver,
			logger:   logger,
		},
	}
}

// CreateProfile registers the caller's mentor profile. Only mentor accounts
// may hold one, and each account holds at most one.
func (u *MentorProfiles) CreateProfile(ctx context.Context, userID uuid.UUID, userType user.Type, in CreateMentorProfileInput) (mentor.Profile, error) {
	if userType != user.TypeMentor {
		return mentor.Profile{}, ErrForbidden
	}
	if in.ExperienceYears < 0 || in.QuickCallPrice < 0 || in.SessionDuration < 0 {
		return mentor.Profile{}, ErrInvalidInput
	}
	p, err := u.mentors.Create(ctx, mentor.Profile{
		UserID:          userID,
		About:           in.About,
		Industry:        in.Industry,
		CurrentPosition: in.CurrentPosition,
		CurrentCompany:  in.CurrentCompany,
		ExperienceYears: in.ExperienceYears,
		QuickCallPrice:  in.QuickCallPrice,
		SessionDuration: in.SessionDuration,
		SkillIDs:        dedupeIDs(in.SkillIDs),

		RelatedMentorIDs:         dedupeIDs(in.Curated.RelatedMentorIDs),
		RecommendedJobIDs:        dedupeIDs(in.Curated.RecommendedJobIDs),
		RecommendedCourseIDs:     dedupeIDs(in.Curated.RecommendedCourseIDs),
		RecommendedInternshipIDs: dedupeIDs(in.Curated.RecommendedInternshipIDs),
	})
	if err != nil {
		if errors.Is(err, repository.ErrMentorExists) {
			return mentor.Profile{}, ErrConflict
		}
		u.logger.Printf("[MentorProfile] create failed user_id=%s err=%v", userID, err)
		return mentor.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *MentorProfiles) GetProfile(ctx context.Context, id uuid.UUID) (MentorProfileDetail, error) {
	p, err := u.mentors.FindByID(ctx, id)
	if errors.Is(err, repository.ErrMentorNotFound) {
		p, err = u.mentors.FindByUserID(ctx, id)
	}
	if err != nil {
		return MentorProfileDetail{}, u.mapLoadErr(err, id)
	}
	return u.detail(ctx, p)
}

func (u *MentorProfiles) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (MentorProfileDetail, error) {
	p, err := u.mentors.FindByUserID(ctx, userID)
	if err != nil {
		return MentorProfileDetail{}, u.mapLoadErr(err, userID)
	}
	return u.detail(ctx, p)
}

func (u *MentorProfiles) GetRecommendations(ctx context.Context, id uuid.UUID) (MentorRecommendations, error) {
	d, err := u.GetProfile(ctx, id)
	if err != nil {
		return MentorRecommendations{}, err
	}
	return d.Recommendations, nil
}

func (u *MentorProfiles) ListProfiles(ctx context.Context) ([]mentor.Profile, error) {
	items, err := u.mentors.List(ctx)
	if err != nil {
		u.logger.Printf("[MentorProfile] list profiles failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *MentorProfiles) UpdateRecommendations(ctx context.Context, actorID, id uuid.UUID, in MentorCuratedInput) (MentorRecommendations, error) {
	p, err := u.mentors.FindByID(ctx, id)
	if err != nil {
		return MentorRecommendations{}, u.mapLoadErr(err, id)
	}
	if p.UserID != actorID {
		return MentorRecommendations{}, ErrForbidden
	}

	ids := repository.MentorCuratedIDs{
		MentorIDs:     dedupeIDs(in.RelatedMentorIDs),
		JobIDs:        dedupeIDs(in.RecommendedJobIDs),
		CourseIDs:     dedupeIDs(in.RecommendedCourseIDs),
		InternshipIDs: dedupeIDs(in.RecommendedInternshipIDs),
	}
	if containsID(ids.MentorIDs, p.ID) {
		return MentorRecommendations{}, ErrInvalidInput
	}
	if err := u.mentors.UpdateCurated(ctx, p.ID, ids); err != nil {
		return MentorRecommendations{}, u.mapLoadErr(err, id)
	}
	return u.GetRecommendations(ctx, p.ID)
}

func (u *MentorProfiles) detail(ctx context.Context, p mentor.Profile) (MentorProfileDetail, error) {
	res, err := u.compose(ctx, "mentor", CuratedIDs{
		Jobs:        p.RecommendedJobIDs,
		Internships: p.RecommendedInternshipIDs,
		Courses:     p.RecommendedCourseIDs,
		Mentors:     p.RelatedMentorIDs,
	}, nil, p.SkillIDs, recommendation.Options{ExcludeID: p.ID, ExcludeType: recommendation.CategoryMentor})
	if err != nil {
		return MentorProfileDetail{}, err
	}
	return MentorProfileDetail{
		Profile: p,
		Recommendations: MentorRecommendations{
			RecommendedJobs:        card.Jobs(res.Jobs),
			RecommendedInternships: card.Internships(res.Internships),
			RecommendedCourses:     card.Courses(res.Courses),
			RelatedMentors:         card.Mentors(res.Mentors),
		},
	}, nil
}

func (u *MentorProfiles) mapLoadErr(err error, id uuid.UUID) error {
	if errors.Is(err, repository.ErrMentorNotFound) {
		return ErrNotFound
	}
	u.logger.Printf("[MentorProfile] load profile failed id=%s err=%v", id, err)
	return ErrInternal
}
