package seeder

import (
	"context"
	"errors"

	"empedi/internal/database"
	"empedi/internal/domain/mentor"
	"empedi/internal/repository"
)

type MentorSeeder struct{}

func (MentorSeeder) Name() string { return "mentor_profiles" }

func (MentorSeeder) Run(ctx context.Context, db database.DB) error {
	repo := repository.NewPostgresMentorRepository(db)

	items := []struct {
		Email      string
		Industry   string
		Position   string
		Company    string
		Experience int
		Price      float64
		Skills     []string
		Courses    []string
	}{
		{"priya@mentors.example", "Software", "Staff Engineer", "Flipkart", 9, 1500, []string{"Go", "Kubernetes", "PostgreSQL"}, []string{"kubernetes-for-engineers", "go-for-backend-developers"}},
		{"arjun@mentors.example", "Data", "Lead Data Scientist", "Swiggy", 7, 1200, []string{"Python", "Machine Learning", "Data Analysis"}, []string{"applied-machine-learning"}},
	}

	for _, it := range items {
		userID, err := userIDByEmail(ctx, db, it.Email)
		if err != nil {
			return err
		}
		courses, err := courseIDs(ctx, db, it.Courses...)
		if err != nil {
			return err
		}

		existing, err := repo.FindByUserID(ctx, userID)
		if err == nil {
			if len(existing.RecommendedCourseIDs) > 0 {
				continue
			}
			if err := repo.UpdateCurated(ctx, existing.ID, repository.MentorCuratedIDs{
				MentorIDs:     existing.RelatedMentorIDs,
				JobIDs:        existing.RecommendedJobIDs,
				CourseIDs:     courses,
				InternshipIDs: existing.RecommendedInternshipIDs,
			}); err != nil {
				return err
			}
			continue
		}
		if !errors.Is(err, repository.ErrMentorNotFound) {
			return err
		}

		skills, err := skillIDs(ctx, db, it.Skills...)
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, mentor.Profile{
			UserID:          userID,
			Industry:        it.Industry,
			CurrentPosition: it.Position,
			CurrentCompany:  it.Company,
			ExperienceYears: it.Experience,
			QuickCallPrice:  it.Price,
			SessionDuration: 30,
			SkillIDs:        skills,

			RecommendedCourseIDs: courses,
		}); err != nil && !errors.Is(err, repository.ErrMentorExists) {
			return err
		}
	}
	return nil
}
