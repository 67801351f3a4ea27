package seeder

import (
	"context"

	"empedi/internal/database"
	"empedi/internal/domain/course"
	"empedi/internal/repository"
)

type CourseSeeder struct{}

func (CourseSeeder) Name() string { return "courses" }

func (CourseSeeder) Run(ctx context.Context, db database.DB) error {
	repo := repository.NewPostgresCourseRepository(db)

	items := []struct {
		Title    string
		Slug     string
		Price    string
		Original string
		Level    course.Level
		Rating   float64
		Duration string
		Skills   []string
	}{
		{"Go for Backend Developers", "go-for-backend-developers", "₹2,999", "₹5,999", course.LevelIntermediate, 4.7, "6 weeks", []string{"Go", "REST APIs"}},
		{"PostgreSQL in Practice", "postgresql-in-practice", "₹1,999", "₹3,999", course.LevelBeginner, 4.5, "4 weeks", []string{"PostgreSQL", "SQL"}},
		{"React from Zero", "react-from-zero", "₹2,499", "₹4,999", course.LevelBeginner, 4.6, "5 weeks", []string{"React", "JavaScript"}},
		{"Kubernetes for Engineers", "kubernetes-for-engineers", "₹3,499", "₹6,999", course.LevelAdvanced, 4.8, "8 weeks", []string{"Kubernetes", "Docker"}},
		{"Applied Machine Learning", "applied-machine-learning", "₹3,999", "₹7,999", course.LevelIntermediate, 4.4, "10 weeks", []string{"Python", "Machine Learning"}},
		{"Growth Marketing Essentials", "growth-marketing-essentials", "₹1,499", "₹2,999", course.LevelBeginner, 4.2, "3 weeks", []string{"Digital Marketing"}},
	}

	for _, it := range items {
		if _, err := repo.FindBySlug(ctx, it.Slug); err == nil {
			continue
		}
		skills, err := skillIDs(ctx, db, it.Skills...)
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, course.Course{
			Title:         it.Title,
			Slug:          it.Slug,
			Price:         it.Price,
			OriginalPrice: it.Original,
			Level:         it.Level,
			Rating:        it.Rating,
			Duration:      it.Duration,
			SkillIDs:      skills,
			IsActive:      true,
		}); err != nil {
			return err
		}
	}
	return nil
}
