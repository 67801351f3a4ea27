package dto

import (
	"time"

	"empedi/internal/domain/course"
	"empedi/internal/usecase"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	BannerURL        string       `json:"bannerUrl"`
	Price            string       `json:"price"`
	OriginalPrice    string       `json:"originalPrice"`
	Level            course.Level `json:"level"`
	Rating           float64      `json:"rating"`
	Duration         string       `json:"duration"`
	Format           string       `json:"format"`
	ShortDescription string       `json:"shortDescription"`
	SkillIDs         []uuid.UUID  `json:"skillIds"`
	IsActive         bool         `json:"isActive"`
	CreatedAt        time.Time    `json:"createdAt"`
}

type CourseDetailResponse struct {
	CourseResponse
	Growth usecase.CourseGrowth `json:"growth"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	skills := c.SkillIDs
	if skills == nil {
		skills = []uuid.UUID{}
	}
	return CourseResponse{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		BannerURL:        c.BannerURL,
		Price:            c.Price,
		OriginalPrice:    c.OriginalPrice,
		Level:            c.Level,
		Rating:           c.Rating,
		Duration:         c.Duration,
		Format:           c.Format,
		ShortDescription: c.ShortDescription,
		SkillIDs:         skills,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
	}
}

func NewCourseDetailResponse(d usecase.CourseDetail) CourseDetailResponse {
	return CourseDetailResponse{CourseResponse: NewCourseResponse(d.Course), Growth: d.Growth}
}

func NewCourseResponses(items []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
