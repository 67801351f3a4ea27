package dto

import (
	"time"

	"empedi/internal/domain/course"
	"empedi/internal/domain/enrollment"

	"github.com/google/uuid"
)

type EnrollmentCourseResponse struct {
	Title     string       `json:"title"`
	Slug      string       `json:"slug"`
	BannerURL string       `json:"bannerUrl"`
	Level     course.Level `json:"level"`
	Duration  string       `json:"duration"`
}

type EnrollmentResponse struct {
	ID        uuid.UUID                 `json:"id"`
	CourseID  uuid.UUID                 `json:"courseId"`
	Status    enrollment.Status         `json:"status"`
	Progress  int                       `json:"progress"`
	Course    *EnrollmentCourseResponse `json:"course,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
}

func NewEnrollmentResponse(e enrollment.Enrollment) EnrollmentResponse {
	res := EnrollmentResponse{
		ID:        e.ID,
		CourseID:  e.CourseID,
		Status:    e.Status,
		Progress:  e.Progress,
		CreatedAt: e.CreatedAt,
	}
	if e.Course != nil {
		c := EnrollmentCourseResponse(*e.Course)
		res.Course = &c
	}
	return res
}

func NewEnrollmentResponses(items []enrollment.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEnrollmentResponse(e))
	}
	return out
}
