package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"empedi/internal/domain/enrollment"
	"empedi/internal/metrics"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

var errCourseClosed = fmt.Errorf("%w: course is not open for enrollment", ErrInvalidInput)

type EnrollmentUsecase interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (enrollment.Enrollment, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error)
}

type Enrollments struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	logger      *log.Logger
}

func NewEnrollmentUsecase(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, logger *log.Logger) *Enrollments {
	if logger == nil {
		logger = log.Default()
	}
	return &Enrollments{enrollments: enrollments, courses: courses, logger: logger}
}

func (u *Enrollments) Enroll(ctx context.Context, userID, courseID uuid.UUID) (enrollment.Enrollment, error) {
	c, err := u.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return enrollment.Enrollment{}, ErrNotFound
		}
		u.logger.Printf("[Enrollment] load course failed id=%s err=%v", courseID, err)
		return enrollment.Enrollment{}, ErrInternal
	}
	if !c.IsActive {
		return enrollment.Enrollment{}, errCourseClosed
	}

	e, err := u.enrollments.Create(ctx, enrollment.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   enrollment.StatusEnrolled,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			return enrollment.Enrollment{}, ErrConflict
		case errors.Is(err, repository.ErrCourseNotFound):
			return enrollment.Enrollment{}, ErrNotFound
		}
		u.logger.Printf("[Enrollment] enroll failed user=%s course=%s err=%v", userID, courseID, err)
		return enrollment.Enrollment{}, ErrInternal
	}
	metrics.CourseEnrollments.Inc()
	return e, nil
}

func (u *Enrollments) ListMine(ctx context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error) {
	items, err := u.enrollments.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Printf("[Enrollment] list failed user=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}
