package usecase

import (
	"context"
	"errors"
	"testing"

	"empedi/internal/domain/course"
	"empedi/internal/domain/enrollment"
	"empedi/internal/repository"

	"github.com/google/uuid"
)

type fakeEnrollmentRepo struct {
	items []enrollment.Enrollment
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	for _, existing := range r.items {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return enrollment.Enrollment{}, repository.ErrAlreadyEnrolled
		}
	}
	e.ID = uuid.New()
	r.items = append(r.items, e)
	return e, nil
}

func (r *fakeEnrollmentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]enrollment.Enrollment, error) {
	out := make([]enrollment.Enrollment, 0)
	for _, e := range r.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestEnrollment_EnrollOncePerCourse(t *testing.T) {
	courses := newFakeCourseRepo(&fakeCourseStore{})
	open := course.Course{ID: uuid.New(), Title: "Go", Slug: "go", IsActive: true}
	retired := course.Course{ID: uuid.New(), Title: "Old", Slug: "old"}
	courses.byID[open.ID] = open
	courses.byID[retired.ID] = retired
	repo := &fakeEnrollmentRepo{}
	uc := NewEnrollmentUsecase(repo, courses, quiet)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := uc.Enroll(ctx, userID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Enroll(ctx, userID, retired.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an inactive course, got %v", err)
	}

	e, err := uc.Enroll(ctx, userID, open.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Status != enrollment.StatusEnrolled || e.Progress != 0 || e.CourseID != open.ID {
		t.Fatalf("unexpected enrollment %+v", e)
	}
	if _, err := uc.Enroll(ctx, userID, open.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on a second enrollment, got %v", err)
	}

	mine, err := uc.ListMine(ctx, userID)
	if err != nil || len(mine) != 1 || mine[0].ID != e.ID {
		t.Fatalf("expected one enrollment, got %+v err=%v", mine, err)
	}
	if others, _ := uc.ListMine(ctx, uuid.New()); len(others) != 0 {
		t.Fatalf("enrollments leaked across users: %+v", others)
	}
}
