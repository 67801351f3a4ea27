package handler

import (
	"context"
	"encoding/json"
	"testing"

	"empedi/internal/domain/application"
	"empedi/internal/domain/course"
	"empedi/internal/domain/enrollment"
	"empedi/internal/domain/mentor"
	"empedi/internal/domain/user"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type fakeCourses struct {
	created      []usecase.CreateCourseInput
	growthCalls  int
	growthTarget uuid.UUID
}

func (f *fakeCourses) ListCourses(context.Context) ([]course.Course, error) {
	return []course.Course{{ID: uuid.New(), Title: "Go for Backend Developers", Level: course.LevelBeginner, IsActive: true}}, nil
}

func (f *fakeCourses) CreateCourse(_ context.Context, in usecase.CreateCourseInput) (course.Course, error) {
	f.created = append(f.created, in)
	return course.Course{ID: uuid.New(), Title: in.Title, Slug: "go-basics", Level: course.LevelBeginner, IsActive: true}, nil
}

func (f *fakeCourses) GetCourse(context.Context, uuid.UUID) (usecase.CourseDetail, error) {
	return usecase.CourseDetail{}, usecase.ErrNotFound
}

func (f *fakeCourses) GetCourseBySlug(context.Context, string) (usecase.CourseDetail, error) {
	return usecase.CourseDetail{}, usecase.ErrNotFound
}

func (f *fakeCourses) GetGrowth(context.Context, uuid.UUID) (usecase.CourseGrowth, error) {
	return usecase.CourseGrowth{}, nil
}

func (f *fakeCourses) UpdateGrowth(_ context.Context, id uuid.UUID, _ usecase.UpdateCourseGrowthInput) (usecase.CourseGrowth, error) {
	f.growthCalls++
	f.growthTarget = id
	return usecase.CourseGrowth{}, nil
}

type fakeEnrollments struct {
	err      error
	enrolled []uuid.UUID
}

func (f *fakeEnrollments) Enroll(_ context.Context, userID, courseID uuid.UUID) (enrollment.Enrollment, error) {
	if f.err != nil {
		return enrollment.Enrollment{}, f.err
	}
	f.enrolled = append(f.enrolled, courseID)
	return enrollment.Enrollment{ID: uuid.New(), UserID: userID, CourseID: courseID, Status: enrollment.StatusEnrolled}, nil
}

func (f *fakeEnrollments) ListMine(context.Context, uuid.UUID) ([]enrollment.Enrollment, error) {
	return []enrollment.Enrollment{}, nil
}

func TestCourseHandler_GrowthUpdateIsAdminOnly(t *testing.T) {
	id := uuid.New()
	body := map[string]any{"jobIds": []string{uuid.NewString()}}

	for _, typ := range []user.Type{user.TypeStudent, user.TypeProfessional, user.TypeCompany, user.TypeMentor} {
		courses := &fakeCourses{}
		app := newTestApp()
		NewCourseHandler(courses, nil).RegisterRoutes(app, fakeAuth(uuid.New(), string(typ)))

		status, sr := doJSON(t, app, "PUT", "/courses/"+id.String()+"/growth", body, true)
		if status != fiber.StatusForbidden || sr.Message != "Forbidden" {
			t.Fatalf("%s: expected 403, got %d (%s)", typ, status, sr.Message)
		}
		if courses.growthCalls != 0 {
			t.Fatalf("%s: growth must not be written", typ)
		}
	}

	courses := &fakeCourses{}
	app := newTestApp()
	NewCourseHandler(courses, nil).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeAdmin)))
	if status, _ := doJSON(t, app, "PUT", "/courses/"+id.String()+"/growth", body, false); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", status)
	}
	status, sr := doJSON(t, app, "PUT", "/courses/"+id.String()+"/growth", body, true)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for an admin, got %d (%s)", status, sr.Message)
	}
	if courses.growthCalls != 1 || courses.growthTarget != id {
		t.Fatalf("unexpected growth call count=%d target=%s", courses.growthCalls, courses.growthTarget)
	}
}

func TestCourseHandler_ListAndCreate(t *testing.T) {
	courses := &fakeCourses{}
	app := newTestApp()
	NewCourseHandler(courses, nil).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeAdmin)))

	status, sr := doJSON(t, app, "GET", "/courses", nil, false)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var items []map[string]any
	if err := json.Unmarshal(sr.Data, &items); err != nil || len(items) != 1 {
		t.Fatalf("expected one course, got %s err=%v", sr.Data, err)
	}

	status, sr = doJSON(t, app, "POST", "/courses", map[string]any{"title": "Go Basics", "level": "Beginner"}, true)
	if status != fiber.StatusCreated || sr.Message != "Course created successfully" {
		t.Fatalf("expected 201, got %d (%s)", status, sr.Message)
	}
	if len(courses.created) != 1 || courses.created[0].Level != course.LevelBeginner {
		t.Fatalf("unexpected create input %+v", courses.created)
	}

	if status, _ := doJSON(t, app, "POST", "/courses", map[string]any{"title": "Go Basics", "level": "Expert"}, true); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown level, got %d", status)
	}

	app = newTestApp()
	NewCourseHandler(&fakeCourses{}, nil).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeCompany)))
	if status, _ := doJSON(t, app, "POST", "/courses", map[string]any{"title": "Go Basics"}, true); status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for a company, got %d", status)
	}
}

func TestCourseHandler_Enroll(t *testing.T) {
	enrollments := &fakeEnrollments{}
	app := newTestApp()
	NewCourseHandler(&fakeCourses{}, enrollments).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeStudent)))

	id := uuid.New()
	status, sr := doJSON(t, app, "POST", "/courses/"+id.String()+"/enroll", nil, true)
	if status != fiber.StatusCreated || sr.Message != "Enrolled successfully" {
		t.Fatalf("expected 201, got %d (%s)", status, sr.Message)
	}
	if len(enrollments.enrolled) != 1 || enrollments.enrolled[0] != id {
		t.Fatalf("unexpected enrollments %v", enrollments.enrolled)
	}
	if status, _ := doJSON(t, app, "GET", "/courses/my-enrollments", nil, true); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	app = newTestApp()
	NewCourseHandler(&fakeCourses{}, &fakeEnrollments{err: usecase.ErrConflict}).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeStudent)))
	if status, _ := doJSON(t, app, "POST", "/courses/"+id.String()+"/enroll", nil, true); status != fiber.StatusConflict {
		t.Fatalf("expected 409 on a repeat enrollment, got %d", status)
	}
}

type fakeMentors struct {
	err     error
	curated []usecase.MentorCuratedInput
}

func (f *fakeMentors) CreateProfile(context.Context, uuid.UUID, user.Type, usecase.CreateMentorProfileInput) (mentor.Profile, error) {
	return mentor.Profile{}, f.err
}

func (f *fakeMentors) GetProfile(context.Context, uuid.UUID) (usecase.MentorProfileDetail, error) {
	return usecase.MentorProfileDetail{}, usecase.ErrNotFound
}

func (f *fakeMentors) GetProfileByUserID(context.Context, uuid.UUID) (usecase.MentorProfileDetail, error) {
	return usecase.MentorProfileDetail{}, usecase.ErrNotFound
}

func (f *fakeMentors) GetRecommendations(context.Context, uuid.UUID) (usecase.MentorRecommendations, error) {
	return usecase.MentorRecommendations{}, nil
}

func (f *fakeMentors) ListProfiles(context.Context) ([]mentor.Profile, error) {
	return []mentor.Profile{{ID: uuid.New(), UserName: "Priya Sharma", Rating: 4.9}}, nil
}

func (f *fakeMentors) UpdateRecommendations(_ context.Context, _, _ uuid.UUID, in usecase.MentorCuratedInput) (usecase.MentorRecommendations, error) {
	if f.err != nil {
		return usecase.MentorRecommendations{}, f.err
	}
	f.curated = append(f.curated, in)
	return usecase.MentorRecommendations{}, nil
}

func TestMentorHandler_ListAndUpdateGrowth(t *testing.T) {
	mentors := &fakeMentors{}
	app := newTestApp()
	NewMentorHandler(mentors).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeMentor)))

	status, sr := doJSON(t, app, "GET", "/mentors", nil, false)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var items []map[string]any
	if err := json.Unmarshal(sr.Data, &items); err != nil || len(items) != 1 {
		t.Fatalf("expected one mentor, got %s err=%v", sr.Data, err)
	}

	courseID := uuid.New()
	body := map[string]any{"recommendedCourseIds": []string{courseID.String()}}
	if status, _ := doJSON(t, app, "PUT", "/mentors/"+uuid.NewString()+"/growth", body, false); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", status)
	}
	status, sr = doJSON(t, app, "PUT", "/mentors/"+uuid.NewString()+"/growth", body, true)
	if status != fiber.StatusOK || sr.Message != "Mentor recommendations updated" {
		t.Fatalf("expected 200, got %d (%s)", status, sr.Message)
	}
	if len(mentors.curated) != 1 || len(mentors.curated[0].RecommendedCourseIDs) != 1 || mentors.curated[0].RecommendedCourseIDs[0] != courseID {
		t.Fatalf("unexpected curated input %+v", mentors.curated)
	}

	app = newTestApp()
	NewMentorHandler(&fakeMentors{err: usecase.ErrForbidden}).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeMentor)))
	if status, _ := doJSON(t, app, "PUT", "/mentors/"+uuid.NewString()+"/growth", body, true); status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for another mentor's profile, got %d", status)
	}
}

type fakeApplications struct {
	err        error
	gotType    user.Type
	gotStatus  application.Status
	gotLetter  string
	reviewedBy uuid.UUID
}

func (f *fakeApplications) Apply(_ context.Context, applicantID uuid.UUID, applicantType user.Type, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	if f.err != nil {
		return application.Application{}, f.err
	}
	f.gotType, f.gotLetter = applicantType, coverLetter
	return application.Application{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Status: application.StatusApplied}, nil
}

func (f *fakeApplications) ListMine(context.Context, uuid.UUID) ([]application.Application, error) {
	return []application.Application{}, f.err
}

func (f *fakeApplications) ListForJob(_ context.Context, actorID uuid.UUID, _ user.Type, _ uuid.UUID) ([]application.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reviewedBy = actorID
	return []application.Application{}, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, _ uuid.UUID, _ user.Type, id uuid.UUID, status application.Status) (application.Application, error) {
	if f.err != nil {
		return application.Application{}, f.err
	}
	f.gotStatus = status
	return application.Application{ID: id, Status: status}, nil
}

func TestApplicationHandler_Routes(t *testing.T) {
	apps := &fakeApplications{}
	student := uuid.New()
	app := newTestApp()
	NewApplicationHandler(apps).RegisterRoutes(app, fakeAuth(student, string(user.TypeStudent)))

	path := "/applications/apply/" + uuid.NewString()
	body := map[string]any{"coverLetter": "Keen to learn"}
	if status, _ := doJSON(t, app, "POST", path, body, false); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", status)
	}
	status, sr := doJSON(t, app, "POST", path, body, true)
	if status != fiber.StatusCreated || sr.Message != "Application submitted" {
		t.Fatalf("expected 201, got %d (%s)", status, sr.Message)
	}
	if apps.gotType != user.TypeStudent || apps.gotLetter != "Keen to learn" {
		t.Fatalf("unexpected apply call type=%s letter=%q", apps.gotType, apps.gotLetter)
	}

	if status, _ := doJSON(t, app, "GET", "/applications/my", nil, true); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := doJSON(t, app, "GET", "/applications/job/"+uuid.NewString(), nil, true); status != fiber.StatusOK || apps.reviewedBy != student {
		t.Fatalf("expected 200 for the job listing, got %d", status)
	}

	statusPath := "/applications/" + uuid.NewString() + "/status"
	if status, _ := doJSON(t, app, "PATCH", statusPath, map[string]string{"status": "hired"}, true); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", status)
	}
	if status, _ := doJSON(t, app, "PATCH", statusPath, map[string]string{"status": "shortlisted"}, true); status != fiber.StatusOK || apps.gotStatus != application.StatusShortlisted {
		t.Fatalf("expected 200, got %d status=%s", status, apps.gotStatus)
	}
}

func TestApplicationHandler_UsecaseErrors(t *testing.T) {
	cases := map[error]int{
		usecase.ErrForbidden:    fiber.StatusForbidden,
		usecase.ErrConflict:     fiber.StatusConflict,
		usecase.ErrNotFound:     fiber.StatusNotFound,
		usecase.ErrInvalidInput: fiber.StatusBadRequest,
	}
	for err, want := range cases {
		app := newTestApp()
		NewApplicationHandler(&fakeApplications{err: err}).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeProfessional)))

		status, _ := doJSON(t, app, "POST", "/applications/apply/"+uuid.NewString(), map[string]any{}, true)
		if status != want {
			t.Fatalf("%v: expected %d, got %d", err, want, status)
		}
	}
}

type fakeSkills struct{ added []string }

func (f *fakeSkills) ListSkills(context.Context) ([]usecase.SkillItem, error) {
	return []usecase.SkillItem{}, nil
}

func (f *fakeSkills) AddSkill(_ context.Context, name string, _ *uuid.UUID) (usecase.SkillItem, error) {
	f.added = append(f.added, name)
	return usecase.SkillItem{ID: uuid.New(), Name: name}, nil
}

func TestSkillHandler_CreateIsAdminOnly(t *testing.T) {
	skills := &fakeSkills{}
	app := newTestApp()
	NewSkillHandler(skills).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeCompany)))
	if status, _ := doJSON(t, app, "POST", "/skills", map[string]string{"name": "Rust"}, true); status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for a company, got %d", status)
	}

	app = newTestApp()
	NewSkillHandler(skills).RegisterRoutes(app, fakeAuth(uuid.New(), string(user.TypeAdmin)))
	if status, _ := doJSON(t, app, "POST", "/skills", map[string]string{"name": "Rust"}, true); status != fiber.StatusCreated {
		t.Fatalf("expected 201 for an admin, got %d", status)
	}
	if len(skills.added) != 1 || skills.added[0] != "Rust" {
		t.Fatalf("unexpected skills %v", skills.added)
	}
}
