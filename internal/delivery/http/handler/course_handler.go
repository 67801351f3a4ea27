package handler

import (
	"strings"

	"empedi/internal/delivery/http/dto"
	"empedi/internal/delivery/http/middleware"
	"empedi/internal/domain/course"
	"empedi/internal/domain/user"
	"empedi/internal/pkg/response"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CourseHandler struct {
	uc          usecase.CourseDetailUsecase
	enrollments usecase.EnrollmentUsecase
}

type createCourseRequest struct {
	Title            string      `json:"title" validate:"required,max=200"`
	Slug             string      `json:"slug" validate:"max=200"`
	BannerURL        string      `json:"bannerUrl" validate:"omitempty,url"`
	Price            string      `json:"price" validate:"max=50"`
	OriginalPrice    string      `json:"originalPrice" validate:"max=50"`
	Level            string      `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced 'Beginner to Advanced'"`
	Duration         string      `json:"duration" validate:"max=50"`
	Format           string      `json:"format" validate:"max=50"`
	ShortDescription string      `json:"shortDescription" validate:"max=500"`
	SkillIDs         []uuid.UUID `json:"skillIds" validate:"max=50"`
}

type updateCourseGrowthRequest struct {
	JobIDs        []uuid.UUID `json:"jobIds" validate:"max=20"`
	InternshipIDs []uuid.UUID `json:"internshipIds" validate:"max=20"`
	CourseIDs     []uuid.UUID `json:"courseIds" validate:"max=20"`
	MentorIDs     []uuid.UUID `json:"mentorIds" validate:"max=20"`
}

// NewCourseHandler serves the catalog. enrollments may be nil, which leaves
// the enrollment routes unmounted.
func NewCourseHandler(uc usecase.CourseDetailUsecase, enrollments usecase.EnrollmentUsecase) *CourseHandler {
	return &CourseHandler{uc: uc, enrollments: enrollments}
}

// RegisterRoutes mounts the public catalog reads. Catalog writes are for
// admins; enrollment needs any signed-in account.
func (h *CourseHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/courses")
	grp.Get("/", h.List)
	grp.Get("/slug/:slug", h.GetBySlug)
	if auth != nil && h.enrollments != nil {
		grp.Get("/my-enrollments", auth, h.MyEnrollments)
	}
	grp.Get("/:id", h.Get)
	grp.Get("/:id/growth", h.GetGrowth)

	if auth == nil {
		return
	}
	adminOnly := middleware.RequireUserType(string(user.TypeAdmin))
	grp.Post("/", auth, adminOnly, h.Create)
	grp.Put("/:id/growth", auth, adminOnly, h.UpdateGrowth)
	if h.enrollments != nil {
		grp.Post("/:id/enroll", auth, h.Enroll)
	}
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCourses(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponses(items))
}

func (h *CourseHandler) Create(c fiber.Ctx) error {
	var req createCourseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.CreateCourse(c.Context(), usecase.CreateCourseInput{
		Title:            req.Title,
		Slug:             req.Slug,
		BannerURL:        req.BannerURL,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Level:            course.Level(req.Level),
		Duration:         req.Duration,
		Format:           req.Format,
		ShortDescription: req.ShortDescription,
		SkillIDs:         req.SkillIDs,
	})
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Created(c, "Course created successfully", dto.NewCourseResponse(created))
}

func (h *CourseHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.GetCourse(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseDetailResponse(d))
}

func (h *CourseHandler) GetBySlug(c fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid slug", nil, nil)
	}
	d, err := h.uc.GetCourseBySlug(c.Context(), slug)
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseDetailResponse(d))
}

func (h *CourseHandler) GetGrowth(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.uc.GetGrowth(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, g)
}

func (h *CourseHandler) UpdateGrowth(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCourseGrowthRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	g, err := h.uc.UpdateGrowth(c.Context(), id, usecase.UpdateCourseGrowthInput{
		JobIDs:        req.JobIDs,
		InternshipIDs: req.InternshipIDs,
		CourseIDs:     req.CourseIDs,
		MentorIDs:     req.MentorIDs,
	})
	if err != nil {
		return mapUsecaseError(err, "Course")
	}
	return response.Success(c, fiber.StatusOK, "Course growth updated", g)
}

func (h *CourseHandler) Enroll(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.enrollments.Enroll(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err, "Enrollment")
	}
	return response.Created(c, "Enrolled successfully", dto.NewEnrollmentResponse(e))
}

func (h *CourseHandler) MyEnrollments(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.enrollments.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "Enrollment")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEnrollmentResponses(items))
}
