package handler

import (
	"strings"
	"time"

	"empedi/internal/delivery/http/dto"
	"empedi/internal/delivery/http/middleware"
	"empedi/internal/domain/job"
	"empedi/internal/domain/user"
	"empedi/internal/pkg/response"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	details  usecase.JobDetailUsecase
	postings usecase.JobPostingUsecase
}

type salaryRequest struct {
	Min      *float64 `json:"min" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3"`
	Period   string   `json:"period" validate:"omitempty,oneof=hourly monthly yearly"`
}

type createJobRequest struct {
	Kind                string         `json:"kind" validate:"omitempty,oneof=job internship"`
	Status              string         `json:"status" validate:"omitempty,oneof=active closed draft"`
	Title               string         `json:"title" validate:"required,max=200"`
	Subtitle            string         `json:"subtitle" validate:"max=200"`
	CompanyName         string         `json:"companyName" validate:"max=200"`
	CompanyLogoURL      string         `json:"companyLogoUrl" validate:"omitempty,url"`
	Location            string         `json:"location" validate:"required,max=200"`
	WorkMode            string         `json:"workMode" validate:"omitempty,oneof='Work From Home' 'Work From Office' Hybrid"`
	Description         string         `json:"description"`
	ShortDescription    string         `json:"shortDescription" validate:"max=500"`
	Salary              *salaryRequest `json:"salary"`
	MinExperience       int            `json:"minExperience" validate:"gte=0,lte=50"`
	SkillIDs            []uuid.UUID    `json:"skillIds" validate:"max=50"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline"`
	ExternalApply       bool           `json:"externalApply"`
	ApplyLink           string         `json:"applyLink" validate:"omitempty,url"`
}

func (req createJobRequest) input() usecase.CreateJobInput {
	in := usecase.CreateJobInput{
		Kind:                job.Kind(req.Kind),
		Status:              job.Status(req.Status),
		Title:               req.Title,
		Subtitle:            req.Subtitle,
		CompanyName:         req.CompanyName,
		CompanyLogoURL:      req.CompanyLogoURL,
		Location:            req.Location,
		WorkMode:            job.WorkMode(req.WorkMode),
		Description:         req.Description,
		ShortDescription:    req.ShortDescription,
		MinExperience:       req.MinExperience,
		SkillIDs:            req.SkillIDs,
		ApplicationDeadline: req.ApplicationDeadline,
		ExternalApply:       req.ExternalApply,
		ApplyLink:           req.ApplyLink,
	}
	if req.Salary != nil {
		in.Salary = job.Salary{Min: req.Salary.Min, Max: req.Salary.Max, Currency: req.Salary.Currency, Period: req.Salary.Period}
	}
	return in
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active closed draft"`
}

type updateJobGrowthRequest struct {
	CourseIDs []uuid.UUID `json:"courseIds" validate:"max=20"`
	MentorIDs []uuid.UUID `json:"mentorIds" validate:"max=20"`
}

type updateJobRelatedRequest struct {
	JobIDs        []uuid.UUID `json:"jobIds" validate:"max=20"`
	InternshipIDs []uuid.UUID `json:"internshipIds" validate:"max=20"`
}

func NewJobHandler(details usecase.JobDetailUsecase, postings usecase.JobPostingUsecase) *JobHandler {
	return &JobHandler{details: details, postings: postings}
}

// RegisterRoutes mounts the public read paths and, behind auth, the poster
// write paths.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Get("/:id/growth", h.GetGrowth)
	grp.Get("/:id/related", h.GetRelated)

	if auth == nil || h.postings == nil {
		return
	}
	grp.Post("/", auth, middleware.RequireUserType(string(user.TypeCompany)), h.Create)
	grp.Put("/:id", auth, h.Update)
	grp.Delete("/:id", auth, h.Delete)
	grp.Patch("/:id/status", auth, h.UpdateStatus)
	grp.Put("/:id/growth", auth, h.UpdateGrowth)
	grp.Put("/:id/related", auth, h.UpdateRelated)
}

// List serves the job board. Query filters: type (job|internship), workMode
// and location (substring).
func (h *JobHandler) List(c fiber.Ctx) error {
	f := job.ListFilter{
		Kind:     job.Kind(strings.TrimSpace(c.Query("type"))),
		WorkMode: job.WorkMode(strings.TrimSpace(c.Query("workMode"))),
		Location: c.Query("location"),
	}
	if f.Kind != "" && !f.Kind.Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid type", nil, nil)
	}
	if f.WorkMode != "" && !f.WorkMode.Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid workMode", nil, nil)
	}

	items, err := h.details.ListJobs(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.details.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetailResponse(d))
}

func (h *JobHandler) GetGrowth(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.details.GetGrowth(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, g)
}

func (h *JobHandler) GetRelated(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rel, err := h.details.GetRelated(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rel)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	posterID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.postings.CreateJob(c.Context(), posterID, req.input())
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Created(c, "Job created successfully", dto.NewJobResponse(created))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.postings.UpdateJob(c.Context(), actorID, id, req.input())
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, "Job updated successfully", dto.NewJobResponse(updated))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.postings.DeleteJob(c.Context(), actorID, id); err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) UpdateStatus(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.postings.UpdateStatus(c.Context(), actorID, id, job.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, "Job status updated", dto.NewJobResponse(updated))
}

func (h *JobHandler) UpdateGrowth(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateJobGrowthRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.postings.UpdateGrowth(c.Context(), actorID, id, req.CourseIDs, req.MentorIDs); err != nil {
		return mapUsecaseError(err, "Job")
	}
	g, err := h.details.GetGrowth(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, "Job growth updated", g)
}

func (h *JobHandler) UpdateRelated(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateJobRelatedRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.postings.UpdateRelated(c.Context(), actorID, id, req.JobIDs, req.InternshipIDs); err != nil {
		return mapUsecaseError(err, "Job")
	}
	rel, err := h.details.GetRelated(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, "Related opportunities updated", rel)
}
