package handler

import (
	"empedi/internal/delivery/http/dto"
	"empedi/internal/delivery/http/middleware"
	"empedi/internal/domain/application"
	"empedi/internal/domain/user"
	"empedi/internal/pkg/response"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.JobApplicationUsecase
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
}

type updateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied reviewing shortlisted selected rejected"`
}

func NewApplicationHandler(uc usecase.JobApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterRoutes mounts the application paths. Every path needs auth, so
// nothing is mounted without it.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/applications", auth)
	grp.Post("/apply/:jobId", h.Apply)
	grp.Get("/my", h.ListMine)
	grp.Get("/job/:jobId", h.ListForJob)
	grp.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), userID, user.Type(middleware.UserType(c)), jobID, req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err, "Application")
	}
	return response.Created(c, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "Application")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}
	items, err := h.uc.ListForJob(c.Context(), userID, user.Type(middleware.UserType(c)), jobID)
	if err != nil {
		return mapUsecaseError(err, "Job")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateApplicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), userID, user.Type(middleware.UserType(c)), id, application.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err, "Application")
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", dto.NewApplicationResponse(a))
}
