package handler

import (
	"empedi/internal/delivery/http/dto"
	"empedi/internal/delivery/http/middleware"
	"empedi/internal/domain/user"
	"empedi/internal/pkg/response"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MentorHandler struct {
	uc usecase.MentorProfileUsecase
}

type createMentorProfileRequest struct {
	About           string      `json:"about" validate:"max=2000"`
	Industry        string      `json:"industry" validate:"required,max=100"`
	CurrentPosition string      `json:"currentPosition" validate:"max=100"`
	CurrentCompany  string      `json:"currentCompany" validate:"max=100"`
	ExperienceYears int         `json:"experienceYears" validate:"gte=0,lte=60"`
	QuickCallPrice  float64     `json:"quickCallPrice" validate:"gte=0"`
	SessionDuration int         `json:"sessionDuration" validate:"omitempty,oneof=30 45 60"`
	SkillIDs        []uuid.UUID `json:"skillIds" validate:"max=50"`

	mentorCuratedRequest
}

type mentorCuratedRequest struct {
	RelatedMentorIDs         []uuid.UUID `json:"relatedMentorIds" validate:"max=20"`
	RecommendedJobIDs        []uuid.UUID `json:"recommendedJobIds" validate:"max=20"`
	RecommendedCourseIDs     []uuid.UUID `json:"recommendedCourseIds" validate:"max=20"`
	RecommendedInternshipIDs []uuid.UUID `json:"recommendedInternshipIds" validate:"max=20"`
}

func (req mentorCuratedRequest) input() usecase.MentorCuratedInput {
	return usecase.MentorCuratedInput{
		RelatedMentorIDs:         req.RelatedMentorIDs,
		RecommendedJobIDs:        req.RecommendedJobIDs,
		RecommendedCourseIDs:     req.RecommendedCourseIDs,
		RecommendedInternshipIDs: req.RecommendedInternshipIDs,
	}
}

func NewMentorHandler(uc usecase.MentorProfileUsecase) *MentorHandler {
	return &MentorHandler{uc: uc}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/mentors")
	grp.Get("/", h.List)
	grp.Get("/user/:userId", h.GetByUser)
	grp.Get("/:id", h.Get)
	grp.Get("/:id/growth", h.GetGrowth)
	if auth != nil {
		grp.Post("/", auth, h.Create)
		grp.Put("/:id/growth", auth, h.UpdateGrowth)
	}
}

func (h *MentorHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createMentorProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.CreateProfile(c.Context(), userID, user.Type(middleware.UserType(c)), usecase.CreateMentorProfileInput{
		About:           req.About,
		Industry:        req.Industry,
		CurrentPosition: req.CurrentPosition,
		CurrentCompany:  req.CurrentCompany,
		ExperienceYears: req.ExperienceYears,
		QuickCallPrice:  req.QuickCallPrice,
		SessionDuration: req.SessionDuration,
		SkillIDs:        req.SkillIDs,
		Curated:         req.mentorCuratedRequest.input(),
	})
	if err != nil {
		return mapUsecaseError(err, "Mentor profile")
	}
	return response.Created(c, "Mentor profile created", dto.NewMentorProfileResponse(p))
}

func (h *MentorHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListProfiles(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Mentor")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMentorProfileResponses(items))
}

func (h *MentorHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Mentor")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMentorProfileDetailResponse(d))
}

func (h *MentorHandler) GetByUser(c fiber.Ctx) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	d, err := h.uc.GetProfileByUserID(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Mentor")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMentorProfileDetailResponse(d))
}

func (h *MentorHandler) GetGrowth(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.uc.GetRecommendations(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Mentor")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, recs)
}

// UpdateGrowth replaces the curated lists on the caller's own profile.
func (h *MentorHandler) UpdateGrowth(c fiber.Ctx) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req mentorCuratedRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	recs, err := h.uc.UpdateRecommendations(c.Context(), actorID, id, req.input())
	if err != nil {
		return mapUsecaseError(err, "Mentor")
	}
	return response.Success(c, fiber.StatusOK, "Mentor recommendations updated", recs)
}
