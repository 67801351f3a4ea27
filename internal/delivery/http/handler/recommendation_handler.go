package handler

import (
	"strconv"
	"strings"

	"empedi/internal/delivery/http/middleware"
	"empedi/internal/domain/recommendation"
	"empedi/internal/pkg/response"
	"empedi/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/recommendations", h.Get)
}

// Get serves GET /recommendations?skill_ids=a,b&exclude_id=&exclude_type=&limit=
func (h *RecommendationHandler) Get(c fiber.Ctx) error {
	skillIDs, err := parseIDList(c.Query("skill_ids"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "skill_ids must be comma separated UUIDs", nil, err)
	}

	var opts recommendation.Options
	if raw := strings.TrimSpace(c.Query("exclude_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "exclude_id must be a UUID", nil, err)
		}
		opts.ExcludeID = id
	}
	opts.ExcludeType, err = recommendation.ParseCategory(c.Query("exclude_type"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "exclude_type must be one of job, internship, course, mentor", nil, err)
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "limit must be a positive integer", nil, err)
		}
		opts.Limit = n
	}

	res, err := h.uc.GetRecommendations(c.Context(), skillIDs, opts)
	if err != nil {
		return mapUsecaseError(err, "Recommendations")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
