package v1

import (
	"empedi/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything mounted under /api/v1. Auth guards the write paths;
// with a nil Auth only the public read surface is registered.
type Handlers struct {
	Auth fiber.Handler

	AuthHandler    *handler.AuthHandler
	User           *handler.UserHandler
	Skill          *handler.SkillHandler
	Recommendation *handler.RecommendationHandler
	Job            *handler.JobHandler
	Course         *handler.CourseHandler
	Mentor         *handler.MentorHandler
	Application    *handler.ApplicationHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}
	RegisterAccounts(r, h.AuthHandler, h.User, h.Auth)
	RegisterCatalog(r, h)
}
