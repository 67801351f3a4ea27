package v1

import "github.com/gofiber/fiber/v3"

// RegisterCatalog mounts the marketplace surface: skills, the raw
// recommendation endpoint, jobs, courses, mentors and job applications. Each
// handler keeps its write routes behind auth.
func RegisterCatalog(r fiber.Router, h Handlers) {
	if h.Skill != nil {
		h.Skill.RegisterRoutes(r, h.Auth)
	}
	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(r)
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(r, h.Auth)
	}
	if h.Course != nil {
		h.Course.RegisterRoutes(r, h.Auth)
	}
	if h.Mentor != nil {
		h.Mentor.RegisterRoutes(r, h.Auth)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r, h.Auth)
	}
}
