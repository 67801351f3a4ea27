package v1

import (
	"empedi/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterAccounts mounts /auth and, when auth is configured, /users.
func RegisterAccounts(r fiber.Router, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, auth fiber.Handler) {
	if authHandler != nil {
		authHandler.RegisterRoutes(r.Group("/auth"))
	}
	if auth != nil && userHandler != nil {
		userHandler.RegisterRoutes(r.Group("/users", auth))
	}
}
