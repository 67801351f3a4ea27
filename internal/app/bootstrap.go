package app

import (
	"context"
	"fmt"
	"strings"

	"empedi/internal/config"
	"empedi/internal/delivery/http/handler"
	"empedi/internal/delivery/http/middleware"
	"empedi/internal/delivery/http/routes"
	v1 "empedi/internal/delivery/http/routes/v1"
	"empedi/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP surface over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency, starts the background workers and
// returns a cleanup that stops them in reverse order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := NewLogger()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := c.Start(ctx); err != nil {
		cancel()
		_ = c.Close()
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		cancel()
		return c.Close()
	}
	logger.Printf("[App] bootstrapped env=%s", cfg.App.Environment)
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  c.Config.CORS.AllowOrigins,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)

	var cachePinger handler.Pinger
	if c.Redis.Enabled() {
		cachePinger = c.Redis
	}
	health := handler.NewHealthHandler(c.DB, cachePinger)
	wsHandler := ws.NewHandler(c.Hub, c.Config.CORS.AllowOrigins, c.Logger)

	routes.NewRegistry(health, wsHandler, v1.Handlers{
		Auth:           authMw.Middleware(),
		AuthHandler:    handler.NewAuthHandler(c.Auth),
		User:           handler.NewUserHandler(c.Users),
		Skill:          handler.NewSkillHandler(c.Skills),
		Recommendation: handler.NewRecommendationHandler(c.Recommendations),
		Job:            handler.NewJobHandler(c.JobDetails, c.JobPostings),
		Course:         handler.NewCourseHandler(c.Courses, c.Enrollments),
		Mentor:         handler.NewMentorHandler(c.Mentors),
		Application:    handler.NewApplicationHandler(c.Applications),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
